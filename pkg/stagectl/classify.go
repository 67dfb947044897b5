package stagectl

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/Abraxas-365/stagetrack/pkg/pipeline"
	"github.com/spf13/cobra"
)

func newClassifyCmd() *cobra.Command {
	var (
		flags  pipelineFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "classify <status>",
		Short: "Show the state of every stage for a status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd.Context())
			if err != nil {
				return err
			}

			result, err := pipeline.Classify(args[0], cfg)
			if err != nil {
				return err
			}
			if result == nil {
				cmd.Println("No status given; nothing to classify.")
				return nil
			}

			if asJSON {
				data, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return fmt.Errorf("marshalling result: %w", err)
				}
				cmd.Println(string(data))
				return nil
			}

			if !result.Matched() {
				cmd.Printf("Status %q belongs to no stage; every stage is pending.\n", result.Status)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "#\tSTAGE\tNAME\tSTATE")
			for i, s := range result.Stages {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, s.Key, s.Name, s.State)
			}
			return w.Flush()
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}
