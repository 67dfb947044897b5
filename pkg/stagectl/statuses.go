package stagectl

import (
	"fmt"
	"text/tabwriter"

	"github.com/Abraxas-365/stagetrack/pkg/pipeline"
	"github.com/spf13/cobra"
)

func newStatusesCmd() *cobra.Command {
	var flags pipelineFlags

	cmd := &cobra.Command{
		Use:   "statuses",
		Short: "List the status catalog with tone and owning stage",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tSTATUS\tTONE\tSTAGE")
			for _, s := range pipeline.NewStatusViews(cfg) {
				stage := s.Stage
				if stage == "" {
					stage = "-"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.Code, s.Description, s.Tone, stage)
			}
			return w.Flush()
		},
	}

	flags.register(cmd)
	return cmd
}
