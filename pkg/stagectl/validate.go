package stagectl

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	var flags pipelineFlags

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a pipeline definition file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.path == "" {
				return fmt.Errorf("--pipeline is required")
			}

			cfg, err := flags.load(cmd.Context())
			if err != nil {
				return err
			}

			cmd.Printf("Pipeline is valid: %d stages.\n", cfg.Len())
			if ambiguous := cfg.AmbiguousStatuses(); len(ambiguous) > 0 {
				cmd.Printf("Warning: statuses in more than one stage (first stage wins): %s\n",
					strings.Join(ambiguous, ", "))
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
