package stagectl

import (
	"fmt"

	"github.com/Abraxas-365/stagetrack/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/stagetrack/pkg/pipeline"
	"github.com/Abraxas-365/stagetrack/pkg/pipeline/pipelineinfra"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init <file>",
		Short: "Write the default pipeline definition to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			format, err := pipelineinfra.FormatOf(path)
			if err != nil {
				return err
			}

			lfs, err := fsxlocal.NewLocalFileSystem("")
			if err != nil {
				return err
			}

			exists, err := lfs.Exists(cmd.Context(), path)
			if err != nil {
				return err
			}
			if exists && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			data, err := pipelineinfra.Encode(pipeline.DefaultDefinition(), format)
			if err != nil {
				return fmt.Errorf("encoding default pipeline: %w", err)
			}
			if err := lfs.WriteFile(cmd.Context(), path, data); err != nil {
				return err
			}

			cmd.Printf("Wrote default pipeline to %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}
