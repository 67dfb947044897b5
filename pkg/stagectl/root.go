package stagectl

import (
	"context"
	"os"

	"github.com/Abraxas-365/stagetrack/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/stagetrack/pkg/pipeline"
	"github.com/Abraxas-365/stagetrack/pkg/pipeline/pipelineinfra"
	"github.com/spf13/cobra"
)

var version = "dev"

func SetVersion(v string) {
	version = v
}

// pipelineFlags are shared by every command that reads a definition
type pipelineFlags struct {
	path   string
	strict bool
}

func (f *pipelineFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.path, "pipeline", "p", "", "pipeline definition file (.yaml, .yml or .json); default pipeline when empty")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "reject statuses listed in more than one stage")
}

func (f *pipelineFlags) load(ctx context.Context) (*pipeline.Config, error) {
	var source pipeline.DefinitionSource
	if f.path == "" {
		source = pipelineinfra.NewStaticDefinitionSource(nil)
	} else {
		lfs, err := fsxlocal.NewLocalFileSystem("")
		if err != nil {
			return nil, err
		}
		source = pipelineinfra.NewFileSystemDefinitionSource(lfs, f.path)
	}

	var opts []pipeline.Option
	if f.strict {
		opts = append(opts, pipeline.WithStrictMembership())
	}
	return pipeline.Load(ctx, source, opts...)
}

// NewRootCmd builds the stagectl command tree
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "stagectl",
		Short: "Inspect and exercise hiring pipeline definitions",
		Long: `stagectl classifies candidate statuses against a pipeline definition,
validates definition files and prints the status catalog.

Without --pipeline the built-in seven stage pipeline is used.`,
		SilenceUsage: true,
	}

	root.AddCommand(newVersionCmd())
	root.AddCommand(newClassifyCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newStatusesCmd())
	root.AddCommand(newInitCmd())
	return root
}

// Execute runs the command tree
func Execute() error {
	root := NewRootCmd()
	root.SetOut(os.Stdout)
	return root.Execute()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the stagectl version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println("stagectl " + version)
		},
	}
}
