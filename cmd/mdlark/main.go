package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type globalOptions struct {
	envFile  string
	logLevel string
}

func newRootCmd() *cobra.Command {
	globals := &globalOptions{}

	root := &cobra.Command{
		Use:   "mdlark",
		Short: "Convert Markdown into Lark docx block trees",
		Long: `Convert Markdown into the block JSON accepted by the Lark/Feishu
document "create descendants" API.

Examples:
  mdlark convert README.md
  cat notes.md | mdlark convert --pretty
  mdlark convert --preset faithful --ids uuid doc.md -o blocks.json`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadEnvFile(globals.envFile)
		},
	}

	root.PersistentFlags().StringVar(&globals.envFile, "env", "", "Load environment variables from this .env file")
	root.PersistentFlags().StringVar(&globals.logLevel, "log-level", "", "Log level: debug|info|warn|error (env "+envLogLevel+")")

	root.AddCommand(
		newConvertCmd(globals),
		newLanguagesCmd(),
		newVersionCmd(),
	)

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the mdlark version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := cmd.OutOrStdout().Write([]byte("mdlark " + version + "\n"))
			return err
		},
	}
}
