package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the actionscribe command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "actionscribe",
		Short: "Extract action items from free-form notes",
		Long: `actionscribe finds action items (tasks, reminders, decisions) in meeting
notes and other free-form text. It runs as an HTTP service backed by a
database or as a one-shot extractor on the command line.`,
		SilenceUsage: true,
	}
	root.CompletionOptions.HiddenDefaultCmd = true

	root.AddCommand(newServeCmd(), newExtractCmd(), newVersionCmd())
	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
