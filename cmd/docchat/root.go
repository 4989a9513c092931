package main

import (
	"github.com/spf13/cobra"
)

// newRootCmd creates the root docchat command with all subcommands
// registered.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "docchat",
		Short:         "Ask questions about your documents",
		Long:          "docchat ingests a document into a local vector store and answers questions about it with retrieval-augmented generation.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringP("config", "c", "config.yaml", "path to YAML config file")
	root.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newIngestCmd(),
		newAskCmd(),
		newChatCmd(),
		newDocsCmd(),
		newPurgeCmd(),
		newClearCmd(),
	)
	return root
}
