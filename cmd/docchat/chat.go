package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"docchat/internal/tui"
)

func newChatCmd() *cobra.Command {
	var docID string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat interactively about an ingested document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			svc, err := a.ragService(cmd.Context())
			if err != nil {
				return err
			}

			header := ""
			for _, info := range svc.Documents() {
				if info.ID == docID {
					header = fmt.Sprintf("%d chunks loaded", info.Chunks)
				}
			}
			if header == "" {
				return fmt.Errorf("document %q is not ingested (run docchat docs to list)", docID)
			}

			model := tui.New(svc, docID, header)
			_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&docID, "doc", "", "document id to chat about")
	_ = cmd.MarkFlagRequired("doc")
	return cmd
}
