package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"docchat/internal/service"
)

func newIngestCmd() *cobra.Command {
	var docID string

	cmd := &cobra.Command{
		Use:   "ingest <file>",
		Short: "Chunk, embed, and store a document (PDF, text, or Markdown)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			svc, err := a.ragService(cmd.Context())
			if err != nil {
				return err
			}

			doc, err := a.loader().Load(args[0])
			if err != nil {
				return err
			}
			if docID != "" {
				doc.ID = docID
			}

			res, err := svc.Ingest(cmd.Context(), doc)
			if errors.Is(err, service.ErrNoChunks) {
				return fmt.Errorf("nothing to ingest: %s produced no chunks above the minimum length", args[0])
			}
			if err != nil {
				return err
			}

			fmt.Printf("Ingested %q as %s (%d chunks)\n", args[0], res.DocumentID, res.ChunkCount)
			if res.Summary != "" {
				fmt.Printf("\nSummary:\n%s\n", res.Summary)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&docID, "id", "", "document id (defaults to the sanitized file name)")
	return cmd
}
