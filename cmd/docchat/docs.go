package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"docchat/internal/domain"
	"docchat/internal/service"
)

func newDocsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "docs",
		Short: "List ingested documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			docs := service.ListDocuments(a.store)
			if len(docs) == 0 {
				fmt.Println("No documents ingested.")
				return nil
			}
			for _, d := range docs {
				fmt.Printf("%s\t%d chunks\n", d.ID, d.Chunks)
			}
			return nil
		},
	}
}

func newPurgeCmd() *cobra.Command {
	var docID string

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete every stored record for one document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.store.RemoveByPrefix(domain.DocPrefix(docID)); err != nil {
				return err
			}
			fmt.Printf("Purged records for %s\n", docID)
			return nil
		},
	}

	cmd.Flags().StringVar(&docID, "doc", "", "document id to purge")
	_ = cmd.MarkFlagRequired("doc")
	return cmd
}

func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the whole vector store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.store.Clear(); err != nil {
				return err
			}
			fmt.Println("Vector store cleared.")
			return nil
		},
	}
}
