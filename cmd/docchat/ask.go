package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAskCmd() *cobra.Command {
	var docID string
	var withSources bool

	cmd := &cobra.Command{
		Use:   "ask <question...>",
		Short: "Ask a one-shot question about an ingested document",
		Args:  cobra.MinimumNArgs(1),
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

			question := strings.Join(args, " ")
			if withSources {
				out := svc.AnswerWithSources(cmd.Context(), question, docID, nil)
				fmt.Println(out.Response)
				if len(out.Sources) > 0 {
					fmt.Println("\nSources:")
					for _, src := range out.Sources {
						fmt.Printf("  %s (similarity %.2f)\n", src.Key, src.Similarity)
					}
				}
				return nil
			}

			answer, err := svc.Answer(cmd.Context(), question, docID, nil)
			if err != nil {
				return err
			}
			fmt.Println(answer)
			return nil
		},
	}

	cmd.Flags().StringVar(&docID, "doc", "", "restrict retrieval to one document id")
	cmd.Flags().BoolVar(&withSources, "sources", false, "print the chunks that backed the answer")
	return cmd
}
