package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"docchat/internal/chunker"
	"docchat/internal/config"
	"docchat/internal/document"
	embgemini "docchat/internal/embedding/gemini"
	gengemini "docchat/internal/generation/gemini"
	"docchat/internal/logging"
	"docchat/internal/service"
	"docchat/internal/summarizer"
	"docchat/internal/vectorstore"
	"docchat/internal/vectorstore/filestore"
	"docchat/internal/vectorstore/qdrant"
)

// app holds the pieces every subcommand needs. Provider clients are built
// only by ragService, so store-only commands work without an API key.
type app struct {
	cfg   *config.Config
	log   *zap.Logger
	store vectorstore.Store
}

func newApp(cmd *cobra.Command) (*app, error) {
	// Missing .env is fine; required values are validated below.
	_ = godotenv.Load()

	verbose, _ := cmd.Flags().GetBool("verbose")
	log, err := logging.New(verbose)
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}

	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	var store vectorstore.Store
	switch cfg.Storage.Type {
	case "file":
		store, err = filestore.New(cfg.StorePath(), log)
		if err != nil {
			return nil, fmt.Errorf("opening vector store: %w", err)
		}
	case "qdrant":
		store = qdrant.New(qdrant.Config{
			URL:        cfg.Storage.Qdrant.URL,
			APIKey:     cfg.Storage.Qdrant.APIKey,
			Collection: cfg.Storage.Qdrant.Collection,
		})
	}

	return &app{cfg: cfg, log: log, store: store}, nil
}

func (a *app) close() {
	_ = a.log.Sync()
}

// ragService wires the full pipeline, including the Gemini clients.
func (a *app) ragService(ctx context.Context) (*service.Service, error) {
	apiKey := config.APIKey()
	if apiKey == "" {
		return nil, fmt.Errorf("missing required environment variable %s", config.APIKeyEnv)
	}

	emb, err := embgemini.New(ctx, embgemini.Config{
		APIKey:    apiKey,
		Model:     a.cfg.Gemini.EmbeddingModel,
		Dimension: a.cfg.Gemini.EmbeddingDimension,
	})
	if err != nil {
		return nil, err
	}
	gen, err := gengemini.New(ctx, gengemini.Config{
		APIKey: apiKey,
		Model:  a.cfg.Gemini.GenerationModel,
	})
	if err != nil {
		return nil, err
	}

	ch, err := chunker.NewWindowChunker(a.cfg.Chunking.Size, a.cfg.Chunking.Overlap)
	if err != nil {
		return nil, err
	}
	return service.New(ch, emb, a.store, gen, summarizer.NewFrequency(), a.log), nil
}

func (a *app) loader() *document.Loader {
	return document.NewLoader(a.cfg.MaxDocumentBytes(), a.log)
}
