package cli

import (
	"context"
	"fmt"

	"github.com/fxola/trivia-api/internal/domain"
	"github.com/fxola/trivia-api/internal/logger"
	"github.com/fxola/trivia-api/internal/seed"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed [file]",
		Short: "Load categories and questions into the store",
		Long: `Load categories and questions from a YAML seed file into the configured store.
Without a file the built-in question bank is loaded.

Example:
  trivia seed
  trivia seed --driver postgres ./questions.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rootOpts.config()
			if err != nil {
				return err
			}
			log, err := logger.New(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile})
			if err != nil {
				return err
			}
			defer log.Sync()

			f, err := loadSeedFile(args)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, closeStore, err := openStore(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer closeStore()

			res, err := seed.Apply(ctx, store, f)
			if err != nil {
				return fmt.Errorf("seed failed after %d categories and %d questions: %w", res.Categories, res.Questions, err)
			}

			log.Info("seed complete", zap.Int("categories", res.Categories), zap.Int("questions", res.Questions))
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d categories and %d questions.\n", res.Categories, res.Questions)
			return nil
		},
	}
}

func loadSeedFile(args []string) (*seed.File, error) {
	if len(args) == 0 {
		return seed.Parse(seed.Default)
	}
	return seed.Load(args[0])
}

// seedIfEmpty loads the built-in bank into a store that holds no question yet
func seedIfEmpty(ctx context.Context, store domain.Store, log *zap.Logger) error {
	questions, err := store.ListQuestions(ctx)
	if err != nil {
		return err
	}
	if len(questions) > 0 {
		log.Debug("store already seeded", zap.Int("questions", len(questions)))
		return nil
	}

	f, err := seed.Parse(seed.Default)
	if err != nil {
		return err
	}
	res, err := seed.Apply(ctx, store, f)
	if err != nil {
		return err
	}
	log.Info("seeded built-in question bank", zap.Int("categories", res.Categories), zap.Int("questions", res.Questions))
	return nil
}
