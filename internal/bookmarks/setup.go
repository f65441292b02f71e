package bookmarks

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/mindsync/internal/common"
	"github.com/dtnitsch/mindsync/models"
	"github.com/dtnitsch/mindsync/pkg/auth"
	"github.com/dtnitsch/mindsync/pkg/bookmark"
	"github.com/dtnitsch/mindsync/pkg/classifier"
	"github.com/dtnitsch/mindsync/pkg/db"
	"github.com/dtnitsch/mindsync/pkg/enricher"
	"github.com/dtnitsch/mindsync/pkg/generator"
	"github.com/dtnitsch/mindsync/pkg/vault"
)

// env is everything a bookmark command needs.
type env struct {
	config  models.Config
	logger  *slog.Logger
	service *bookmark.Service
	closer  io.Closer
}

func (e *env) Close() error {
	if e.closer == nil {
		return nil
	}
	return e.closer.Close()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// LoadConfig reads --config and applies the global flag overrides.
func LoadConfig(c *cli.Context) (models.Config, error) {
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return cfg, err
	}

	if c.IsSet("store") {
		cfg.Store = c.String("store")
	}
	if c.IsSet("db") {
		cfg.DBPath = c.String("db")
	}
	if c.IsSet("vault") {
		cfg.VaultDir = c.String("vault")
	}
	if c.IsSet("user") {
		cfg.UserID = c.String("user")
	}
	if c.IsSet("seed") {
		cfg.Seed = c.Uint64("seed")
	}
	if c.IsSet("detect-language") {
		cfg.DetectLanguage = c.Bool("detect-language")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// NewPipeline returns the classifier and enricher for cfg.
func NewPipeline(cfg models.Config, logger *slog.Logger) (*classifier.Classifier, *enricher.Enricher) {
	enricherOpts := []enricher.Option{enricher.WithLogger(logger)}
	if cfg.Seed != 0 {
		enricherOpts = append(enricherOpts, enricher.WithSeed(cfg.Seed))
	}
	return classifier.New(classifier.WithLogger(logger)), enricher.New(enricherOpts...)
}

// setup loads config and opens the configured store.
func setup(c *cli.Context) (*env, error) {
	logger := common.NewLogger(c)

	cfg, err := LoadConfig(c)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var (
		store  bookmark.Store
		closer io.Closer = nopCloser{}
	)
	switch cfg.Store {
	case models.StoreVault:
		v, err := vault.Open(cfg.VaultDir,
			vault.WithLogger(logger),
			vault.WithWatchPattern(cfg.WatchPattern),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to open vault: %w", err)
		}
		store = v
	default:
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		store, closer = database, database
	}

	cls, enr := NewPipeline(cfg, logger)
	opts := []bookmark.Option{
		bookmark.WithLogger(logger),
		bookmark.WithClassifier(cls),
		bookmark.WithEnricher(enr),
	}
	if cfg.DetectLanguage {
		opts = append(opts, bookmark.WithLanguageDetector(generator.NewLinguaDetector()))
	}

	logger.Debug("store opened", "store", cfg.Store, "user", cfg.UserID)

	return &env{
		config:  cfg,
		logger:  logger,
		service: bookmark.NewService(store, auth.ContextResolver{Default: cfg.UserID}, opts...),
		closer:  closer,
	}, nil
}
