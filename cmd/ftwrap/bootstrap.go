package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/custodia-labs/ftwrap/internal/adapters/driven/checksum"
	"github.com/custodia-labs/ftwrap/internal/adapters/driven/config/file"
	"github.com/custodia-labs/ftwrap/internal/adapters/driven/fasttext"
	"github.com/custodia-labs/ftwrap/internal/adapters/driven/github"
	"github.com/custodia-labs/ftwrap/internal/adapters/driven/installer"
	"github.com/custodia-labs/ftwrap/internal/adapters/driven/shell"
	"github.com/custodia-labs/ftwrap/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ftwrap/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/ftwrap/internal/adapters/driven/watch"
	"github.com/custodia-labs/ftwrap/internal/adapters/driving/cli"
	"github.com/custodia-labs/ftwrap/internal/core/domain"
	"github.com/custodia-labs/ftwrap/internal/core/ports/driven"
	"github.com/custodia-labs/ftwrap/internal/core/services"
	"github.com/custodia-labs/ftwrap/internal/logger"
	"github.com/custodia-labs/ftwrap/internal/preprocessors"
)

// bootstrap wires adapters into services. It runs after flag parsing so
// every adapter logger sees the final verbosity.
func bootstrap(opts cli.Options) (*cli.Services, error) {
	registry := preprocessors.NewDefaultRegistry()

	configStore, models, closeStore, err := openStores(opts.Ephemeral)
	if err != nil {
		return nil, err
	}

	settingsService := services.NewSettingsService(configStore, registry.Has)
	settings, err := settingsService.Get()
	if err != nil {
		closeStore()
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	if opts.WorkDir != "" {
		settings.WorkDir = opts.WorkDir
	}
	if settings.Verbose || opts.Verbose {
		logger.SetVerbose(true)
	}

	logger.Section("Bootstrap")
	logger.Debug("fastText %s, work dir %q, ephemeral %v", settings.Version, settings.WorkDir, opts.Ephemeral)

	log := logger.L()
	invoker := shell.New(shell.Config{
		WorkDir: settings.WorkDir,
		Timeout: settings.Timeout,
	}, log.Named("shell"))

	inst, err := installer.New(invoker, *settings, log.Named("installer"))
	if err != nil {
		closeStore()
		return nil, fmt.Errorf("configuring installer: %w", err)
	}

	runner := fasttext.NewRunner(invoker, inst, settings.Executable, log.Named("fasttext"))
	tool := fasttext.NewClient(runner, log.Named("fasttext"))
	hasher := checksum.New()

	textService := services.NewTextService(tool, inst, models, hasher, settings.WorkDir)

	pipeline, err := registry.BuildPipeline(settings.Preprocessors)
	if err != nil {
		closeStore()
		return nil, fmt.Errorf("building preprocessors: %w", err)
	}
	textService.SetPreprocessors(pipeline)

	if settings.EmbeddingModel != "" {
		embedding, err := fasttext.NewEmbeddingService(tool, fasttext.EmbeddingConfig{
			Model: resolveModelPath(models, settings.EmbeddingModel),
		})
		if err != nil {
			closeStore()
			return nil, err
		}
		textService.SetEmbeddingService(embedding)
	}

	lister, err := github.NewLister(github.Config{Token: settings.GitHubToken}, log.Named("github"))
	if err != nil {
		closeStore()
		return nil, fmt.Errorf("configuring release lister: %w", err)
	}

	return &cli.Services{
		Text:     textService,
		Models:   services.NewModelService(models, hasher, watch.New(log)),
		Settings: settingsService,
		Releases: services.NewReleaseService(lister, inst),
		Close: func() error {
			closeStore()
			return nil
		},
	}, nil
}

// openStores opens the config store and model catalog, in memory when
// ephemeral is set.
func openStores(ephemeral bool) (driven.ConfigStore, driven.ModelStore, func(), error) {
	if ephemeral {
		return memory.NewConfigStore(nil), memory.NewModelStore(), func() {}, nil
	}

	home, err := file.DefaultDir()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("locating ftwrap home: %w", err)
	}

	configStore, err := file.NewConfigStore(home)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening config: %w", err)
	}

	store, err := sqlite.NewStore(filepath.Join(home, "data"))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening model catalog: %w", err)
	}

	closeStore := func() {
		if err := store.Close(); err != nil {
			logger.L().Warn("closing model catalog", zap.Error(err))
		}
	}
	return configStore, store.ModelStore(), closeStore, nil
}

// resolveModelPath maps a catalog name to its artifact path. Anything else
// is used as a path.
func resolveModelPath(models driven.ModelStore, ref string) string {
	record, err := models.GetByName(context.Background(), ref)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("Looking up embedding model %s: %v", ref, err)
		}
		return ref
	}
	return record.Path
}
