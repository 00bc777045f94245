package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"fabula/internal/avatar"
	"fabula/internal/config"
	"fabula/internal/repository/sqlite"
	"fabula/internal/service"
)

func main() {
	initDB := flag.Bool("init", false, "drop and recreate the database schema, then seed relation types")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	flag.Parse()

	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg, cfgPath, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config", zap.String("path", cfgPath), zap.Error(err))
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}

	store, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal("failed to open database", zap.String("path", cfg.Database.Path), zap.Error(err))
	}
	defer store.Close()
	log.Info("database opened", zap.String("path", cfg.Database.Path))

	ctx := context.Background()

	if *initDB {
		if err := store.Init(ctx); err != nil {
			log.Fatal("failed to initialize database", zap.Error(err))
		}
		if cfg.Relations.SeedPath != "" {
			if err := store.SeedRelationsFromFile(ctx, cfg.Relations.SeedPath); err != nil {
				log.Fatal("failed to seed relation types",
					zap.String("path", cfg.Relations.SeedPath), zap.Error(err))
			}
		}
		log.Info("database initialized")
		return
	}

	avatars, err := avatar.NewStore(cfg.Avatars.Dir, log)
	if err != nil {
		log.Fatal("failed to open avatar store", zap.String("dir", cfg.Avatars.Dir), zap.Error(err))
	}

	storySvc := service.NewStoryService(store, avatars, log)
	charSvc := service.NewCharacterService(store, avatars, log)

	// The desktop UI embeds the services directly; running the binary on
	// its own prints a summary of the catalogue.
	stories, err := storySvc.Stories(ctx)
	if err != nil {
		log.Fatal("failed to list stories", zap.Error(err))
	}

	fmt.Printf("%d stories\n", len(stories))
	for _, story := range stories {
		characters, err := charSvc.CharactersByStory(ctx, story.ID)
		if err != nil {
			log.Fatal("failed to list characters", zap.Int64("story_id", story.ID), zap.Error(err))
		}
		mean, err := storySvc.MeanAge(ctx, story.ID)
		if err != nil {
			log.Fatal("failed to compute mean age", zap.Int64("story_id", story.ID), zap.Error(err))
		}
		completion, err := storySvc.CompletionPercent(ctx, story.ID)
		if err != nil {
			log.Fatal("failed to compute completion", zap.Int64("story_id", story.ID), zap.Error(err))
		}
		fmt.Printf("  [%d] %s: %d characters, mean age %.1f, %.1f%% complete\n",
			story.ID, story.Name, len(characters), mean, completion)
	}
}
