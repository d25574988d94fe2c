package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/msanchezgrice/futurenews-sub001/db"
	"github.com/msanchezgrice/futurenews-sub001/internal/config"
	"github.com/msanchezgrice/futurenews-sub001/internal/curation"
	"github.com/msanchezgrice/futurenews-sub001/internal/model"
	"github.com/msanchezgrice/futurenews-sub001/internal/repository"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	cfg, err := config.Load(os.Getenv("FUTURENEWS_CONFIG"))
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}
	cfg.ApplyEnv()

	topicRepo := repository.NewTopicRepository(db.DB)
	storyRepo := repository.NewStoryRepository(db.DB)
	curationRepo := repository.NewCurationRepository(db.DB)

	engine, err := cfg.NewEngine(topicRepo, slog.Default())
	if err != nil {
		log.Fatalf("error building curation engine: %v", err)
	}

	day := os.Getenv("CURATION_DAY")
	if day == "" {
		day = time.Now().UTC().Format(model.DayFormat)
	}
	keyStories := getEnvInt("FUTURENEWS_KEY_STORIES", 2)

	ctx := context.Background()

	daily, err := engine.GenerateDailyCuration(ctx, day)
	if err != nil {
		if errors.Is(err, curation.ErrDisabled) {
			slog.Info("curation disabled, nothing to do", "day", day)
			return
		}
		log.Fatalf("error generating daily curation: %v", err)
	}

	if err := curationRepo.SaveDaily(ctx, daily); err != nil {
		log.Fatalf("error saving daily curation: %v", err)
	}

	var curated, failed int
	for _, edition := range daily.Editions {
		candidates := model.CandidatesFromEdition(edition)

		if err := storyRepo.SaveCandidates(ctx, candidates); err != nil {
			slog.Error("error saving candidates", "years_forward", edition.YearsForward, "error", err)
			failed++
			continue
		}

		plan, err := engine.GenerateEditionCurationPlan(ctx, candidates, day, edition.YearsForward, keyStories)
		if err != nil {
			slog.Error("error curating edition", "years_forward", edition.YearsForward, "error", err)
			failed++
			continue
		}

		// One fingerprint per cycle: renders derived from this pass
		// must match the edition payload clients already hold.
		plan.GeneratedAt = daily.GeneratedAt

		if err := storyRepo.SaveCurations(ctx, plan); err != nil {
			slog.Error("error saving curation plan", "years_forward", edition.YearsForward, "error", err)
			failed++
			continue
		}

		curated++
	}

	slog.Info("curation cycle complete",
		"day", day, "mode", daily.Mode, "fingerprint", daily.GeneratedAt,
		"editions", len(daily.Editions), "curated", curated, "failed", failed)
}

func getEnvInt(name string, defaultValue int) int {
	v := os.Getenv(name)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		slog.Warn("invalid env value, using default", "name", name, "value", v, "default", defaultValue)
		return defaultValue
	}
	return n
}
