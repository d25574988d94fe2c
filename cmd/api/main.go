package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/msanchezgrice/futurenews-sub001/db"
	"github.com/msanchezgrice/futurenews-sub001/internal/config"
	"github.com/msanchezgrice/futurenews-sub001/internal/handler"
	"github.com/msanchezgrice/futurenews-sub001/internal/model"
	"github.com/msanchezgrice/futurenews-sub001/internal/rendercache"
	"github.com/msanchezgrice/futurenews-sub001/internal/repository"
)

// cachedEditions fronts the daily payload reads with a process-local
// mirror, so edition traffic between curation cycles skips Postgres.
type cachedEditions struct {
	*repository.CurationRepository
	mirror *rendercache.Memory
}

func (s cachedEditions) GetDaily(ctx context.Context, day string) (*model.DailyCuration, error) {
	if v, ok := s.mirror.Get(day, ""); ok {
		return v.(*model.DailyCuration), nil
	}
	daily, err := s.CurationRepository.GetDaily(ctx, day)
	if err != nil || daily == nil {
		return daily, err
	}
	s.mirror.Set(day, daily.GeneratedAt, daily)
	return daily, nil
}

// editionStore joins the two repositories behind the edition handler's
// store interface.
type editionStore struct {
	cachedEditions
	*repository.StoryRepository
}

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	err = db.ConnectRedis()
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

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

	renderStore := rendercache.NewStore(db.Redis)
	loader := rendercache.NewLoader(renderStore, func(ctx context.Context, storyID, fingerprint string) (*model.RenderedArticle, error) {
		cand, err := storyRepo.GetCandidate(ctx, storyID)
		if err != nil {
			return nil, err
		}
		if cand == nil {
			return nil, rendercache.ErrStoryNotFound
		}

		cur, stamp, err := storyRepo.GetCuration(ctx, storyID)
		if err != nil {
			return nil, err
		}
		if cur == nil {
			// Never story-curated: render straight off the candidate,
			// stamped with the cycle that produced it.
			cur = &model.StoryCuration{StoryID: cand.StoryID, FutureEventSeed: cand.FutureEvent}
		}
		if stamp == "" {
			stamp, err = curationRepo.LatestFingerprint(ctx, cand.Day)
			if err != nil {
				return nil, err
			}
		}
		return engine.RenderArticle(ctx, *cand, *cur, stamp)
	}, slog.Default())

	editions := cachedEditions{curationRepo, rendercache.NewMemory(rendercache.EditionTTL)}
	editionHandler := handler.NewEditionHandler(editionStore{editions, storyRepo})
	articleHandler := handler.NewArticleHandler(loader)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/editions/:day/:years", editionHandler.GetEdition)
	r.GET("/editions/:day/:years/plan", editionHandler.GetPlan)
	r.GET("/stories/:id/article", articleHandler.GetArticle)
	r.GET("/health", editionHandler.GetHealth)

	err = r.Run(":8080")
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
