// Package bootstrap wires configuration into repositories, services and
// usecases for the server and the CLI.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/fadilmartias/project-review/internal/auth"
	"github.com/fadilmartias/project-review/internal/config"
	"github.com/fadilmartias/project-review/internal/database"
	"github.com/fadilmartias/project-review/internal/export"
	"github.com/fadilmartias/project-review/internal/extract"
	"github.com/fadilmartias/project-review/internal/repository"
	"github.com/fadilmartias/project-review/internal/repository/inmem"
	"github.com/fadilmartias/project-review/internal/scoring"
	"github.com/fadilmartias/project-review/internal/service"
	"github.com/fadilmartias/project-review/internal/usecase"
)

type Container struct {
	Users       usecase.UserRepository
	Projects    usecase.ProjectRepository
	Reviews     usecase.ReviewRepository
	Tokens      *auth.TokenManager
	Revocations auth.RevocationStore

	UserUsecase    *usecase.UserUsecase
	ProjectUsecase *usecase.ProjectUsecase
	ReviewUsecase  *usecase.ReviewUsecase
	Exporter       *export.Service

	closers []func() error
}

// Close waits for background work and releases connections.
func (c *Container) Close() error {
	if c.ProjectUsecase != nil {
		c.ProjectUsecase.Wait()
	}
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i]())
	}
	return errors.Join(errs...)
}

func Build(ctx context.Context, log *zap.Logger) (*Container, error) {
	appCfg := config.LoadAppConfig()
	dbCfg := config.LoadDBConfig()
	insightsCfg := config.LoadInsightsConfig()
	c := &Container{}

	var embeddings usecase.EmbeddingRepository
	switch dbCfg.Driver {
	case config.DriverMemory:
		db := inmem.Open()
		c.Users = inmem.NewUserRepository(db)
		c.Projects = inmem.NewProjectRepository(db)
		c.Reviews = inmem.NewReviewRepository(db)
		log.Warn("using in-memory storage; data is lost on exit")
	case config.DriverPostgres, "":
		withVectors := insightsCfg.Provider == config.InsightsGemini
		db, err := database.ConnectDB(dbCfg, appCfg, withVectors, log)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err == nil {
			c.closers = append(c.closers, sqlDB.Close)
		}
		c.Users = repository.NewUserRepository(db)
		c.Projects = repository.NewProjectRepository(db)
		c.Reviews = repository.NewReviewRepository(db)
		if withVectors {
			embeddings = repository.NewEmbeddingRepository(db)
		}
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", dbCfg.Driver)
	}

	if err := c.buildAuth(ctx, log); err != nil {
		_ = c.Close()
		return nil, err
	}

	uploadCfg := config.LoadUploadConfig()
	c.ProjectUsecase = usecase.NewProjectUsecase(c.Projects, c.Reviews, extract.New(uploadCfg.ExtractMaxBytes), scoring.Heuristic{}, log)
	c.ReviewUsecase = usecase.NewReviewUsecase(c.Reviews, c.Projects, log)
	c.UserUsecase = usecase.NewUserUsecase(c.Users, c.Tokens, c.Revocations, log)
	c.Exporter = export.NewService(c.Projects, c.Reviews)

	insights, err := buildInsights(ctx, insightsCfg, c.Projects, embeddings, log)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	if insights != nil {
		c.ProjectUsecase.WithInsights(insights)
	}
	return c, nil
}

func (c *Container) buildAuth(ctx context.Context, log *zap.Logger) error {
	authCfg := config.LoadAuthConfig()
	secret := authCfg.JWTSecret
	if secret == "" {
		log.Warn("JWT_SECRET not set; tokens will not survive a restart")
		secret = auth.RandomSecret()
	}
	tokens, err := auth.NewTokenManager(secret, authCfg.TokenTTL, config.LoadAppConfig().Name)
	if err != nil {
		return err
	}
	c.Tokens = tokens

	client, err := database.ConnectRedis(ctx, config.LoadRedisConfig())
	if err != nil {
		return err
	}
	if client == nil {
		c.Revocations = auth.NewMemoryRevocationStore()
		return nil
	}
	c.closers = append(c.closers, client.Close)
	c.Revocations = auth.NewRedisRevocationStore(client)
	return nil
}

func buildInsights(ctx context.Context, cfg *config.InsightsConfig, projects usecase.ProjectRepository, embeddings usecase.EmbeddingRepository, log *zap.Logger) (*usecase.InsightsUsecase, error) {
	switch cfg.Provider {
	case "":
		return nil, nil
	case config.InsightsGemini:
		gemini, err := service.NewGeminiService(ctx, config.LoadGeminiConfig(), log)
		if err != nil {
			return nil, err
		}
		var embedder usecase.Embedder
		if embeddings != nil {
			embedder = gemini
		}
		return usecase.NewInsightsUsecase(projects, embeddings, gemini, embedder, log), nil
	case config.InsightsOpenRouter:
		openRouter, err := service.NewOpenRouterService(config.LoadOpenRouterConfig(), log)
		if err != nil {
			return nil, err
		}
		return usecase.NewInsightsUsecase(projects, nil, openRouter, nil, log), nil
	default:
		return nil, fmt.Errorf("unknown INSIGHTS_PROVIDER %q", cfg.Provider)
	}
}
