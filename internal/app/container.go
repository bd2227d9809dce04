package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dhruvtara/internal/ai/gemini"
	"dhruvtara/internal/config"
	"dhruvtara/internal/database"
	"dhruvtara/internal/database/migration"
	dbpostgres "dhruvtara/internal/database/postgres"
	"dhruvtara/internal/enricher"
	"dhruvtara/internal/infrastructure/cache"
	"dhruvtara/internal/ml"
	"dhruvtara/internal/pkg/jwt"
	"dhruvtara/internal/pkg/logger"
	"dhruvtara/internal/pkg/metrics"
	"dhruvtara/internal/repository"
	"dhruvtara/internal/usecase"
	"dhruvtara/migrations"

	"go.uber.org/zap"
)

const metricsNamespace = "dhruvtara"

// Container owns every long-lived dependency of the server.
type Container struct {
	Config  config.Config
	Logger  *zap.Logger
	Metrics *metrics.Metrics

	DB        database.DB
	Cache     *cache.Redis
	Predictor *ml.Predictor
	JWT       *jwt.HMACService

	Auth       *usecase.Auth
	User       *usecase.User
	Assessment *usecase.Assessment
	CareerPath *usecase.CareerPath
}

func NewContainer(ctx context.Context, cfg config.Config, log *zap.Logger) (*Container, error) {
	log = logger.OrNop(log)

	predictor, err := ml.Load(ml.Paths{
		Dir:          cfg.Model.Dir,
		Scaler:       cfg.Model.ScalerPath,
		Classifier:   cfg.Model.ClassifierPath,
		LabelEncoder: cfg.Model.LabelEncoderPath,
	})
	if err != nil {
		return nil, fmt.Errorf("load model artifacts: %w", err)
	}
	log.Info("model artifacts loaded", zap.Strings("careers", predictor.Labels()))

	if !cfg.Database.Enabled() {
		return nil, errors.New("database is not configured: set DB_HOST, DB_NAME and DB_USER")
	}
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	db, err := dbpostgres.Connect(connectCtx, cfg.Database, log.Named("postgres"))
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if cfg.Database.RunMigrations {
		runner := migration.Runner{Dir: cfg.Database.MigrationsDir, FS: migrations.FS, Logger: log}
		if _, err := runner.Run(ctx, db.SQLDB()); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	var generator enricher.ContentGenerator
	if cfg.Gemini.APIKey == "" {
		log.Warn("GEMINI_API_KEY not set, career details will use fallback content")
	} else {
		g, err := gemini.NewGenerator(ctx, cfg.Gemini, log)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		log.Info("gemini generator ready", zap.String("model", g.Model()))
		generator = g
	}

	m := metrics.New(metricsNamespace)
	redis := cache.NewRedis(cfg.Redis, log)
	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
		jwt.WithIssuer(cfg.App.AppName),
	)

	userRepo := repository.NewPostgresUserRepository(db)
	assessmentRepo := repository.NewPostgresAssessmentRepository(db)

	assessmentUC := usecase.NewAssessmentUsecase(assessmentRepo, predictor, redis, m, log)
	careerEnricher := enricher.New(generator, log.Named("enricher"), m, cfg.Gemini.MaxLogLength)

	return &Container{
		Config:     cfg,
		Logger:     log,
		Metrics:    m,
		DB:         db,
		Cache:      redis,
		Predictor:  predictor,
		JWT:        jwtSvc,
		Auth:       usecase.NewAuthUsecase(userRepo, jwtSvc, redis, log.Named("auth")),
		User:       usecase.NewUserUsecase(userRepo),
		Assessment: assessmentUC,
		CareerPath: usecase.NewCareerPathUsecase(assessmentUC, careerEnricher, log),
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
