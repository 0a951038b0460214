package app

import (
	"fmt"
	"net/http"
	"time"

	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/pickemhq/pickem-pool/external/scorefeed"
	"github.com/pickemhq/pickem-pool/internal/config"
	"github.com/pickemhq/pickem-pool/internal/domain/game"
	"github.com/pickemhq/pickem-pool/internal/domain/pick"
	"github.com/pickemhq/pickem-pool/internal/domain/standings"
	"github.com/pickemhq/pickem-pool/internal/domain/team"
	"github.com/pickemhq/pickem-pool/internal/infrastructure/account/anubis"
	"github.com/pickemhq/pickem-pool/internal/infrastructure/jobqueue"
	"github.com/pickemhq/pickem-pool/internal/infrastructure/repository/memory"
	"github.com/pickemhq/pickem-pool/internal/infrastructure/repository/postgres"
	"github.com/pickemhq/pickem-pool/internal/interfaces/httpapi"
	"github.com/pickemhq/pickem-pool/internal/platform/cache"
	idgen "github.com/pickemhq/pickem-pool/internal/platform/id"
	"github.com/pickemhq/pickem-pool/internal/platform/logging"
	"github.com/pickemhq/pickem-pool/internal/platform/resilience"
	"github.com/pickemhq/pickem-pool/internal/usecase"
)

type repositories struct {
	games  game.Repository
	picks  pick.Repository
	weekly standings.WeeklyRepository
	season standings.SeasonRepository
}

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	var cacheStore *cache.Store
	if cfg.CacheEnabled {
		cacheStore = cache.NewStore(cfg.CacheTTL)
	}

	gate := usecase.NewDeadlineGate(cfg.DeadlineOffsets, cfg.DeadlineDefaultOffset)
	resolver := team.NewResolver(memory.SeedTeams())
	idGenerator := idgen.NewRandomGenerator()

	rankingSvc := usecase.NewRankingService(repos.games, repos.picks, repos.weekly, usecase.NewTiebreakEvaluator(), cacheStore)
	seasonSvc := usecase.NewSeasonService(repos.weekly, repos.season, cacheStore)
	settlementSvc := usecase.NewSettlementService(repos.games, repos.picks, rankingSvc, seasonSvc)
	pickSvc := usecase.NewPickService(repos.games, repos.picks, gate, idGenerator)

	var enqueuer usecase.SettlementEnqueuer
	if cfg.QStashEnabled {
		enqueuer = jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.QStashCircuitEnabled,
				FailureThreshold: cfg.QStashCircuitFailureCount,
				OpenTimeout:      cfg.QStashCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.QStashCircuitHalfOpenMaxReq,
			},
		}, logger)
	}

	ingestionSvc := usecase.NewIngestionService(repos.games, resolver, idGenerator, settlementSvc, enqueuer)

	var feedSyncSvc *usecase.FeedSyncService
	if cfg.ScoreFeedEnabled {
		feedClient := scorefeed.NewClient(scorefeed.ClientConfig{
			BaseURL:            cfg.ScoreFeedBaseURL,
			Token:              cfg.ScoreFeedToken,
			Timeout:            cfg.ScoreFeedTimeout,
			MaxRetries:         cfg.ScoreFeedMaxRetries,
			MaxConcurrentWeeks: cfg.ScoreFeedMaxConcurrentWeeks,
			Logger:             logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.ScoreFeedCircuitEnabled,
				FailureThreshold: cfg.ScoreFeedCircuitFailureCount,
				OpenTimeout:      cfg.ScoreFeedCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.ScoreFeedCircuitHalfOpenMaxReq,
			},
		})
		feedSyncSvc = usecase.NewFeedSyncService(feedClient, ingestionSvc)
	}

	anubisClient := anubis.NewClient(anubis.ClientConfig{
		BaseURL:        cfg.AnubisBaseURL,
		IntrospectPath: cfg.AnubisIntrospectURL,
		AdminKey:       cfg.AnubisAdminKey,
		Timeout:        cfg.AnubisTimeout,
		CacheTTL:       30 * time.Second,
		Logger:         logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.AnubisCircuitEnabled,
			FailureThreshold: cfg.AnubisCircuitFailureCount,
			OpenTimeout:      cfg.AnubisCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.AnubisCircuitHalfOpenMaxReq,
		},
	})

	handler := httpapi.NewHandler(
		pickSvc,
		settlementSvc,
		rankingSvc,
		seasonSvc,
		ingestionSvc,
		feedSyncSvc,
		cfg.RecomputeMaxWorkers,
		logger,
	)
	router := httpapi.NewRouter(handler, anubisClient, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, error) {
	if cfg.DBURL == "" {
		logger.Info("database url not configured, using in-memory repositories")
		return repositories{
			games:  memory.NewGameRepository(nil),
			picks:  memory.NewPickRepository(),
			weekly: memory.NewWeeklyResultRepository(),
			season: memory.NewSeasonStandingRepository(),
		}, nil
	}

	db, err := otelsqlx.Connect(
		"postgres",
		normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return repositories{}, fmt.Errorf("connect postgres: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	logger.Info("postgres connected", "database", dbNameFromURL(cfg.DBURL))

	return repositories{
		games:  postgres.NewGameRepository(db),
		picks:  postgres.NewPickRepository(db),
		weekly: postgres.NewWeeklyResultRepository(db),
		season: postgres.NewSeasonStandingRepository(db),
	}, nil
}
