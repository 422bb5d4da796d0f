// Package container provides dependency injection using Uber FX
package container

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"

	appworkflow "github.com/mealforge/v1/internal/application/workflow"
	"github.com/mealforge/v1/internal/infrastructure/ai/openai"
	"github.com/mealforge/v1/internal/infrastructure/cache/memory"
	"github.com/mealforge/v1/internal/infrastructure/config"
	"github.com/mealforge/v1/internal/infrastructure/http/handlers"
	"github.com/mealforge/v1/internal/infrastructure/http/server"
	"github.com/mealforge/v1/internal/infrastructure/monitoring"
	"github.com/mealforge/v1/internal/infrastructure/search/tavily"
	"github.com/mealforge/v1/internal/ports/inbound"
	"github.com/mealforge/v1/internal/ports/outbound"
	"github.com/mealforge/v1/pkg/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	MonitoringModule,
	CacheModule,
	GatewayModule,
	WorkflowModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// MonitoringModule provides metrics collection
var MonitoringModule = fx.Provide(
	func(log *zap.Logger) *monitoring.MetricsCollector {
		return monitoring.NewMetricsCollector(prometheus.DefaultRegisterer, log)
	},
)

// CacheModule provides caching
var CacheModule = fx.Provide(
	func(log *zap.Logger) outbound.CacheRepository {
		log.Info("Using in-memory cache")
		return memory.NewCacheRepository()
	},
)

// GatewayModule provides the model gateway and the optional search service.
// A nil SearchService means the research stage is not wired into runs.
var GatewayModule = fx.Provide(
	fx.Annotate(
		func(cfg *config.Config, log *zap.Logger) *openai.Client {
			return openai.NewClient(cfg.AI, log)
		},
		fx.As(new(outbound.ModelGateway)),
	),

	func(cfg *config.Config, cache outbound.CacheRepository, log *zap.Logger) outbound.SearchService {
		if !cfg.Search.Enabled() {
			log.Info("Search API key not configured, research stage disabled")
			return nil
		}
		client := tavily.NewClient(cfg.Search, log)
		return tavily.NewCachedSearchService(client, cache, cfg.Search.CacheTTL, log)
	},
)

// WorkflowModule provides the pipeline stages and the orchestrator
var WorkflowModule = fx.Provide(
	func(gateway outbound.ModelGateway, metrics *monitoring.MetricsCollector, log *zap.Logger) *appworkflow.DraftGenerator {
		return appworkflow.NewDraftGenerator(gateway, metrics, log)
	},

	func(
		cfg *config.Config,
		gateway outbound.ModelGateway,
		search outbound.SearchService,
		metrics *monitoring.MetricsCollector,
		log *zap.Logger,
	) *appworkflow.ResearchAugmenter {
		if search == nil {
			return nil
		}
		return appworkflow.NewResearchAugmenter(
			gateway,
			search,
			cfg.Search.MaxQueries,
			cfg.Search.MaxResults,
			cfg.Workflow.MaxCookingTips,
			metrics,
			log,
		)
	},

	func(cfg *config.Config, gateway outbound.ModelGateway, metrics *monitoring.MetricsCollector, log *zap.Logger) *appworkflow.TipCompiler {
		return appworkflow.NewTipCompiler(gateway, cfg.Workflow.MaxCookingTips, metrics, log)
	},

	func(cfg *config.Config, gateway outbound.ModelGateway, metrics *monitoring.MetricsCollector, log *zap.Logger) *appworkflow.CompletenessAuditor {
		return appworkflow.NewCompletenessAuditor(
			gateway,
			cfg.Workflow.MinInstructionSteps,
			cfg.Workflow.MinAvgStepLength,
			metrics,
			log,
		)
	},

	fx.Annotate(
		func(
			cfg *config.Config,
			draft *appworkflow.DraftGenerator,
			research *appworkflow.ResearchAugmenter,
			compiler *appworkflow.TipCompiler,
			auditor *appworkflow.CompletenessAuditor,
			metrics *monitoring.MetricsCollector,
			log *zap.Logger,
		) *appworkflow.Orchestrator {
			return appworkflow.NewOrchestrator(
				draft,
				research,
				compiler,
				auditor,
				cfg.Workflow.RunTimeout,
				metrics,
				log,
			)
		},
		fx.As(new(inbound.RecipeWorkflowService)),
	),
)

// HTTPModule provides the HTTP server
var HTTPModule = fx.Provide(
	func(svc inbound.RecipeWorkflowService, cfg *config.Config, log *zap.Logger) *handlers.APIHandlers {
		return handlers.NewAPIHandlers(svc, cfg.App.Version, log)
	},
	server.NewServer,
)

// LifecycleModule manages server startup and shutdown
var LifecycleModule = fx.Invoke(
	func(lc fx.Lifecycle, srv *server.Server, log *zap.Logger) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				go func() {
					if err := srv.Start(); err != nil {
						log.Error("HTTP server stopped", zap.Error(err))
					}
				}()
				return nil
			},
			OnStop: func(ctx context.Context) error {
				return srv.Shutdown(ctx)
			},
		})
	},
)
