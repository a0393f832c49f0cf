package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"rental_coach_backend/internal/config"
	"rental_coach_backend/internal/controller"
	"rental_coach_backend/internal/repository"
	"rental_coach_backend/internal/service"
	"rental_coach_backend/internal/util"
	"rental_coach_backend/pkg/configwatcher"
	"rental_coach_backend/pkg/database"
	"rental_coach_backend/pkg/logger"
	"rental_coach_backend/pkg/monitoring"
	"rental_coach_backend/pkg/tracing"
	"rental_coach_backend/web"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/generative-ai-go/genai"
	"github.com/robfig/cron/v3"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	genai           *genai.Client
	tracer          *sdktrace.TracerProvider
	cron            *cron.Cron
	ctx             context.Context
	cancel          context.CancelFunc
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	listings      repository.ListingRepository
	redFlags      *repository.RedFlagRepository
	conversations *repository.ConversationRepository
}

type services struct {
	matcher *service.QuestionMatcher
	tracker *service.ProgressTracker
	llm     service.LanguageModel
	chat    *service.ChatService
}

type controllers struct {
	page    *controller.PageController
	chat    *controller.ChatController
	summary *controller.SummaryController
	health  *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(cfg *config.Config) (*repositories, error) {
	catalog := repository.DefaultListings()
	if cfg.Listings.SeedFile != "" {
		seeded, err := repository.LoadListingSeed(cfg.Listings.SeedFile)
		if err != nil {
			return nil, err
		}
		catalog = seeded
		logger.Log.Info("Listing seed loaded", zap.String("file", cfg.Listings.SeedFile), zap.Int("count", len(seeded)))
	}

	repos := &repositories{
		redFlags:      repository.NewRedFlagRepository(repository.DefaultRedFlags()).WithListingOverrides(catalog),
		conversations: repository.NewConversationRepository(),
	}

	switch cfg.Listings.Source {
	case util.ListingSourceMySQL:
		db, err := database.InitDB(&cfg.Database, cfg.Server.Mode == gin.DebugMode)
		if err != nil {
			return nil, err
		}
		a.DB = db
		gormRepo := repository.NewGormListingRepository(db)
		if err := gormRepo.SeedIfEmpty(context.Background(), catalog); err != nil {
			return nil, err
		}
		repos.listings = gormRepo
	default:
		repos.listings = repository.NewMemoryListingRepository(catalog)
	}
	return repos, nil
}

// needsGenAI 对话或向量任一使用 gemini 时才创建 client
func needsGenAI(cfg *config.Config) bool {
	return strings.EqualFold(cfg.AI.Provider, util.ProviderGemini) ||
		strings.EqualFold(cfg.Similarity.Provider, util.ProviderGemini)
}

func (a *App) initEmbedder(cfg *config.Config) (service.Embedder, error) {
	var e service.Embedder
	switch strings.ToLower(cfg.Similarity.Provider) {
	case "", util.ProviderLexicon:
		e = service.NewLexiconEmbedder()
	case util.ProviderOpenAI:
		e = service.NewOpenAIEmbedder(cfg.AI.KeyFor(util.ProviderOpenAI), cfg.AI.BaseURL, cfg.Similarity.Model)
	case util.ProviderGemini:
		if a.genai == nil {
			return nil, fmt.Errorf("%w: gemini embeddings need a gemini api key", util.ErrProviderUnavailable)
		}
		e = service.NewGeminiEmbedder(a.genai, cfg.Similarity.Model)
	default:
		return nil, fmt.Errorf("unknown similarity provider: %s", cfg.Similarity.Provider)
	}

	if cfg.Similarity.Cache {
		if a.Redis == nil {
			logger.Log.Warn("similarity.cache is on but redis is disabled, caching skipped")
		} else {
			e = service.NewCachedEmbedder(e, a.Redis, cfg.Similarity.CacheTTL)
		}
	}
	return e, nil
}

func (a *App) initServices(repos *repositories, cfg *config.Config) (*services, error) {
	s := &services{}

	embedder, err := a.initEmbedder(cfg)
	if err != nil {
		return nil, err
	}

	questions := cfg.Grading.Questions
	if len(questions) == 0 {
		questions = config.DefaultQuestions
	}
	s.matcher = service.NewQuestionMatcher(questions, service.NewEmbeddingScorer(embedder), cfg.Grading.Threshold)
	s.tracker = service.NewProgressTracker(questions, repos.conversations)

	s.llm, err = service.NewLanguageModel(cfg.AI, a.genai)
	if errors.Is(err, util.ErrProviderUnavailable) {
		logger.Log.Warn("Language model unavailable, chat turns will fail until configured", zap.Error(err))
		s.llm = service.NewUnavailableModel(err)
	} else if err != nil {
		return nil, err
	}

	s.chat = service.NewChatService(
		repos.listings,
		repos.redFlags,
		s.llm,
		s.matcher,
		s.tracker,
		cfg.AI.HistoryTurns,
		cfg.AI.Timeout,
	)
	return s, nil
}

func (a *App) initControllers(s *services, repos *repositories) *controllers {
	return &controllers{
		page:    controller.NewPageController(s.chat),
		chat:    controller.NewChatController(s.chat),
		summary: controller.NewSummaryController(s.chat),
		health:  controller.NewHealthController(repos.listings, s.llm.Name()),
	}
}

// startBackgroundTasks 定时淘汰空闲对话并更新 gauge
func (a *App) startBackgroundTasks(repos *repositories, cfg *config.Config) error {
	a.cron = cron.New()
	_, err := a.cron.AddFunc(cfg.Conversation.SweepSchedule, func() {
		removed := repos.conversations.Sweep(cfg.Conversation.TTL)
		remaining := repos.conversations.Len()
		monitoring.ConversationsTracked.Set(float64(remaining))
		if removed > 0 {
			logger.Log.Info("Idle conversations swept", zap.Int("removed", removed), zap.Int("remaining", remaining))
		}
	})
	if err != nil {
		return err
	}
	a.cron.Start()
	return nil
}

func (a *App) watchConfig() {
	if a.Config.ConfigFile == "" {
		return
	}
	err := configwatcher.WatchConfig(a.ctx, a.Config.ConfigFile, func(newCfg *config.Config) {
		for _, cb := range a.configCallbacks {
			cb(newCfg)
		}
	})
	if err != nil {
		logger.Log.Warn("Config hot reload disabled", zap.Error(err))
	}
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(cfg.Server.Mode)
	monitoring.Init()

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{Config: cfg, ctx: ctx, cancel: cancel}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}
	app.Redis = rdb

	if key := cfg.AI.KeyFor(util.ProviderGemini); needsGenAI(cfg) && key != "" {
		gc, err := genai.NewClient(ctx, option.WithAPIKey(key))
		if err != nil {
			logger.Log.Fatal("Failed to create genai client", zap.Error(err))
		}
		app.genai = gc
	}

	repos, err := app.initRepositories(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize listings", zap.Error(err))
	}
	svcs, err := app.initServices(repos, cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	app.services = svcs
	ctrls := app.initControllers(svcs, repos)

	tmpl, err := web.Templates()
	if err != nil {
		logger.Log.Fatal("Failed to parse templates", zap.Error(err))
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.SetHTMLTemplate(tmpl)
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, ctrls)

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		svcs.matcher.SetThreshold(newCfg.Grading.Threshold)
		logger.Log.Info("Match threshold updated", zap.Float64("threshold", newCfg.Grading.Threshold))
	})
	app.watchConfig()

	if err := app.startBackgroundTasks(repos, cfg); err != nil {
		logger.Log.Fatal("Failed to schedule conversation sweeper", zap.Error(err))
	}

	logger.Log.Info("App initialized",
		zap.String("listings", cfg.Listings.Source),
		zap.String("language_model", svcs.llm.Name()),
		zap.String("similarity", cfg.Similarity.Provider),
		zap.Int("questions", len(svcs.tracker.Questions())))

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("listen", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}
	a.Close(ctx)

	logger.Log.Info("Server exiting")
}

// Close 释放后台任务和外部连接
func (a *App) Close(ctx context.Context) {
	a.cancel()
	if a.cron != nil {
		<-a.cron.Stop().Done()
	}
	if a.genai != nil {
		if err := a.genai.Close(); err != nil {
			logger.Log.Warn("Failed to close genai client", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
}
