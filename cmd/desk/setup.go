package main

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/sandevgo/deskbot/internal/config"
	"github.com/sandevgo/deskbot/internal/core"
	"github.com/sandevgo/deskbot/internal/providers/llm"
	"github.com/sandevgo/deskbot/internal/service/command"
	"github.com/sandevgo/deskbot/internal/service/extract"
	"github.com/sandevgo/deskbot/internal/service/history"
	"github.com/sandevgo/deskbot/internal/service/orchestrator"
	"github.com/sandevgo/deskbot/internal/service/persona"
	"github.com/sandevgo/deskbot/internal/service/prompt"
	"github.com/sandevgo/deskbot/internal/service/ratelimit"
	"github.com/sandevgo/deskbot/internal/service/voice"
	"github.com/sandevgo/deskbot/internal/storage/redis"
	"github.com/sandevgo/deskbot/internal/storage/sqlite"
	"github.com/sandevgo/deskbot/internal/transport/telegram"
	"github.com/sandevgo/deskbot/pkg/log"
	"github.com/sandevgo/deskbot/pkg/srv"
	tele "gopkg.in/telebot.v3"
)

type storage struct {
	db       *sql.DB
	catalog  *sqlite.CatalogRepo
	bookings *sqlite.BookingsRepo
	contacts core.ContactStore
	cleanups []srv.Service
}

// NewServices wires the full bot: storage, backends, the conversation
// core, Telegram and the idle sweeper.
func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// 1. Configuration
	appCfg := loadAppConfig(ctx)

	// 2. Storage
	st, err := initStorage(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, st.cleanups...)

	if err := seedIfEmpty(ctx, appCfg, st.catalog); err != nil {
		logger.Warn().Err(err).Msg("failed to seed service catalog")
	}

	// 3. Operator channel. The Telegram client exists before the core so
	// leads can be forwarded through it.
	var (
		tgCfg    *config.TelegramConfig
		client   *tele.Bot
		operator *telegram.Operator
		adminID  string
	)
	if appCfg.EnableTelegram {
		tgCfg = config.NewTelegramConfig(ctx)
		client, err = telegram.NewClient(tgCfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to telegram")
		}
		operator = telegram.NewOperator(client, tgCfg.AdminChatID)
		if tgCfg.AdminChatID != 0 {
			adminID = strconv.FormatInt(tgCfg.AdminChatID, 10)
		}
	}

	// 4. Conversation core
	var op orchestrator.Operator
	if operator != nil {
		op = operator
	}
	desk, modes := newDesk(ctx, appCfg, st, op)
	services = append(services, orchestrator.NewSweeper(desk, appCfg.SweepInterval, appCfg.SessionIdle))

	// 5. Transports
	if appCfg.EnableTelegram {
		router := command.NewRouter(desk, modes, adminID, telegram.NewFeedbackCommand())
		services = append(services, telegram.NewBot(ctx, client, tgCfg, desk, router, operator))
	} else {
		logger.Warn().Msg("telegram transport disabled, only the sweeper is running")
	}

	return services
}

func loadAppConfig(ctx context.Context) *config.AppConfig {
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to init env")
	}
	return config.NewAppConfig(ctx)
}

func initStorage(ctx context.Context, cfg *config.AppConfig) (*storage, error) {
	db, err := sqlite.NewDB(ctx, cfg.GetDatabasePath())
	if err != nil {
		return nil, err
	}

	st := &storage{
		db:       db,
		catalog:  sqlite.NewCatalogRepo(db),
		bookings: sqlite.NewBookingsRepo(db),
		contacts: sqlite.NewContactsRepo(db),
		cleanups: []srv.Service{srv.NewCleanup(db.Close)},
	}

	if cfg.UseRedisContacts() {
		redisCfg := config.NewRedisConfig(ctx)
		client, err := redis.NewClient(ctx, redisCfg)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		st.contacts = redis.NewContactStore(client, redisCfg.KeyPrefix, redisCfg.TTL)
		st.cleanups = append(st.cleanups, srv.NewCleanup(client.Close))
		log.FromCtx(ctx).Info().Msg("contacts are stored in redis")
	}

	return st, nil
}

func seedIfEmpty(ctx context.Context, cfg *config.AppConfig, catalog *sqlite.CatalogRepo) error {
	existing, err := catalog.ListServices(ctx)
	if err != nil || len(existing) > 0 {
		return err
	}

	services, err := sqlite.LoadServices(cfg.GetServicesPath())
	if err != nil {
		return err
	}
	n, err := catalog.Seed(ctx, services)
	if err != nil {
		return err
	}
	log.FromCtx(ctx).Info().Int("services", n).Msg("seeded empty service catalog")
	return nil
}

// newDesk builds the conversation core. op may be nil when no transport
// can reach an operator.
func newDesk(
	ctx context.Context,
	cfg *config.AppConfig,
	st *storage,
	op orchestrator.Operator,
) (*orchestrator.Orchestrator, *prompt.Modes) {
	logger := log.FromCtx(ctx)

	llmCfg := config.NewLLMConfig(ctx, cfg.GetLLMParamsPath())
	backend, err := llm.NewProvider(ctx, llmCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize LLM provider")
	}

	catalog, err := persona.LoadCatalog(cfg.GetPersonasPath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load persona catalog")
	}

	modes, err := prompt.LoadModes(cfg.GetPromptsDir())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load prompts")
	}

	deps := orchestrator.Deps{
		Limiter:   ratelimit.New(cfg.RateLimit, cfg.RateWindow),
		History:   history.New(cfg.HistorySize),
		Personas:  persona.NewStore(catalog),
		Assembler: prompt.NewAssembler(modes, catalog),
		Extractor: extract.New(),
		Backend:   backend,
		Params:    llmCfg.Params(),
		Stream:    llmCfg.Stream,
		Timeout:   cfg.BackendTimeout,
		Contacts:  st.contacts,
		Catalog:   st.catalog,
		Bookings:  st.bookings,
		Operator:  op,
	}

	if cfg.EnableVoice {
		if pipeline := newVoice(ctx, llmCfg); pipeline != nil {
			deps.Voice = pipeline
		}
	}

	return orchestrator.New(deps), modes
}

func newVoice(ctx context.Context, llmCfg *config.LLMConfig) *voice.Pipeline {
	speechCfg := config.NewSpeechConfig(ctx, llmCfg)
	speech, err := llm.NewSpeechProvider(ctx, speechCfg)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("voice disabled")
		return nil
	}

	return voice.NewPipeline(
		speech,
		speech,
		voice.NewFFmpeg(speechCfg.FFmpegPath, speechCfg.TranscodeWorkers),
		voice.Config{Voice: speechCfg.Voice, Format: speechCfg.Format},
	)
}
