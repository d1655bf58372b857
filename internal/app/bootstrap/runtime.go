// Package bootstrap wires configuration into the running conversation stack.
// Both entrypoints (long poller and webhook server) assemble the same runtime
// and differ only in the transport they attach to the dispatcher.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/valdezlabs/citabot/internal/bookinglog"
	"github.com/valdezlabs/citabot/internal/calendar"
	appconfig "github.com/valdezlabs/citabot/internal/config"
	"github.com/valdezlabs/citabot/internal/engine"
	"github.com/valdezlabs/citabot/internal/identity"
	"github.com/valdezlabs/citabot/internal/observability/metrics"
	"github.com/valdezlabs/citabot/internal/oracle"
	"github.com/valdezlabs/citabot/internal/schedule"
	"github.com/valdezlabs/citabot/internal/session"
	"github.com/valdezlabs/citabot/internal/telegram"
	"github.com/valdezlabs/citabot/pkg/logging"

	_ "github.com/lib/pq"
)

// Runtime holds the wired conversation stack and the external clients it
// owns. Close releases those clients; callers defer it after a successful
// Build.
type Runtime struct {
	Engine     *engine.Engine
	Client     *telegram.Client
	Dispatcher *telegram.Dispatcher

	oracleClient *oracle.GeminiClient
	db           *sql.DB
	redisClient  *redis.Client
}

// Build assembles the full conversation stack from configuration.
func Build(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (*Runtime, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: config cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	loc, err := time.LoadLocation(cfg.ClinicTimezone)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: invalid clinic timezone %q: %w", cfg.ClinicTimezone, err)
	}

	oracleClient, err := oracle.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.VisionModelID)
	if err != nil {
		return nil, err
	}
	rt := &Runtime{oracleClient: oracleClient}

	documents := identity.NewGateway(oracleClient, cfg.VisionModelID, cfg.OracleTimeout, logger)
	extractor := schedule.NewGateway(oracleClient, cfg.ExtractionModelID, cfg.ClinicTimezone, cfg.OracleTimeout, logger)

	creator, err := calendar.NewGoogleCreator(ctx, calendar.GoogleConfig{
		CalendarID:           cfg.CalendarID,
		CredentialsFile:      cfg.GoogleCredentialsFile,
		Timezone:             cfg.ClinicTimezone,
		Duration:             cfg.AppointmentDuration,
		ReminderEmailMinutes: cfg.ReminderEmailMinutes,
		ReminderPopupMinutes: cfg.ReminderPopupMinutes,
		Timeout:              cfg.CalendarTimeout,
	}, logger)
	if err != nil {
		rt.Close()
		return nil, err
	}

	rules := schedule.Rules{
		Location:      loc,
		OpeningHour:   cfg.OpeningHour,
		ClosingHour:   cfg.ClosingHour,
		Horizon:       time.Duration(cfg.BookingHorizonDays) * 24 * time.Hour,
		PastTolerance: cfg.PastTolerance,
	}

	rt.Engine = engine.New(engine.Config{
		Sessions:   rt.buildSessionRepository(ctx, cfg, logger),
		Documents:  documents,
		Extractor:  extractor,
		Calendar:   creator,
		BookingLog: rt.buildBookingLog(cfg, logger),
		Metrics:    metrics.NewEngineMetrics(nil),
		Rules:      rules,
		Logger:     logger,
	})

	client, err := telegram.NewClient(telegram.Config{
		BaseURL: cfg.TelegramAPIBaseURL,
		Token:   cfg.TelegramToken,
		Logger:  logger,
	})
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.Client = client
	rt.Dispatcher = telegram.NewDispatcher(rt.Engine, client, client, logger)

	return rt, nil
}

// Close releases the external clients owned by the runtime.
func (rt *Runtime) Close() {
	if rt == nil {
		return
	}
	if rt.oracleClient != nil {
		_ = rt.oracleClient.Close()
	}
	if rt.db != nil {
		_ = rt.db.Close()
	}
	if rt.redisClient != nil {
		_ = rt.redisClient.Close()
	}
}

// buildSessionRepository prefers Redis when configured and reachable and
// falls back to the in-memory store otherwise. A bot running on memory
// sessions loses conversations on restart, which is acceptable for
// development but logged loudly.
func (rt *Runtime) buildSessionRepository(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) session.Repository {
	if strings.TrimSpace(cfg.RedisAddr) == "" {
		logger.Warn("REDIS_ADDR not set, sessions are in-memory only")
		return session.NewMemoryRepository()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, sessions are in-memory only", "addr", cfg.RedisAddr, "error", err)
		_ = client.Close()
		return session.NewMemoryRepository()
	}

	rt.redisClient = client
	logger.Info("session repository backed by redis", "addr", cfg.RedisAddr)
	return session.NewRedisRepository(client, cfg.SessionTTL)
}

// buildBookingLog wires the optional Postgres audit trail. Returns nil when
// disabled; the engine treats a nil store as a no-op.
func (rt *Runtime) buildBookingLog(cfg *appconfig.Config, logger *logging.Logger) *bookinglog.Store {
	if !cfg.BookingLogEnabled || strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Warn("booking log disabled, could not open database", "error", err)
		return nil
	}
	rt.db = db
	logger.Info("booking log enabled")
	return bookinglog.NewStore(db)
}
