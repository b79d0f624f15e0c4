package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/event-scoring/internal/config"
	"github.com/riskibarqy/event-scoring/internal/domain/activity"
	"github.com/riskibarqy/event-scoring/internal/domain/event"
	"github.com/riskibarqy/event-scoring/internal/domain/leader"
	"github.com/riskibarqy/event-scoring/internal/domain/score"
	"github.com/riskibarqy/event-scoring/internal/domain/team"
	"github.com/riskibarqy/event-scoring/internal/domain/user"
	"github.com/riskibarqy/event-scoring/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/event-scoring/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/event-scoring/internal/platform/logging"
	"github.com/riskibarqy/event-scoring/internal/platform/resilience"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/crypto/bcrypt"
)

// DemoPassword is the password of every account created by SEED_DEMO_DATA.
const DemoPassword = "demo-password"

const dbPingTimeout = 5 * time.Second

type repositories struct {
	users      user.Repository
	events     event.Repository
	activities activity.Repository
	leaders    leader.Repository
	teams      team.Repository
	scores     score.Repository
}

type pinger interface {
	PingContext(ctx context.Context) error
}

// guardedPinger fronts the datastore health probe with a breaker so a dead
// database is reported without queueing more connection attempts.
type guardedPinger struct {
	next    pinger
	breaker *resilience.Breaker
}

func (p guardedPinger) PingContext(ctx context.Context) error {
	return p.breaker.Execute(ctx, p.next.PingContext)
}

type memoryPinger struct{}

func (memoryPinger) PingContext(context.Context) error { return nil }

func openStorage(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, pinger, func() error, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		repos, err := openMemory(cfg, logger)
		if err != nil {
			return repositories{}, nil, nil, err
		}
		return repos, memoryPinger{}, func() error { return nil }, nil
	case config.StorageDriverPostgres:
		db, err := openPostgres(ctx, cfg)
		if err != nil {
			return repositories{}, nil, nil, err
		}
		logger.Info("postgres connected", "db_name", dbNameFromURL(cfg.DBURL), "max_open_conns", cfg.DBMaxOpenConns)
		return repositories{
			users:      postgres.NewUserRepository(db),
			events:     postgres.NewEventRepository(db),
			activities: postgres.NewActivityRepository(db),
			leaders:    postgres.NewLeaderRepository(db),
			teams:      postgres.NewTeamRepository(db),
			scores:     postgres.NewScoreRepository(db),
		}, db, db.Close, nil
	default:
		return repositories{}, nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

func openMemory(cfg config.Config, logger *logging.Logger) (repositories, error) {
	store := memory.NewStore()
	if cfg.SeedDemoData {
		hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
		if err != nil {
			return repositories{}, fmt.Errorf("hash demo password: %w", err)
		}
		memory.SeedDemo(store, string(hash))
		logger.Info("demo data seeded", "organizer", memory.DemoOrganizerEmail, "leader", memory.DemoLeaderEmail)
	}

	return repositories{
		users:      memory.NewUserRepository(store),
		events:     memory.NewEventRepository(store),
		activities: memory.NewActivityRepository(store),
		leaders:    memory.NewLeaderRepository(store),
		teams:      memory.NewTeamRepository(store),
		scores:     memory.NewScoreRepository(store),
	}, nil
}

func openPostgres(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", PostgresDSN(cfg),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxOpenConns)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}
