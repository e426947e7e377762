package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yungbote/fondos-backend/internal/logger"
	"github.com/yungbote/fondos-backend/internal/types"
	"github.com/yungbote/fondos-backend/internal/utils"
)

type Service struct {
	db     *gorm.DB
	log    *logger.Logger
	driver string
}

func NewService(log *logger.Logger) (*Service, error) {
	serviceLog := log.With("service", "DatabaseService")

	driver := strings.ToLower(utils.GetEnv("DB_DRIVER", "postgres", log))

	var (
		database *gorm.DB
		err      error
	)
	switch driver {
	case "sqlite":
		path := utils.GetEnv("SQLITE_PATH", "fondos.db", log)
		serviceLog.Info("Connecting to SQLite...", "path", path)
		database, err = gorm.Open(sqlite.Open(path), &gorm.Config{
			TranslateError: true,
		})
	default:
		driver = "postgres"
		host := utils.GetEnv("POSTGRES_HOST", "localhost", log)
		port := utils.GetEnv("POSTGRES_PORT", "5432", log)
		user := utils.GetEnv("POSTGRES_USER", "postgres", log)
		password := utils.GetEnv("POSTGRES_PASSWORD", "", log)
		name := utils.GetEnv("POSTGRES_NAME", "fondos", log)
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)

		serviceLog.Info("Connecting to Postgres...", "host", host, "database", name)
		database, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			TranslateError:                           true,
			DisableForeignKeyConstraintWhenMigrating: true,
		})
	}
	if err != nil {
		serviceLog.Error("Failed to connect to database", "driver", driver, "error", err)
		return nil, fmt.Errorf("failed to connect to database (%s): %w", driver, err)
	}

	return &Service{db: database, log: serviceLog, driver: driver}, nil
}

func (s *Service) DB() *gorm.DB {
	return s.db
}

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	err := s.db.AutoMigrate(
		&types.User{},
		&types.Fund{},
		&types.Subscription{},
		&types.TransactionRecord{},
	)
	if err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}

	// One active subscription per (user, fund) pair. The partial index makes
	// the uniqueness check race-free: a concurrent duplicate insert fails at
	// the store instead of both requests passing the existence check.
	if err := s.db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uq_subscription_active
		ON "subscription" (user_id, fund_id)
		WHERE status = 'active'
	`).Error; err != nil {
		s.log.Error("Failed to create active-subscription unique index", "error", err)
		return err
	}

	if s.driver != "postgres" {
		return nil
	}

	s.log.Info("Configuring foreign key relationships...")
	if err := s.db.Exec(`
		DO $$ BEGIN
			ALTER TABLE "subscription"
				ADD CONSTRAINT "fk_subscription_user_id"
				FOREIGN KEY ("user_id") REFERENCES "user"("id");
			ALTER TABLE "subscription"
				ADD CONSTRAINT "fk_subscription_fund_id"
				FOREIGN KEY ("fund_id") REFERENCES "fund"("id");
			ALTER TABLE "transaction_history"
				ADD CONSTRAINT "fk_transaction_history_subscription_id"
				FOREIGN KEY ("subscription_id") REFERENCES "subscription"("id");
		EXCEPTION
			WHEN duplicate_object THEN NULL;
		END $$;
	`).Error; err != nil {
		s.log.Error("Failed to configure foreign keys", "error", err)
		return err
	}

	return nil
}
