package database

import (
	"fmt"
	"strings"

	"estate-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open opens the ledger database. Postgres DSNs (postgres:// or postgresql://) go
// through the pgx driver with PreferSimpleProtocol so connection poolers such as
// PgBouncer do not trip over cached prepared statements (42P05). Anything else is
// treated as a SQLite DSN; an empty DSN gives a private in-memory database.
func Open(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	if IsPostgres(dsn) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), cfg)
	}

	if dsn == "" {
		// named shared-cache memory db so every pooled connection sees the same tables
		dsn = fmt.Sprintf("file:estate-%s?mode=memory&cache=shared", uuid.NewString())
	}
	db, err := gorm.Open(sqlite.Open(dsn), cfg)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// IsPostgres reports whether dsn names a Postgres server.
func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// AutoMigrate creates the ledger and snapshot tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Transaction{}, &domain.PortfolioSnapshot{})
}
