// Package infra wires external resources: the database connection and schema
// migration.
package infra

import (
	"errors"
	"time"

	"github.com/gobanking/bankingapp/pkg/config"
	"github.com/gobanking/bankingapp/pkg/domain"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDBConnection opens the configured postgres database. SQL statement
// logging is enabled only in development.
func NewDBConnection(cnf *config.DB, appEnv string) (*gorm.DB, error) {
	if cnf == nil || cnf.Url == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	logMode := logger.Silent
	if appEnv == "development" {
		logMode = logger.Info
	}

	connection, err := gorm.Open(postgres.Open(cnf.Url), &gorm.Config{
		Logger:                 logger.Default.LogMode(logMode),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := connection.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(1 * time.Hour)

	return connection, nil
}

// Migrate brings the schema up to date for all domain entities.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.AccountHolder{},
		&domain.Account{},
		&domain.Transaction{},
	)
}
