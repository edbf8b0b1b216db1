// Package infra implements the persistence contracts of pkg/repository on
// PostgreSQL through GORM.
package infra

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vmunteanu/mdbank/pkg/config"
	"github.com/vmunteanu/mdbank/pkg/domain"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

func NewDBConnection(cnf *config.DB, appEnv string) (*gorm.DB, error) {
	if cnf == nil || cnf.Url == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	var logMode logger.LogLevel
	if appEnv == "development" {
		logMode = logger.Info
	} else {
		logMode = logger.Silent
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

// Migrate creates or updates the schema and seeds the account-type catalog.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&User{}, &AccountType{}, &Account{}, &Transaction{}); err != nil {
		return err
	}
	return seedAccountTypes(db)
}

// seedAccountTypes inserts the catalog rows, leaving existing ones alone so
// operator adjustments survive restarts.
func seedAccountTypes(db *gorm.DB) error {
	types := []AccountType{
		{TypeName: domain.TypeStandardChecking, OverdraftLimit: decimal.NewFromInt(500)},
		{TypeName: domain.TypePremiumChecking, OverdraftLimit: decimal.NewFromInt(1000)},
		{TypeName: domain.TypeStandardSavings, InterestRate: decimal.RequireFromString("0.02")},
		{TypeName: domain.TypePremiumSavings, InterestRate: decimal.RequireFromString("0.05")},
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "type_name"}},
		DoNothing: true,
	}).Create(&types).Error
}
