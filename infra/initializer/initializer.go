// Package initializer wires the application dependencies: logger, database,
// unit of work and the services the HTTP layer is built from.
package initializer

import (
	"fmt"
	"log/slog"

	"github.com/vmunteanu/mdbank/infra"
	"github.com/vmunteanu/mdbank/pkg/config"
	"github.com/vmunteanu/mdbank/pkg/currency"
	accountsvc "github.com/vmunteanu/mdbank/pkg/service/account"
	authsvc "github.com/vmunteanu/mdbank/pkg/service/auth"
	transfersvc "github.com/vmunteanu/mdbank/pkg/service/transfer"
	"github.com/vmunteanu/mdbank/webapi"
	"gorm.io/gorm"
)

// Deps bundles everything main needs to start serving.
type Deps struct {
	Logger *slog.Logger
	DB     *gorm.DB
	Web    webapi.Deps
}

// InitializeDependencies connects to the database, migrates the schema and
// assembles the services.
func InitializeDependencies(cfg *config.App) (*Deps, error) {
	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := infra.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	uow := infra.NewUoW(db)
	converter := currency.NewConverter()

	return &Deps{
		Logger: logger,
		DB:     db,
		Web: webapi.Deps{
			Auth:     authsvc.New(uow, cfg.Jwt, logger),
			Account:  accountsvc.New(uow, converter, logger),
			Transfer: transfersvc.New(uow, converter, cfg.Transfer, logger),
			Guard:    transfersvc.NewHighRiskGuard(cfg.Transfer),
			Config:   cfg,
		},
	}, nil
}
