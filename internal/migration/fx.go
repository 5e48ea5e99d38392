package migration

import (
	auditdomain "github.com/lancerkit/lancer/internal/audit/domain"
	clientdomain "github.com/lancerkit/lancer/internal/client/domain"
	"github.com/lancerkit/lancer/internal/config"
	leaddomain "github.com/lancerkit/lancer/internal/lead/domain"
	projectdomain "github.com/lancerkit/lancer/internal/project/domain"
	proposaldomain "github.com/lancerkit/lancer/internal/proposal/domain"
	quotedomain "github.com/lancerkit/lancer/internal/quote/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			return RunMigrations(sqlDB)
		}

		// sqlite and mysql are dev/self-hosted setups; let gorm derive
		// the schema from the models there.
		return conn.AutoMigrate(
			&clientdomain.Client{},
			&leaddomain.Lead{},
			&projectdomain.Project{},
			&projectdomain.Task{},
			&projectdomain.Milestone{},
			&projectdomain.Note{},
			&quotedomain.Quote{},
			&quotedomain.QuoteItem{},
			&proposaldomain.Proposal{},
			&auditdomain.AuditLog{},
		)
	}),
)
