// Package storage opens the configured core.Store.
package storage

import (
	"context"

	"github.com/pkg/errors"

	"github.com/tutorren/desk/core"
	"github.com/tutorren/desk/core/class"
	"github.com/tutorren/desk/core/student"
	"github.com/tutorren/desk/core/tutor"
	"github.com/tutorren/desk/core/user"
	"github.com/tutorren/desk/storage/csvdb"
	"github.com/tutorren/desk/storage/memdb"
	"github.com/tutorren/desk/storage/sqldb"
)

// EngineMemory keeps every table in process memory. Nothing survives a restart.
const EngineMemory = "memory"

// Schemas lists every table of the app.
var Schemas = []core.Schema{user.Schema, tutor.Schema, student.Schema, class.Schema}

// Open opens the store selected by `conf.Engine`, creating missing tables.
func Open(ctx context.Context, conf core.StorageConfig, logger core.Logger) (core.Store, error) {
	switch conf.Engine {
	case core.EngineCSV:
		logger.Info("opening csv tables in " + conf.DataDir)
		return csvdb.Open(conf.DataDir, Schemas...)
	case core.EngineSQLite, core.EnginePostgres:
		logger.Info("opening " + conf.Engine + " database")
		db, err := sqldb.Open(ctx, conf, Schemas...)
		if err != nil {
			return nil, err
		}
		if err = db.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
		return db, nil
	case EngineMemory:
		logger.Warn("using the memory store: data is lost on exit")
		return memdb.Open(Schemas...), nil
	default:
		return nil, errors.Errorf("unknown storage engine %q", conf.Engine)
	}
}
