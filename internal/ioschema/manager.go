// Package ioschema opens GORM sessions over the archive and publish
// targets and keeps the vocan tables current. This is an impure I/O
// package that wraps GORM AutoMigrate functionality.
package ioschema

import (
	"log/slog"

	"github.com/aladaia/vocan/pkg/db"
	"github.com/aladaia/vocan/pkg/schema"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// SQLiteDriver is the database/sql driver used for SQLite files.
const SQLiteDriver = "sqlite"

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}
}

// OpenPostgres opens a GORM session over the pool of a connected
// operator.
func OpenPostgres(op db.Operator) (*gorm.DB, error) {
	pool := op.Pool()
	if pool == nil {
		return nil, NotConnectedError()
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		gormConfig(),
	)
	if err != nil {
		return nil, GORMConnectionError("PostgreSQL", err)
	}
	return gormDB, nil
}

// OpenSQLite opens a GORM session over an SQLite file, creating it if
// needed.
func OpenSQLite(path string) (*gorm.DB, error) {
	gormDB, err := gorm.Open(
		&sqlite.Dialector{DriverName: SQLiteDriver, DSN: path},
		gormConfig(),
	)
	if err != nil {
		return nil, GORMConnectionError(path, err)
	}
	return gormDB, nil
}

// Close closes the connection behind a GORM session.
func Close(gormDB *gorm.DB) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Replace migrates the schema and replaces all rows of vocan tables with
// rows in a single transaction.
func Replace(gormDB *gorm.DB, rows schema.Rows, batchSize int) error {
	if err := schema.Migrate(gormDB); err != nil {
		return MigrateSchemaError(err)
	}

	err := gormDB.Transaction(func(tx *gorm.DB) error {
		if err := schema.Reset(tx); err != nil {
			return err
		}
		return rows.Insert(tx, batchSize)
	})
	if err != nil {
		return ReplaceRowsError(err)
	}

	slog.Info("Rows replaced",
		"run_id", rows.Run.RunID,
		"rows", rows.Count(),
	)
	return nil
}
