package iodb

import (
	"context"
	"log/slog"

	"github.com/aladaia/vocan/internal/ioschema"
	"github.com/aladaia/vocan/pkg/db"
	"github.com/aladaia/vocan/pkg/results"
	"github.com/aladaia/vocan/pkg/schema"
)

// Publish replaces the contents of vocan tables in PostgreSQL with the
// results of a run. The operator must be connected.
func Publish(
	ctx context.Context,
	op db.Operator,
	res *results.Results,
	batchSize int,
) error {
	rows := schema.FromResults(res)

	exists, err := op.TableExists(ctx, rows.Run.TableName())
	if err != nil {
		return err
	}
	if !exists {
		slog.Info("Creating vocan tables in PostgreSQL")
	}

	gormDB, err := ioschema.OpenPostgres(op)
	if err != nil {
		return err
	}

	err = ioschema.Replace(gormDB.WithContext(ctx), rows, batchSize)
	if cerr := ioschema.Close(gormDB); err == nil && cerr != nil {
		slog.Warn("Cannot close GORM session", "error", cerr)
	}
	if err != nil {
		return err
	}

	slog.Info("Results published",
		"run_id", res.Manifest.RunID,
		"reviews", len(rows.Reviews),
	)
	return nil
}
