package migrate

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mdewit/werkstatt-backend/pkg/logger"
)

// RequiredVersion is the schema version the workflow core is written
// against: the timestamp of the newest embedded migration.
const RequiredVersion int64 = 20250301120200

// Guard verifies the store's schema version before the service starts
// taking requests.
//
// An older store is fatal: the receiving and booking workflows would write
// into missing tables or columns, so the caller must migrate first. A newer
// store is allowed through with a warning; unrecognized columns are an
// accepted risk.
func Guard(ctx context.Context, db *sql.DB, dialect string, logg *logger.Logger) error {
	version, err := Version(ctx, db, dialect)
	if err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	switch {
	case version < RequiredVersion:
		return fmt.Errorf("schema version %d is older than required %d: run migrations before starting", version, RequiredVersion)
	case version > RequiredVersion:
		if logg != nil {
			ctx = logg.WithFields(ctx, map[string]any{
				"schema_version":   version,
				"required_version": RequiredVersion,
			})
			logg.Warn(ctx, "store schema is newer than this build expects")
		}
		return nil
	default:
		return nil
	}
}
