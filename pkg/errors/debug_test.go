package errors

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestDumpFlattensWrappedChain(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Wrap(CodeInternal, fmt.Errorf("saving order: %w", cause), "receiving stock")

	dump := Dump(err)

	require.Equal(t, CodeInternal, dump.Code)
	require.Equal(t, "INTERNAL_ERROR: receiving stock", dump.TopMessage)
	require.Len(t, dump.Chain, 3)
	require.Contains(t, dump.Chain[2], "disk full")
	require.Empty(t, dump.DriverCode)
}

func TestDumpExtractsPostgresDriverDetail(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		Message:        "duplicate key value violates unique constraint",
		Detail:         "Key (part_number)=(PN-1) already exists.",
		TableName:      "part_types",
		ColumnName:     "part_number",
		ConstraintName: "idx_part_types_part_number",
	}
	err := Wrap(CodeConflict, fmt.Errorf("creating part type: %w", pgErr), "saving part type")

	dump := Dump(err)

	require.Equal(t, CodeConflict, dump.Code)
	require.Equal(t, "23505", dump.DriverCode)
	require.Equal(t, "part_types", dump.DriverTable)
	require.Equal(t, "part_number", dump.DriverColumn)
	require.Equal(t, "idx_part_types_part_number", dump.DriverConstraint)
	require.Equal(t, "Key (part_number)=(PN-1) already exists.", dump.DriverDetail)
}

func TestDumpOnNilError(t *testing.T) {
	dump := Dump(nil)

	require.Empty(t, dump.TopMessage)
	require.Nil(t, dump.Chain)
}
