package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	sqlite3 "github.com/mattn/go-sqlite3"
)

// ErrorDump flattens a wrapped error chain plus any driver-level detail so
// the whole thing can be logged as structured fields.
type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	DriverCode       string `json:"driver_code,omitempty"`
	DriverConstraint string `json:"driver_constraint,omitempty"`
	DriverTable      string `json:"driver_table,omitempty"`
	DriverColumn     string `json:"driver_column,omitempty"`
	DriverDetail     string `json:"driver_detail,omitempty"`
	DriverMessage    string `json:"driver_message,omitempty"`
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{
		TopMessage: err.Error(),
	}

	if te := As(err); te != nil {
		d.Code = te.Code()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		d.DriverCode = pgErr.Code
		d.DriverConstraint = pgErr.ConstraintName
		d.DriverTable = pgErr.TableName
		d.DriverColumn = pgErr.ColumnName
		d.DriverDetail = pgErr.Detail
		d.DriverMessage = pgErr.Message
		return d
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		d.DriverCode = liteErr.ExtendedCode.Error()
		d.DriverMessage = liteErr.Error()
		if table, column, ok := sqliteConstraintTarget(liteErr); ok {
			d.DriverTable = table
			d.DriverColumn = column
			d.DriverConstraint = table + "." + column
		}
		return d
	}

	return d
}

// sqliteConstraintTarget extracts the "table.column" pair from a SQLite
// constraint error message. SQLite does not expose constraint names as typed
// fields, so this is the one place the driver message is inspected.
func sqliteConstraintTarget(err sqlite3.Error) (table, column string, ok bool) {
	msg := err.Error()
	idx := strings.Index(msg, "constraint failed: ")
	if idx < 0 {
		return "", "", false
	}
	target := strings.TrimSpace(msg[idx+len("constraint failed: "):])
	parts := strings.SplitN(target, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
