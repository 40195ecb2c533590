package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	sqlite3 "github.com/mattn/go-sqlite3"
)

const pgUniqueViolationCode = "23505"

// UniqueViolation inspects a store error and, when it is a unique
// constraint violation, names the violated column. Callers classify
// conflicts from the returned name instead of matching on error text.
//
// For postgres the constraint name comes from the typed driver error. For
// SQLite the driver only exposes "table.column" inside its message, so the
// extraction is confined here.
func UniqueViolation(err error) (column string, ok bool) {
	if err == nil {
		return "", false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != pgUniqueViolationCode {
			return "", false
		}
		if pgErr.ColumnName != "" {
			return pgErr.ColumnName, true
		}
		return pgErr.ConstraintName, true
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		if liteErr.ExtendedCode != sqlite3.ErrConstraintUnique &&
			liteErr.ExtendedCode != sqlite3.ErrConstraintPrimaryKey {
			return "", false
		}
		msg := liteErr.Error()
		idx := strings.Index(msg, "constraint failed: ")
		if idx < 0 {
			return "", true
		}
		target := strings.TrimSpace(msg[idx+len("constraint failed: "):])
		if dot := strings.Index(target, "."); dot >= 0 {
			return target[dot+1:], true
		}
		return target, true
	}

	return "", false
}

// IsForeignKeyViolation reports whether the error is a referential
// integrity failure from either driver.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}

	return false
}
