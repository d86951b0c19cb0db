// Package sqlxrepos implements the repositories on PostgreSQL with sqlx.
package sqlxrepos

import (
	"database/sql"
	"strings"

	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/carnet/core"
)

const (
	pqForeignKeyViolation = "23503"
	pqCheckViolation      = "23514"
)

// dbError converts the errors of a query: no rows become notFound,
// constraint violations become validation errors.
func dbError(err error, notFound error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case pqForeignKeyViolation:
			return core.NewValidationError(nil, core.FieldError{Field: fkField(pqErr), Error: "référence inconnue"})
		case pqCheckViolation:
			return core.NewValidationError(nil, core.FieldError{Field: "valeur", Error: "valeur hors limites"})
		}
	}
	return errors.Wrap(err, msg)
}

// fkField returns the column of a foreign key violation (constraints are named <table>_<column>_fkey).
func fkField(pqErr *pq.Error) string {
	for _, col := range []string{"eleve_id", "examen_id", "matiere_id"} {
		if strings.Contains(pqErr.Constraint, col) {
			return col
		}
	}
	return "id"
}

func checkAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "counting affected rows")
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func pageArgs(page core.Page) (int, int) {
	page = page.Clean()
	return page.Skip, page.Limit
}
