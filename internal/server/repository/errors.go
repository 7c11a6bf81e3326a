// Package repository содержит реализации слоя доступа к данным (Repository layer).
//
// Репозитории инкапсулируют работу с БД и не содержат бизнес-логики.
// Все ошибки приводятся к доменным ошибкам из internal/shared/errors.
package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"

	serr "github.com/Altair788/AdHub/internal/shared/errors"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// mapError приводит ошибку драйвера к доменной.
// Исходная ошибка остаётся в цепочке для логов.
func mapError(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return serr.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return serr.ErrAlreadyExists
		case pgForeignKeyViolation, pgCheckViolation:
			return fmt.Errorf("%s: %w: %s", op, serr.ErrInvalidInput, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("%s: %w: %w", op, serr.ErrInternal, err)
}

// expectAffected возвращает ErrNotFound, если UPDATE/DELETE ничего не затронул.
func expectAffected(op string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return mapError(op, err)
	}
	if n == 0 {
		return serr.ErrNotFound
	}
	return nil
}

// rowScanner: общий интерфейс *sql.Row и *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}
