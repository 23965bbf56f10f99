package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/taller-erp/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint
// único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isWriteConflict detecta pérdidas de escritura condicional recuperables:
// serialization_failure (40001) y deadlock_detected (40P01). El caller puede
// reintentar la transacción completa.
func isWriteConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

// mapTxError traduce errores de infraestructura a errores de dominio para
// que la capa de aplicación decida (reintento acotado, timeout, etc.).
func mapTxError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case isWriteConflict(err):
		return errors.Join(domain.ErrConflict, err)
	case errors.Is(err, context.DeadlineExceeded):
		return errors.Join(domain.ErrTimeout, err)
	}
	return err
}
