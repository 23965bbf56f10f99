package repository

import (
	"context"
	"time"

	"github.com/jhoicas/taller-erp/internal/domain/entity"
)

// AttendanceRepository define el puerto de persistencia de asistencia.
// Única por (empresa, trabajador, fecha); Upsert resuelve el duplicado
// en la base (ON CONFLICT), no con check-then-insert.
type AttendanceRepository interface {
	Upsert(ctx context.Context, record *entity.AttendanceRecord) error
	GetByWorkerAndDate(ctx context.Context, workerID string, date time.Time) (*entity.AttendanceRecord, error)
	// ListByWorkerRange asistencia del trabajador en [from, to] (inclusive).
	ListByWorkerRange(ctx context.Context, workerID string, from, to time.Time) ([]*entity.AttendanceRecord, error)
}
