package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de asistencia diaria.
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLate    = "late"
	AttendanceHalfDay = "half_day"
	AttendanceHoliday = "holiday"
	AttendanceLeave   = "leave"
)

// AttendanceRecord es el hecho de asistencia de un trabajador en una fecha.
// Único por (empresa, trabajador, fecha). El motor de nómina lo consume
// solo en lectura.
type AttendanceRecord struct {
	ID            string
	CompanyID     string
	WorkerID      string
	Date          time.Time // fecha calendario, sin hora
	Status        string
	WorkingHours  decimal.Decimal // 0 = usar jornada por defecto
	OvertimeHours decimal.Decimal
	LeaveType     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	CreatedBy     string
}
