package sales

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/taller-erp/internal/domain/entity"
)

// Prefijos del consecutivo por tipo de venta.
const (
	orderPrefix = "ORD"
	memoPrefix  = "MEM"
)

// GenerateNumber arma el consecutivo legible de una venta:
// prefijo + sufijo de empresa + fecha + secuencia con ceros a la izquierda.
// Ej: ORD-4F2A-250314-0007. El número NO se asume único por construcción:
// el índice único (company_id, number) detecta colisiones y el caller
// regenera con la secuencia siguiente y reintenta.
func GenerateNumber(kind, companyID string, now time.Time, seq int64) string {
	prefix := orderPrefix
	if kind == entity.SaleKindMemo {
		prefix = memoPrefix
	}
	return fmt.Sprintf("%s-%s-%s-%04d", prefix, companySuffix(companyID), now.Format("060102"), seq)
}

// companySuffix sufijo corto derivado del UUID de la empresa.
func companySuffix(companyID string) string {
	clean := strings.ToUpper(strings.ReplaceAll(companyID, "-", ""))
	if len(clean) < 4 {
		return strings.Repeat("0", 4-len(clean)) + clean
	}
	return clean[:4]
}
