package normalizer

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/suchimauz/pet-clinic-core/internal/core/domain"
)

// Допустимые написания полей. Первое подходящее побеждает.
var (
	customerIDFields = []string{"customerId", "customer_id"}
	petIDFields      = []string{"petId", "pet_id"}
	branchIDFields   = []string{"branchId", "branch_id"}
	doctorIDFields   = []string{"doctorId", "doctor_id", "veterinarian_id"}
)

// extractID возвращает первый пригодный идентификатор из полей.
// Ноль, нечисла, дробные и бесконечные значения считаются отсутствующими.
func extractID(raw domain.RawAppointmentInput, fields []string) (int64, bool) {
	for _, field := range fields {
		value, ok := raw[field]
		if !ok {
			continue
		}
		if id, ok := coerceID(value); ok {
			return id, true
		}
	}
	return 0, false
}

func coerceID(value any) (int64, bool) {
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		if v == 0 {
			return 0, false
		}
		return v, true
	case json.Number:
		return coerceString(v.String())
	case string:
		return coerceString(v)
	default:
		return 0, false
	}
	return floatToID(f)
}

func coerceString(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return floatToID(f)
}

func floatToID(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f == 0 || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}
