package normalizer

import (
	"time"

	"github.com/suchimauz/pet-clinic-core/internal/core/domain"
	"github.com/suchimauz/pet-clinic-core/internal/utils"
)

type Outcome int

const (
	// Все поля на месте
	OutcomeOK Outcome = iota
	// Не хватает обязательных полей, форма не заполнена
	OutcomeIncomplete
	// Дата или время переданы, но собрать их не удалось
	OutcomeInvalid
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeIncomplete:
		return "incomplete"
	case OutcomeInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

type Result struct {
	Outcome Outcome
	Payload domain.CanonicalAppointmentPayload
	// Для OutcomeIncomplete - список отсутствующих полей
	Missing []string
	// Для OutcomeInvalid
	Err error
}

func (r Result) OK() bool {
	return r.Outcome == OutcomeOK
}

// Пары дата+время в порядке приоритета
type dateTimePair struct {
	dateFields []string
	timeField  string
}

var (
	combinedInstantFields = []string{"appointment_time", "appointmentDateTime"}
	dateTimePairs         = []dateTimePair{
		{dateFields: []string{"appointmentDate"}, timeField: "appointmentTime"},
		{dateFields: []string{"appointment_date", "date"}, timeField: "time"},
	}
)

type AppointmentNormalizer struct {
	location *time.Location
}

// NewAppointmentNormalizer создает нормализатор, который собирает дату и время в таймзоне loc
func NewAppointmentNormalizer(loc *time.Location) *AppointmentNormalizer {
	if loc == nil {
		loc = time.Local
	}
	return &AppointmentNormalizer{location: loc}
}

// Normalize приводит сырые данные к каноническому payload.
// Ошибка сборки даты и времени важнее отсутствующих полей.
func (n *AppointmentNormalizer) Normalize(raw domain.RawAppointmentInput) Result {
	instant, err := n.extractInstant(raw)
	if err != nil {
		return Result{Outcome: OutcomeInvalid, Err: err}
	}

	customerID, hasCustomer := extractID(raw, customerIDFields)
	petID, hasPet := extractID(raw, petIDFields)
	branchID, hasBranch := extractID(raw, branchIDFields)
	doctorID, hasDoctor := extractID(raw, doctorIDFields)

	var missing []string
	if !hasCustomer {
		missing = append(missing, "customer_id")
	}
	if !hasPet {
		missing = append(missing, "pet_id")
	}
	if !hasBranch {
		missing = append(missing, "branch_id")
	}
	if !hasDoctor {
		missing = append(missing, "doctor_id")
	}
	if instant == "" {
		missing = append(missing, "appointment_time")
	}
	if len(missing) > 0 {
		return Result{Outcome: OutcomeIncomplete, Missing: missing}
	}

	payload, ok := domain.NewCanonicalAppointmentPayload(customerID, petID, branchID, doctorID, instant)
	if !ok {
		return Result{Outcome: OutcomeIncomplete}
	}

	return Result{Outcome: OutcomeOK, Payload: payload}
}

func (n *AppointmentNormalizer) extractInstant(raw domain.RawAppointmentInput) (string, error) {
	// Готовый момент берется как есть, если он парсится
	for _, field := range combinedInstantFields {
		value := stringField(raw, field)
		if value == "" {
			continue
		}
		if _, err := utils.ParseInstant(value, n.location); err == nil {
			return value, nil
		}
	}

	for _, pair := range dateTimePairs {
		clock := stringField(raw, pair.timeField)
		if clock == "" {
			continue
		}
		for _, dateField := range pair.dateFields {
			date := stringField(raw, dateField)
			if date == "" {
				continue
			}
			return utils.CombineDateTime(date, clock, n.location)
		}
	}

	return "", nil
}

func stringField(raw domain.RawAppointmentInput, field string) string {
	value, ok := raw[field].(string)
	if !ok {
		return ""
	}
	return value
}
