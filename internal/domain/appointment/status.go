package appointment

import "github.com/PedrohFolster/inkspiration/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// ActiveStatuses are the statuses that occupy a professional's schedule.
var ActiveStatuses = []string{string(StatusScheduled)}

func IsActive(s Status) bool {
	return s == StatusScheduled
}

// ===============================
// Validations
// ===============================

// CanCancel define se um agendamento pode ser cancelado
func CanCancel(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrConflict(httperr.CodeInvalidState)
	}
	return nil
}

// CanComplete define se um agendamento pode ser concluído
func CanComplete(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrConflict(httperr.CodeInvalidState)
	}
	return nil
}

// CanRate: só agendamentos concluídos recebem avaliação
func CanRate(current Status) error {
	if current != StatusCompleted {
		return httperr.ErrConflict(httperr.CodeAppointmentNotCompleted)
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
