package domain

// StatusTransition переход статуса записи, допустимый только из статусов From
type StatusTransition struct {
	From []AppointmentStatus
	To   AppointmentStatus
}

// Переходы жизненного цикла записи
var (
	TransitionCancel = StatusTransition{
		From: LiveStatuses,
		To:   StatusCancelled,
	}
	TransitionConfirm = StatusTransition{
		From: []AppointmentStatus{StatusPending},
		To:   StatusConfirmed,
	}
	TransitionComplete = StatusTransition{
		From: []AppointmentStatus{StatusConfirmed},
		To:   StatusCompleted,
	}
)

// Allows returns true if the transition may start from status
func (t StatusTransition) Allows(status AppointmentStatus) bool {
	for _, from := range t.From {
		if from == status {
			return true
		}
	}
	return false
}
