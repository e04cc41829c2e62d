package domain

// Actor пользователь, от имени которого выполняется операция
// Роль передаётся заголовком X-User-Role и не является аутентификацией
type Actor struct {
	UserID  int64
	IsStaff bool
}

// CanActForDoctor returns true for staff or the user linked to the doctor profile
func (a Actor) CanActForDoctor(doctor *Doctor) bool {
	return a.IsStaff || doctor.IsOwnedBy(a.UserID)
}

// IsPatientOf returns true if the actor booked the appointment
func (a Actor) IsPatientOf(appointment *Appointment) bool {
	return appointment.PatientID == a.UserID
}
