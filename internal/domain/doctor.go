package domain

// Doctor врач; справочник ведётся административной частью, здесь только чтение
type Doctor struct {
	ID              int64
	UserID          *int64 // Пользователь, связанный с профилем врача
	Name            string
	Specialization  string
	ConsultationFee float64
	IsAvailable     bool
}

// IsOwnedBy returns true if the doctor profile belongs to the user
func (d *Doctor) IsOwnedBy(userID int64) bool {
	return d.UserID != nil && *d.UserID == userID
}
