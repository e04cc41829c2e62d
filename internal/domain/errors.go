package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput некорректные входные данные (формат даты/времени, пустое обязательное поле)
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound врач, запись или слот не существует
	ErrNotFound = errors.New("not found")

	// ErrCapacityExceeded час у врача полностью занят
	ErrCapacityExceeded = errors.New("hour fully booked")

	// ErrScheduleConflict нарушение start < end или уникальности (doctor, weekday, start)
	ErrScheduleConflict = errors.New("schedule conflict")

	// ErrConcurrencyConflict конфликт параллельной записи после повтора
	ErrConcurrencyConflict = errors.New("concurrent booking conflict, please try again")

	// ErrAccessDenied у пользователя нет прав на операцию
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidTransition недопустимый переход статуса записи
	ErrInvalidTransition = errors.New("invalid status transition")
)

// CapacityExceededError отказ в записи с деталями для сообщения пользователю
type CapacityExceededError struct {
	DoctorName string
	Window     HourWindow
	Capacity   int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("Dr. %s already has %d appointments booked between %s. Please choose another time or try the next hour.",
		e.DoctorName, e.Capacity, e.Window.Display())
}

func (e *CapacityExceededError) Unwrap() error {
	return ErrCapacityExceeded
}
