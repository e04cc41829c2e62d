// Package testutil содержит in-memory реализации хранилищ для тестов use case
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-DoctorBookingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-DoctorBookingService/pkg/types"
)

// MemoryLedger журнал записей в памяти с семантикой appointment.Repository
type MemoryLedger struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]*domain.Appointment
	locks  []string
}

// NewMemoryLedger создает пустой журнал
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{items: make(map[int64]*domain.Appointment)}
}

// Seed добавляет запись как есть и возвращает её ID
func (l *MemoryLedger) Seed(a domain.Appointment) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	a.ID = l.nextID
	l.items[a.ID] = &a
	return a.ID
}

func (l *MemoryLedger) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	stored := *a
	stored.ID = l.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	l.items[stored.ID] = &stored

	result := stored
	return &result, nil
}

func (l *MemoryLedger) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.items[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	result := *a
	return &result, nil
}

func (l *MemoryLedger) CountLive(ctx context.Context, doctorID int64, date time.Time, window domain.HourWindow, excludeID *int64) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	count := 0
	for _, a := range l.items {
		if a.DoctorID != doctorID || !sameDay(a.Date, date) || !a.IsLive() || !window.Contains(a.Time) {
			continue
		}
		if excludeID != nil && a.ID == *excludeID {
			continue
		}
		count++
	}
	return count, nil
}

func (l *MemoryLedger) ListOccupiedTimes(ctx context.Context, doctorID int64, date time.Time) ([]types.TimeString, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	seen := make(map[types.TimeString]struct{})
	result := make([]types.TimeString, 0)
	for _, a := range l.items {
		if a.DoctorID != doctorID || !sameDay(a.Date, date) || !a.IsLive() {
			continue
		}
		if _, ok := seen[a.Time]; ok {
			continue
		}
		seen[a.Time] = struct{}{}
		result = append(result, a.Time)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].IsBefore(result[j]) })
	return result, nil
}

func (l *MemoryLedger) GetByPatient(ctx context.Context, filter domain.PatientAppointmentsFilter) ([]*domain.Appointment, error) {
	return l.list(func(a *domain.Appointment) bool {
		return a.PatientID == filter.PatientID && (filter.Status == nil || a.Status == *filter.Status)
	}, true), nil
}

func (l *MemoryLedger) GetByDoctorWithFilter(ctx context.Context, filter domain.DoctorAppointmentsFilter) ([]*domain.Appointment, error) {
	singleDay := filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate)
	return l.list(func(a *domain.Appointment) bool {
		if a.DoctorID != filter.DoctorID {
			return false
		}
		if filter.StartDate != nil && a.Date.Before(*filter.StartDate) {
			return false
		}
		if filter.EndDate != nil && a.Date.After(*filter.EndDate) {
			return false
		}
		if len(filter.Statuses) == 0 {
			return true
		}
		for _, s := range filter.Statuses {
			if a.Status == s {
				return true
			}
		}
		return false
	}, !singleDay), nil
}

// LockHourWindow запоминает ключ; взаимное исключение обеспечивает SerialTxManager
func (l *MemoryLedger) LockHourWindow(ctx context.Context, doctorID int64, date time.Time, window domain.HourWindow) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.locks = append(l.locks, appointmentRepo.HourWindowLockKey(doctorID, date, window))
	return nil
}

// Locks ключи взятых блокировок в порядке вызова
func (l *MemoryLedger) Locks() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.locks...)
}

func (l *MemoryLedger) UpdateStatus(ctx context.Context, id int64, transition domain.StatusTransition) error {
	return l.guardedUpdate(id, transition.From, func(a *domain.Appointment) { a.Status = transition.To })
}

func (l *MemoryLedger) Reschedule(ctx context.Context, id int64, date time.Time, t types.TimeString) error {
	return l.guardedUpdate(id, domain.LiveStatuses, func(a *domain.Appointment) {
		a.Date = date
		a.Time = t
	})
}

func (l *MemoryLedger) UpdatePayment(ctx context.Context, id int64, paymentStatus domain.PaymentStatus, transition *domain.StatusTransition) error {
	if transition == nil {
		return l.update(id, func(a *domain.Appointment) { a.PaymentStatus = paymentStatus })
	}
	return l.guardedUpdate(id, transition.From, func(a *domain.Appointment) {
		a.PaymentStatus = paymentStatus
		a.Status = transition.To
	})
}

func (l *MemoryLedger) SetMeeting(ctx context.Context, id int64, meeting domain.Meeting) error {
	return l.update(id, func(a *domain.Appointment) { a.Meeting = &meeting })
}

// Live количество живых записей врача в окне
func (l *MemoryLedger) Live(doctorID int64, date time.Time, window domain.HourWindow) int {
	count, _ := l.CountLive(context.Background(), doctorID, date, window, nil)
	return count
}

func (l *MemoryLedger) update(id int64, fn func(a *domain.Appointment)) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.items[id]
	if !ok {
		return fmt.Errorf("%w: id=%d", appointmentRepo.ErrAppointmentNotFound, id)
	}
	fn(a)
	a.UpdatedAt = time.Now()
	return nil
}

// guardedUpdate применяет fn, только если статус записи входит в from
func (l *MemoryLedger) guardedUpdate(id int64, from []domain.AppointmentStatus, fn func(a *domain.Appointment)) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.items[id]
	if !ok {
		return fmt.Errorf("%w: id=%d", appointmentRepo.ErrAppointmentNotFound, id)
	}
	if !(domain.StatusTransition{From: from}).Allows(a.Status) {
		return fmt.Errorf("%w: id=%d, status=%s", appointmentRepo.ErrStatusConflict, id, a.Status)
	}
	fn(a)
	a.UpdatedAt = time.Now()
	return nil
}

// list копии подходящих записей; newestFirst - по убыванию даты и времени
func (l *MemoryLedger) list(match func(a *domain.Appointment) bool, newestFirst bool) []*domain.Appointment {
	l.mu.Lock()
	defer l.mu.Unlock()

	result := make([]*domain.Appointment, 0)
	for _, a := range l.items {
		if match(a) {
			copied := *a
			result = append(result, &copied)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if newestFirst {
			return result[j].StartsAt().Before(result[i].StartsAt())
		}
		return result[i].StartsAt().Before(result[j].StartsAt())
	})
	return result
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
