package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
	"github.com/m04kA/SMC-DoctorBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DoctorBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-DoctorBookingService/pkg/types"
)

const tableName = "appointments"

var columns = []string{
	"id",
	"patient_id",
	"doctor_id",
	"appointment_date",
	"appointment_time",
	"reason",
	"symptoms",
	"status",
	"payment_status",
	"amount",
	"meeting_id",
	"meeting_join_url",
	"meeting_start_url",
	"meeting_password",
	"created_at",
	"updated_at",
}

// Repository журнал записей на приём
// Единственный источник истины для занятости слотов и почасового лимита
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"patient_id",
			"doctor_id",
			"appointment_date",
			"appointment_time",
			"reason",
			"symptoms",
			"status",
			"payment_status",
			"amount",
		).
		Values(
			appointment.PatientID,
			appointment.DoctorID,
			appointment.Date,
			appointment.Time,
			appointment.Reason,
			appointment.Symptoms,
			appointment.Status,
			appointment.PaymentStatus,
			appointment.Amount,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appointment.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	return appointment, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appointment, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %w", ErrScanRow, err)
	}

	return appointment, nil
}

// CountLive считает живые записи врача на дату в пределах часового окна
// excludeID исключает запись из подсчёта (перенос существующей записи)
func (r *Repository) CountLive(ctx context.Context, doctorID int64, date time.Time, window domain.HourWindow, excludeID *int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COUNT(*)").
		From(tableName).
		Where(squirrel.Eq{"doctor_id": doctorID}).
		Where(squirrel.Eq{"appointment_date": date}).
		Where(squirrel.Eq{"status": liveStatuses()}).
		Where(squirrel.GtOrEq{"appointment_time": window.Start})

	// Окно 23:00 не ограничено сверху: TIME не бывает больше 23:59:59
	if !window.EndsAtMidnight() {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"appointment_time": window.End})
	}

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountLive - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountLive - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// ListOccupiedTimes возвращает время начала живых записей врача на дату
func (r *Repository) ListOccupiedTimes(ctx context.Context, doctorID int64, date time.Time) ([]types.TimeString, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT appointment_time").
		From(tableName).
		Where(squirrel.Eq{"doctor_id": doctorID}).
		Where(squirrel.Eq{"appointment_date": date}).
		Where(squirrel.Eq{"status": liveStatuses()}).
		OrderBy("appointment_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListOccupiedTimes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOccupiedTimes - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	times := make([]types.TimeString, 0)
	for rows.Next() {
		var t types.TimeString
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("%w: ListOccupiedTimes - scan time: %v", ErrScanRow, err)
		}
		times = append(times, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOccupiedTimes - rows error: %w", ErrScanRow, err)
	}

	return times, nil
}

// LockHourWindow берёт транзакционную advisory-блокировку на (врач, дата, час)
// Блокировка снимается при commit/rollback, поэтому вне транзакции не имеет смысла
func (r *Repository) LockHourWindow(ctx context.Context, doctorID int64, date time.Time, window domain.HourWindow) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrLockOutsideTransaction
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	key := HourWindowLockKey(doctorID, date, window)
	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))", key); err != nil {
		return fmt.Errorf("%w: LockHourWindow - key=%s: %w", ErrExecQuery, key, err)
	}

	return nil
}

// HourWindowLockKey ключ advisory-блокировки часового окна
func HourWindowLockKey(doctorID int64, date time.Time, window domain.HourWindow) string {
	return fmt.Sprintf("appt:%d:%s:%02d", doctorID, date.Format(domain.DateFormat), window.Hour())
}

// GetByPatient получает записи пациента, новые сверху
// Опционально фильтрует по статусу
func (r *Repository) GetByPatient(ctx context.Context, filter domain.PatientAppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"patient_id": filter.PatientID}).
		OrderBy("appointment_date DESC, appointment_time DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPatient - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPatient - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// GetByDoctorWithFilter получает записи врача за период
// Для одной даты сортирует по времени по возрастанию, для периода - новые сверху
func (r *Repository) GetByDoctorWithFilter(ctx context.Context, filter domain.DoctorAppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"doctor_id": filter.DoctorID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"appointment_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"appointment_date": *filter.EndDate})
	}
	if len(filter.Statuses) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(filter.Statuses)})
	}

	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate) {
		selectBuilder = selectBuilder.OrderBy("appointment_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("appointment_date DESC, appointment_time DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDoctorWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDoctorWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// UpdateStatus выполняет переход статуса, только если текущий статус входит в transition.From
// Иначе возвращает ErrStatusConflict (или ErrAppointmentNotFound)
func (r *Repository) UpdateStatus(ctx context.Context, id int64, transition domain.StatusTransition) error {
	query, args, err := psqlbuilder.Update(tableName).
		Set("status", transition.To).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": statusStrings(transition.From)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, "UpdateStatus", id, query, args)
}

// Reschedule переносит живую запись на новую дату и время
func (r *Repository) Reschedule(ctx context.Context, id int64, date time.Time, t types.TimeString) error {
	query, args, err := psqlbuilder.Update(tableName).
		Set("appointment_date", date).
		Set("appointment_time", t).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": liveStatuses()}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Reschedule - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, "Reschedule", id, query, args)
}

// UpdatePayment обновляет статус оплаты
// Если transition задан, статус записи меняется в том же UPDATE и только из transition.From
func (r *Repository) UpdatePayment(ctx context.Context, id int64, paymentStatus domain.PaymentStatus, transition *domain.StatusTransition) error {
	updateBuilder := psqlbuilder.Update(tableName).
		Set("payment_status", paymentStatus)

	if transition != nil {
		updateBuilder = updateBuilder.Set("status", transition.To)
	}

	updateBuilder = updateBuilder.
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if transition != nil {
		updateBuilder = updateBuilder.Where(squirrel.Eq{"status": statusStrings(transition.From)})
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdatePayment - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, "UpdatePayment", id, query, args)
}

// SetMeeting сохраняет данные онлайн-встречи
func (r *Repository) SetMeeting(ctx context.Context, id int64, meeting domain.Meeting) error {
	query, args, err := psqlbuilder.Update(tableName).
		Set("meeting_id", meeting.ID).
		Set("meeting_join_url", meeting.JoinURL).
		Set("meeting_start_url", meeting.StartURL).
		Set("meeting_password", meeting.Password).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetMeeting - build update query: %v", ErrBuildQuery, err)
	}

	return r.execSingleRow(ctx, "SetMeeting", query, args)
}

func (r *Repository) execSingleRow(ctx context.Context, op, query string, args []interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// execGuarded выполняет условный UPDATE; 0 строк означает, что запись не найдена
// или её статус уже изменился
func (r *Repository) execGuarded(ctx context.Context, op string, id int64, query string, args []interface{}) error {
	err := r.execSingleRow(ctx, op, query, args)
	if !errors.Is(err, ErrAppointmentNotFound) {
		return err
	}
	return r.statusConflict(ctx, op, id)
}

func (r *Repository) statusConflict(ctx context.Context, op string, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("status").
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: %s - build status query: %v", ErrBuildQuery, op, err)
	}

	var status string
	err = executor.QueryRowContext(ctx, query, args...).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrAppointmentNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %s - scan status: %w", ErrScanRow, op, err)
	}

	return fmt.Errorf("%w: %s - id=%d, status=%s", ErrStatusConflict, op, id, status)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		a                    domain.Appointment
		meetingID            sql.NullString
		joinURL, startURL    sql.NullString
		password             sql.NullString
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&a.ID,
		&a.PatientID,
		&a.DoctorID,
		&a.Date,
		&a.Time,
		&a.Reason,
		&a.Symptoms,
		&a.Status,
		&a.PaymentStatus,
		&a.Amount,
		&meetingID,
		&joinURL,
		&startURL,
		&password,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if joinURL.Valid && joinURL.String != "" {
		a.Meeting = &domain.Meeting{
			ID:       meetingID.String,
			JoinURL:  joinURL.String,
			StartURL: startURL.String,
			Password: password.String,
		}
	}
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %w", ErrScanRow, err)
	}

	return appointments, nil
}

func liveStatuses() []string {
	return statusStrings(domain.LiveStatuses)
}

func statusStrings(statuses []domain.AppointmentStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}
