package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
	"github.com/m04kA/SMC-DoctorBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DoctorBookingService/pkg/psqlbuilder"
)

const tableName = "payments"

var columns = []string{
	"id",
	"appointment_id",
	"amount",
	"method",
	"payment_id",
	"invoice_number",
	"transaction_id",
	"status",
	"paid_at",
	"created_at",
	"updated_at",
}

// Repository журнал попыток оплаты
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет попытку оплаты
func (r *Repository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("appointment_id", "amount", "method", "payment_id", "invoice_number", "status").
		Values(
			payment.AppointmentID,
			payment.Amount,
			payment.Method,
			payment.PaymentID,
			payment.InvoiceNumber,
			payment.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&payment.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	payment.CreatedAt = createdAt.Time
	payment.UpdatedAt = updatedAt.Time

	return payment, nil
}

// GetByPaymentID получает платёж по ID платёжного шлюза
func (r *Repository) GetByPaymentID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"payment_id": paymentID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByPaymentID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		p                    domain.Payment
		paidAt               sql.NullTime
		createdAt, updatedAt sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.AppointmentID,
		&p.Amount,
		&p.Method,
		&p.PaymentID,
		&p.InvoiceNumber,
		&p.TransactionID,
		&p.Status,
		&paidAt,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPaymentID - scan payment: %w", ErrScanRow, err)
	}

	if paidAt.Valid {
		p.PaidAt = &paidAt.Time
	}
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}

// MarkCompleted фиксирует успешную оплату платежа в статусе pending
// Для уже обработанного платежа возвращает ErrPaymentAlreadyProcessed
func (r *Repository) MarkCompleted(ctx context.Context, id int64, transactionID string) error {
	query, args, err := psqlbuilder.Update(tableName).
		Set("status", domain.PaymentRecordCompleted).
		Set("transaction_id", transactionID).
		Set("paid_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.PaymentRecordPending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkCompleted - build update query: %v", ErrBuildQuery, err)
	}

	return r.exec(ctx, "MarkCompleted", id, query, args)
}

// MarkFailed фиксирует отказ или отмену оплаты платежа в статусе pending
func (r *Repository) MarkFailed(ctx context.Context, id int64) error {
	query, args, err := psqlbuilder.Update(tableName).
		Set("status", domain.PaymentRecordFailed).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.PaymentRecordPending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkFailed - build update query: %v", ErrBuildQuery, err)
	}

	return r.exec(ctx, "MarkFailed", id, query, args)
}

func (r *Repository) exec(ctx context.Context, op string, id int64, query string, args []interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected > 0 {
		return nil
	}

	// 0 строк: платежа нет или он уже обработан
	query, args, err = psqlbuilder.Select("status").
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: %s - build status query: %v", ErrBuildQuery, op, err)
	}

	var status string
	err = executor.QueryRowContext(ctx, query, args...).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrPaymentNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %s - scan status: %w", ErrScanRow, op, err)
	}

	return fmt.Errorf("%w: %s - id=%d, status=%s", ErrPaymentAlreadyProcessed, op, id, status)
}
