package doctor

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

var columns = []string{
	"id",
	"user_id",
	"name",
	"specialization",
	"consultation_fee",
	"is_available",
}

// Repository справочник врачей (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория врачей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает врача по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Doctor, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByUserID получает профиль врача, связанный с пользователем
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*domain.Doctor, error) {
	return r.getOne(ctx, "GetByUserID", squirrel.Eq{"user_id": userID})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Doctor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("doctors").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var (
		doctor domain.Doctor
		userID sql.NullInt64
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&doctor.ID,
		&userID,
		&doctor.Name,
		&doctor.Specialization,
		&doctor.ConsultationFee,
		&doctor.IsAvailable,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDoctorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan doctor: %w", ErrScanRow, op, err)
	}

	if userID.Valid {
		doctor.UserID = &userID.Int64
	}

	return &doctor, nil
}
