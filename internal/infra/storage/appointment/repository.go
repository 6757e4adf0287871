package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BeautyBot/internal/domain"
	"github.com/m04kA/SMC-BeautyBot/internal/infra/storage/pgerrors"
	"github.com/m04kA/SMC-BeautyBot/pkg/dbmetrics"
	"github.com/m04kA/SMC-BeautyBot/pkg/psqlbuilder"
	"github.com/m04kA/SMC-BeautyBot/pkg/types"
)

var columns = []string{
	"id",
	"salon_id",
	"specialist_id",
	"procedure_id",
	"client_id",
	"date",
	"time",
	"client_name",
	"client_phone",
	"start_time",
	"end_time",
	"created_at",
}

// Repository репозиторий для работы с записями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись
// Если в контексте передана активная транзакция, использует её.
// Повторная запись на тот же (салон, мастер, дата, время) отклоняется ограничением БД
// и возвращается как ErrDuplicateAppointment.
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"salon_id",
			"specialist_id",
			"procedure_id",
			"client_id",
			"date",
			"time",
			"client_name",
			"client_phone",
			"start_time",
			"end_time",
		).
		Values(
			a.SalonID,
			a.SpecialistID,
			a.ProcedureID,
			a.ClientID,
			a.Date,
			a.Time,
			a.ClientName,
			a.ClientPhone,
			a.StartTime,
			a.EndTime,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &createdAt)
	if err != nil {
		return nil, mapWriteError("Create", err)
	}

	a.CreatedAt = createdAt.Time

	return a, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return a, nil
}

// List получает записи по фильтру, отсортированные по дате и времени
func (r *Repository) List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("appointments").
		OrderBy("date ASC", "time ASC", "id ASC")

	if filter.SalonID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"salon_id": *filter.SalonID})
	}
	if filter.SpecialistID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"specialist_id": *filter.SpecialistID})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"date": *filter.Date})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

// BusyTimes возвращает занятые слоты салона или мастера на дату
func (r *Repository) BusyTimes(ctx context.Context, entity domain.EntityType, id int64, date time.Time) ([]types.TimeString, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var column string
	switch entity {
	case domain.EntitySalon:
		column = "salon_id"
	case domain.EntityMaster:
		column = "specialist_id"
	default:
		return nil, fmt.Errorf("%w: BusyTimes - %q", ErrUnknownEntity, string(entity))
	}

	query, args, err := psqlbuilder.Select("time").
		From("appointments").
		Where(squirrel.Eq{column: id, "date": date}).
		OrderBy("time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: BusyTimes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: BusyTimes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	busy := make([]types.TimeString, 0)
	for rows.Next() {
		var t types.TimeString
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("%w: BusyTimes - scan time: %v", ErrScanRow, err)
		}
		busy = append(busy, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: BusyTimes - rows error: %v", ErrScanRow, err)
	}

	return busy, nil
}

// Update обновляет запись целиком
func (r *Repository) Update(ctx context.Context, a *domain.Appointment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("salon_id", a.SalonID).
		Set("specialist_id", a.SpecialistID).
		Set("procedure_id", a.ProcedureID).
		Set("client_id", a.ClientID).
		Set("date", a.Date).
		Set("time", a.Time).
		Set("client_name", a.ClientName).
		Set("client_phone", a.ClientPhone).
		Set("start_time", a.StartTime).
		Set("end_time", a.EndTime).
		Where(squirrel.Eq{"id": a.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return mapWriteError("Update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// Delete удаляет запись
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var a domain.Appointment
	var createdAt sql.NullTime

	err := row.Scan(
		&a.ID,
		&a.SalonID,
		&a.SpecialistID,
		&a.ProcedureID,
		&a.ClientID,
		&a.Date,
		&a.Time,
		&a.ClientName,
		&a.ClientPhone,
		&a.StartTime,
		&a.EndTime,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	a.CreatedAt = createdAt.Time

	return &a, nil
}

func mapWriteError(op string, err error) error {
	switch {
	case pgerrors.IsUniqueViolation(err):
		return fmt.Errorf("%w: %s - %v", ErrDuplicateAppointment, op, err)
	case pgerrors.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: %s - %v", ErrReferenceNotFound, op, err)
	default:
		return fmt.Errorf("%w: %s - execute: %w", ErrExecQuery, op, err)
	}
}
