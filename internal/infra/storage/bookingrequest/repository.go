package bookingrequest

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BeautyBot/internal/domain"
	"github.com/m04kA/SMC-BeautyBot/pkg/dbmetrics"
	"github.com/m04kA/SMC-BeautyBot/pkg/psqlbuilder"
)

// Repository репозиторий заявок на консультацию
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает заявку со статусом new
func (r *Repository) Create(ctx context.Context, req *domain.BookingRequest) (*domain.BookingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if req.Status == "" {
		req.Status = domain.BookingRequestNew
	}

	query, args, err := psqlbuilder.Insert("booking_requests").
		Columns("client_name", "client_phone", "salon_id", "status").
		Values(req.ClientName, req.ClientPhone, req.SalonID, req.Status).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&req.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	req.CreatedAt = createdAt.Time

	return req, nil
}

// List получает заявки, опционально только с указанным статусом
func (r *Repository) List(ctx context.Context, status *domain.BookingRequestStatus) ([]*domain.BookingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "client_name", "client_phone", "salon_id", "status", "created_at").
		From("booking_requests").
		OrderBy("created_at ASC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
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

	requests := make([]*domain.BookingRequest, 0)
	for rows.Next() {
		var req domain.BookingRequest
		var createdAt sql.NullTime
		if err := rows.Scan(&req.ID, &req.ClientName, &req.ClientPhone, &req.SalonID, &req.Status, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		req.CreatedAt = createdAt.Time
		requests = append(requests, &req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return requests, nil
}

// MarkProcessed переводит заявку в статус processed
func (r *Repository) MarkProcessed(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_requests").
		Set("status", domain.BookingRequestProcessed).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkProcessed - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkProcessed - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkProcessed - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingRequestNotFound
	}

	return nil
}
