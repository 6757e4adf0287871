package salon

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BeautyBot/internal/domain"
	"github.com/m04kA/SMC-BeautyBot/internal/infra/storage/pgerrors"
	"github.com/m04kA/SMC-BeautyBot/pkg/dbmetrics"
	"github.com/m04kA/SMC-BeautyBot/pkg/psqlbuilder"
)

// Repository репозиторий салонов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория салонов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает салон
func (r *Repository) Create(ctx context.Context, s *domain.Salon) (*domain.Salon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("salons").
		Columns("name", "address", "phone", "email", "opening_time", "closing_time").
		Values(s.Name, s.Address, s.Phone, s.Email, s.OpeningTime, s.ClosingTime).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	s.CreatedAt = createdAt.Time

	return s, nil
}

// GetByID получает салон по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Salon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectSalons().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSalon(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSalonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan salon: %v", ErrScanRow, err)
	}

	return s, nil
}

// List получает все салоны в порядке ID
func (r *Repository) List(ctx context.Context) ([]*domain.Salon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectSalons().OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	salons := make([]*domain.Salon, 0)
	for rows.Next() {
		s, err := scanSalon(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		salons = append(salons, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return salons, nil
}

// Update обновляет салон
func (r *Repository) Update(ctx context.Context, s *domain.Salon) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("salons").
		Set("name", s.Name).
		Set("address", s.Address).
		Set("phone", s.Phone).
		Set("email", s.Email).
		Set("opening_time", s.OpeningTime).
		Set("closing_time", s.ClosingTime).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected("Update", result)
}

// Delete удаляет салон
// Салон с записями удалить нельзя (ErrSalonInUse)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("salons").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if pgerrors.IsForeignKeyViolation(err) {
		return fmt.Errorf("%w: Delete - %v", ErrSalonInUse, err)
	}
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	return checkAffected("Delete", result)
}

func selectSalons() squirrel.SelectBuilder {
	return psqlbuilder.Select("id", "name", "address", "phone", "email", "opening_time", "closing_time", "created_at").
		From("salons")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSalon(row rowScanner) (*domain.Salon, error) {
	var s domain.Salon
	var createdAt sql.NullTime

	err := row.Scan(&s.ID, &s.Name, &s.Address, &s.Phone, &s.Email, &s.OpeningTime, &s.ClosingTime, &createdAt)
	if err != nil {
		return nil, err
	}
	s.CreatedAt = createdAt.Time

	return &s, nil
}

func checkAffected(op string, result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrSalonNotFound
	}
	return nil
}
