package procedure

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

// Repository репозиторий процедур
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория процедур
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает процедуру
func (r *Repository) Create(ctx context.Context, p *domain.Procedure) (*domain.Procedure, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("procedures").
		Columns("name", "price").
		Values(p.Name, p.Price).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&p.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return p, nil
}

// GetByID получает процедуру по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Procedure, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "price").
		From("procedures").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Procedure
	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.Name, &p.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProcedureNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan procedure: %v", ErrScanRow, err)
	}

	return &p, nil
}

// List получает все процедуры в порядке ID
func (r *Repository) List(ctx context.Context) ([]*domain.Procedure, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "price").
		From("procedures").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	procedures := make([]*domain.Procedure, 0)
	for rows.Next() {
		var p domain.Procedure
		if err := rows.Scan(&p.ID, &p.Name, &p.Price); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		procedures = append(procedures, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return procedures, nil
}

// Update обновляет процедуру
func (r *Repository) Update(ctx context.Context, p *domain.Procedure) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("procedures").
		Set("name", p.Name).
		Set("price", p.Price).
		Where(squirrel.Eq{"id": p.ID}).
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

// Delete удаляет процедуру
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("procedures").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if pgerrors.IsForeignKeyViolation(err) {
		return fmt.Errorf("%w: Delete - %v", ErrProcedureInUse, err)
	}
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	return checkAffected("Delete", result)
}

func checkAffected(op string, result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrProcedureNotFound
	}
	return nil
}
