package specialist

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

// Repository репозиторий мастеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория мастеров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает мастера
func (r *Repository) Create(ctx context.Context, s *domain.Specialist) (*domain.Specialist, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("specialists").
		Columns("name", "specialization", "phone", "email").
		Values(s.Name, s.Specialization, s.Phone, s.Email).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return s, nil
}

// GetByID получает мастера по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Specialist, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectSpecialists().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSpecialist(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSpecialistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan specialist: %v", ErrScanRow, err)
	}

	return s, nil
}

// List получает всех мастеров в порядке ID
func (r *Repository) List(ctx context.Context) ([]*domain.Specialist, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectSpecialists().OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "List", query, args)
}

// FindFree возвращает мастера с наименьшим ID, у которого нет записи на дату и время
func (r *Repository) FindFree(ctx context.Context, date time.Time, slot types.TimeString) (*domain.Specialist, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// подзапрос строится с плейсхолдерами "?", нумерацию $n проставит внешний запрос
	busySQL, busyArgs, err := squirrel.Select("specialist_id").
		From("appointments").
		Where(squirrel.Eq{"date": date, "time": slot}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindFree - build subquery: %v", ErrBuildQuery, err)
	}

	query, args, err := selectSpecialists().
		Where(squirrel.Expr("id NOT IN ("+busySQL+")", busyArgs...)).
		OrderBy("id ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindFree - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSpecialist(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoFreeSpecialist
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindFree - scan specialist: %w", ErrScanRow, err)
	}

	return s, nil
}

// Update обновляет мастера
func (r *Repository) Update(ctx context.Context, s *domain.Specialist) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("specialists").
		Set("name", s.Name).
		Set("specialization", s.Specialization).
		Set("phone", s.Phone).
		Set("email", s.Email).
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

// Delete удаляет мастера
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("specialists").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if pgerrors.IsForeignKeyViolation(err) {
		return fmt.Errorf("%w: Delete - %v", ErrSpecialistInUse, err)
	}
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	return checkAffected("Delete", result)
}

func (r *Repository) query(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) ([]*domain.Specialist, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	specialists := make([]*domain.Specialist, 0)
	for rows.Next() {
		s, err := scanSpecialist(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		specialists = append(specialists, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return specialists, nil
}

func selectSpecialists() squirrel.SelectBuilder {
	return psqlbuilder.Select("id", "name", "specialization", "phone", "email").From("specialists")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSpecialist(row rowScanner) (*domain.Specialist, error) {
	var s domain.Specialist
	if err := row.Scan(&s.ID, &s.Name, &s.Specialization, &s.Phone, &s.Email); err != nil {
		return nil, err
	}
	return &s, nil
}

func checkAffected(op string, result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrSpecialistNotFound
	}
	return nil
}
