package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BeautyBot/internal/domain"
	"github.com/m04kA/SMC-BeautyBot/pkg/dbmetrics"
	"github.com/m04kA/SMC-BeautyBot/pkg/psqlbuilder"
)

// Repository репозиторий клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создает клиента или обновляет имя существующего с тем же телефоном
func (r *Repository) Upsert(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("clients").
		Columns("name", "phone_number", "email").
		Values(c.Name, c.PhoneNumber, c.Email).
		Suffix("ON CONFLICT (phone_number) DO UPDATE SET name = EXCLUDED.name RETURNING id, loyalty_points, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.LoyaltyPoints, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}
	c.CreatedAt = createdAt.Time

	return c, nil
}

// GetByPhone получает клиента по номеру телефона
func (r *Repository) GetByPhone(ctx context.Context, phone string) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "phone_number", "email", "loyalty_points", "created_at").
		From("clients").
		Where(squirrel.Eq{"phone_number": phone}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByPhone - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Client
	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.Name,
		&c.PhoneNumber,
		&c.Email,
		&c.LoyaltyPoints,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPhone - scan client: %v", ErrScanRow, err)
	}
	c.CreatedAt = createdAt.Time

	return &c, nil
}
