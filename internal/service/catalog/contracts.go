package catalog

import (
	"context"

	"github.com/m04kA/SMC-BeautyBot/internal/domain"
)

// SalonRepository интерфейс репозитория салонов
type SalonRepository interface {
	Create(ctx context.Context, s *domain.Salon) (*domain.Salon, error)
	GetByID(ctx context.Context, id int64) (*domain.Salon, error)
	List(ctx context.Context) ([]*domain.Salon, error)
	Update(ctx context.Context, s *domain.Salon) error
	Delete(ctx context.Context, id int64) error
}

// SpecialistRepository интерфейс репозитория мастеров
type SpecialistRepository interface {
	Create(ctx context.Context, s *domain.Specialist) (*domain.Specialist, error)
	GetByID(ctx context.Context, id int64) (*domain.Specialist, error)
	List(ctx context.Context) ([]*domain.Specialist, error)
	Update(ctx context.Context, s *domain.Specialist) error
	Delete(ctx context.Context, id int64) error
}

// ProcedureRepository интерфейс репозитория процедур
type ProcedureRepository interface {
	Create(ctx context.Context, p *domain.Procedure) (*domain.Procedure, error)
	GetByID(ctx context.Context, id int64) (*domain.Procedure, error)
	List(ctx context.Context) ([]*domain.Procedure, error)
	Update(ctx context.Context, p *domain.Procedure) error
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
