package catalog

import (
	"context"

	"github.com/m04kA/SMC-BeautyBot/internal/service/catalog/models"
)

type CatalogService interface {
	ListSalons(ctx context.Context) ([]models.SalonResponse, error)
	GetSalon(ctx context.Context, id int64) (*models.SalonResponse, error)
	CreateSalon(ctx context.Context, req *models.SalonRequest) (*models.SalonResponse, error)
	UpdateSalon(ctx context.Context, id int64, req *models.SalonRequest) (*models.SalonResponse, error)
	DeleteSalon(ctx context.Context, id int64) error

	ListSpecialists(ctx context.Context) ([]models.SpecialistResponse, error)
	GetSpecialist(ctx context.Context, id int64) (*models.SpecialistResponse, error)
	CreateSpecialist(ctx context.Context, req *models.SpecialistRequest) (*models.SpecialistResponse, error)
	UpdateSpecialist(ctx context.Context, id int64, req *models.SpecialistRequest) (*models.SpecialistResponse, error)
	DeleteSpecialist(ctx context.Context, id int64) error

	ListProcedures(ctx context.Context) ([]models.ProcedureResponse, error)
	GetProcedure(ctx context.Context, id int64) (*models.ProcedureResponse, error)
	CreateProcedure(ctx context.Context, req *models.ProcedureRequest) (*models.ProcedureResponse, error)
	UpdateProcedure(ctx context.Context, id int64, req *models.ProcedureRequest) (*models.ProcedureResponse, error)
	DeleteProcedure(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
