package salon

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyBot/internal/domain"
	"github.com/m04kA/SMC-BeautyBot/pkg/dbmetrics"
	"github.com/m04kA/SMC-BeautyBot/pkg/types"
)

var salonColumns = []string{"id", "name", "address", "phone", "email", "opening_time", "closing_time", "created_at"}

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

func TestList_OrderedByID(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM salons ORDER BY id ASC").
		WillReturnRows(sqlmock.NewRows(salonColumns).
			AddRow(int64(1), "Beauty Salon A", "ул. Ленина, 1", "+7 900", "a@salon.ru", "10:00:00", "19:00:00", now).
			AddRow(int64(2), "Beauty Salon B", "ул. Мира, 5", "+7 901", "b@salon.ru", "09:00:00", "21:00:00", now))

	salons, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, salons, 2)
	assert.Equal(t, "Beauty Salon A", salons[0].Name)
	assert.Equal(t, types.TimeString("19:00"), salons[0].ClosingTime)
	assert.Equal(t, int64(2), salons[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("INSERT INTO salons").
		WithArgs("Beauty Salon A", "ул. Ленина, 1", "+7 900", "a@salon.ru", "10:00", "19:00").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), time.Now()))

	s, err := repo.Create(context.Background(), &domain.Salon{
		Name:        "Beauty Salon A",
		Address:     "ул. Ленина, 1",
		Phone:       "+7 900",
		Email:       "a@salon.ru",
		OpeningTime: "10:00",
		ClosingTime: "19:00",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), s.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM salons WHERE id = \\$1").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(salonColumns))

	_, err := repo.GetByID(context.Background(), 99)

	assert.ErrorIs(t, err, ErrSalonNotFound)
}

func TestDelete_InUse(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec("DELETE FROM salons").
		WithArgs(int64(1)).
		WillReturnError(&pq.Error{Code: "23503"})

	err := repo.Delete(context.Background(), 1)

	assert.ErrorIs(t, err, ErrSalonInUse)
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec("UPDATE salons SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &domain.Salon{ID: 3, Name: "X"})

	assert.ErrorIs(t, err, ErrSalonNotFound)
}
