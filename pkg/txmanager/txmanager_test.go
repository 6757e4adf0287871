package txmanager

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyBot/pkg/dbmetrics"
)

func newManager(t *testing.T) (*TransactionManager, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return NewTransactionManager(dbmetrics.Wrap(sqlDB, nil)), mock
}

func TestDoSerializable_Commit(t *testing.T) {
	mgr, mock := newManager(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO appointments").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		require.True(t, dbmetrics.IsInTransaction(ctx))
		_, err := dbmetrics.GetExecutor(ctx, nil).ExecContext(ctx, "INSERT INTO appointments DEFAULT VALUES")
		return err
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_RollbackOnError(t *testing.T) {
	mgr, mock := newManager(t)
	wantErr := errors.New("duplicate")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := mgr.Do(context.Background(), func(ctx context.Context) error {
		return wantErr
	})

	assert.ErrorIs(t, err, wantErr)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_BeginFails(t *testing.T) {
	mgr, mock := newManager(t)

	mock.ExpectBegin().WillReturnError(errors.New("no connection"))

	err := mgr.DoReadOnly(context.Background(), func(ctx context.Context) error {
		t.Fatal("fn must not be called")
		return nil
	})

	assert.ErrorIs(t, err, ErrBeginTx)
}

func TestDo_NestedReusesTransaction(t *testing.T) {
	mgr, mock := newManager(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	calls := 0
	err := mgr.Do(context.Background(), func(ctx context.Context) error {
		return mgr.DoSerializable(ctx, func(ctx context.Context) error {
			calls++
			return nil
		})
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	require.NoError(t, mock.ExpectationsWereMet())
}

func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "40001"
}

func newRetryingManager(t *testing.T, attempts int) (*TransactionManager, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return NewTransactionManager(dbmetrics.Wrap(sqlDB, nil), WithSerializationRetry(attempts, isSerializationFailure)), mock
}

func insertAppointment(ctx context.Context) error {
	_, err := dbmetrics.GetExecutor(ctx, nil).ExecContext(ctx, "INSERT INTO appointments DEFAULT VALUES")
	if err != nil {
		return fmt.Errorf("create appointment: %w", err)
	}
	return nil
}

func TestDoSerializable_RetriesSerializationFailure(t *testing.T) {
	mgr, mock := newRetryingManager(t, 3)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO appointments").WillReturnError(&pq.Error{Code: "40001"})
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO appointments").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	calls := 0
	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return insertAppointment(ctx)
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializable_RetriesFailedCommit(t *testing.T) {
	mgr, mock := newRetryingManager(t, 2)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(&pq.Error{Code: "40001"})
	mock.ExpectBegin()
	mock.ExpectCommit()

	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializable_GivesUpAfterAttempts(t *testing.T) {
	mgr, mock := newRetryingManager(t, 2)

	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO appointments").WillReturnError(&pq.Error{Code: "40001"})
		mock.ExpectRollback()
	}

	err := mgr.DoSerializable(context.Background(), insertAppointment)

	require.Error(t, err)
	assert.True(t, isSerializationFailure(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializable_DoesNotRetryOtherErrors(t *testing.T) {
	mgr, mock := newRetryingManager(t, 3)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO appointments").WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	calls := 0
	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return insertAppointment(ctx)
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	require.NoError(t, mock.ExpectationsWereMet())
}
