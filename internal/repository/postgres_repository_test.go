package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepository(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(sqlx.NewDb(db, "postgres")), mock
}

func TestPostgresRepositoryLoad(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT key, value FROM kv_entries WHERE document = $1`)).
		WithArgs(DocNotes).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).
			AddRow("C1", "call client").
			AddRow("C2", "file reply"))

	entries, err := repo.Load(context.Background(), DocNotes)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"C1": "call client", "C2": "file reply"}, entries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryLoadError(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT key, value FROM kv_entries`)).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.Load(context.Background(), DocNotes)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositorySave(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM kv_entries WHERE document = $1`)).
		WithArgs(DocSessions).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO kv_entries`)).
		WithArgs(DocSessions, "anita", "t2").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO kv_entries`)).
		WithArgs(DocSessions, "ramesh", "t1").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	err := repo.Save(context.Background(), DocSessions, map[string]string{"ramesh": "t1", "anita": "t2"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositorySaveRollsBack(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM kv_entries`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO kv_entries`)).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.Save(context.Background(), DocSessions, map[string]string{"ramesh": "t1"})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
