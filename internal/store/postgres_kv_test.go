package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresKVGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT slot_value FROM kv_slots").
		WithArgs("obs:records").
		WillReturnRows(sqlmock.NewRows([]string{"slot_value"}).AddRow(`[{"id":"r1"}]`))

	kv := NewPostgresKV(db)
	val, err := kv.Get(context.Background(), "obs:records")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"r1"}]`, val)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresKVGetMiss(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT slot_value FROM kv_slots").
		WithArgs("obs:zones").
		WillReturnRows(sqlmock.NewRows([]string{"slot_value"}))

	kv := NewPostgresKV(db)
	_, err = kv.Get(context.Background(), "obs:zones")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestPostgresKVSet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO kv_slots").
		WithArgs("obs:zones", `[]`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	kv := NewPostgresKV(db)
	require.NoError(t, kv.Set(context.Background(), "obs:zones", `[]`, 0))
	assert.NoError(t, mock.ExpectationsWereMet())
}
