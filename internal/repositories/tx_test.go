package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTxManager_Commit(t *testing.T) {
	db, mock := newMockDB(t)
	txm := NewTxManager(db, sql.LevelReadCommitted)

	mock.ExpectBegin()
	mock.ExpectCommit()

	called := false
	err := txm.WithinTx(context.Background(), func(ctx context.Context) error {
		called = true
		assert.NotNil(t, TxFromContext(ctx))
		return nil
	})

	assert.NoError(t, err)
	assert.True(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_RollbackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	txm := NewTxManager(db, sql.LevelReadCommitted)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := txm.WithinTx(context.Background(), func(ctx context.Context) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_BeginError(t *testing.T) {
	db, mock := newMockDB(t)
	txm := NewTxManager(db, sql.LevelReadCommitted)

	mock.ExpectBegin().WillReturnError(sql.ErrConnDone)

	called := false
	err := txm.WithinTx(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.False(t, called)
}

func TestTxManager_CommitError(t *testing.T) {
	db, mock := newMockDB(t)
	txm := NewTxManager(db, sql.LevelReadCommitted)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(sql.ErrConnDone)

	err := txm.WithinTx(context.Background(), func(ctx context.Context) error { return nil })

	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_Panic(t *testing.T) {
	db, mock := newMockDB(t)
	txm := NewTxManager(db, sql.LevelReadCommitted)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = txm.WithinTx(context.Background(), func(ctx context.Context) error {
			panic("test panic")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_NestedJoinsOuter(t *testing.T) {
	db, mock := newMockDB(t)
	txm := NewTxManager(db, sql.LevelReadCommitted)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := txm.WithinTx(context.Background(), func(ctx context.Context) error {
		outer := TxFromContext(ctx)
		return txm.WithinTx(ctx, func(ctx context.Context) error {
			assert.Same(t, outer, TxFromContext(ctx))
			return nil
		})
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParseIsolation(t *testing.T) {
	tests := []struct {
		in      string
		want    sql.IsolationLevel
		wantErr bool
	}{
		{"", sql.LevelReadCommitted, false},
		{"read_committed", sql.LevelReadCommitted, false},
		{"REPEATABLE_READ", sql.LevelRepeatableRead, false},
		{"serializable", sql.LevelSerializable, false},
		{"chaos", sql.LevelDefault, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseIsolation(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
