package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{DisableAutomaticPing: true})
	require.NoError(t, err)
	return gdb, mock
}

func TestHealthCheck_PostgresAndRedis(t *testing.T) {
	gdb, mock := newMockDB(t)
	mr := miniredis.RunT(t)
	db := &DB{PostgreSQL: gdb, Redis: redis.NewClient(&redis.Options{Addr: mr.Addr()})}

	mock.ExpectPing()
	require.NoError(t, db.HealthCheck(context.Background()))

	mr.Close()
	mock.ExpectPing()
	assert.Error(t, db.HealthCheck(context.Background()))
}

func TestHealthCheck_WithoutRedis(t *testing.T) {
	gdb, mock := newMockDB(t)
	db := &DB{PostgreSQL: gdb}

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	err := db.HealthCheck(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PostgreSQL ping failed")
}
