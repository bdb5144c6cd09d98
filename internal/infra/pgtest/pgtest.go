//go:build e2e

// Package pgtest starts a throwaway Postgres for tests that need the real database.
// One container is shared per test binary; every caller gets its own database.
package pgtest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"boardinghouse/internal/infra/db"
	"boardinghouse/internal/pkg/config"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testUser     = "test"
	testPassword = "testpass"
)

var (
	containerOnce sync.Once
	containerErr  error
	containerHost string
	containerPort nat.Port
)

// NewDatabase creates a fresh migrated database and returns a pool plus its config.
// The database is dropped when the test ends.
func NewDatabase(t *testing.T) (*pgxpool.Pool, config.DBConfig) {
	t.Helper()
	startContainer(t)

	dbName := "testdb_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	adminDSN := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		testUser, testPassword, containerHost, containerPort.Port())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	adminPool, err := pgxpool.New(ctx, adminDSN)
	require.NoError(t, err, "failed to connect as admin")
	defer adminPool.Close()

	_, err = adminPool.Exec(ctx, "CREATE DATABASE "+dbName)
	require.NoError(t, err, "failed to create test database")

	dbConfig := config.DBConfig{
		Host:     containerHost,
		Port:     containerPort.Port(),
		User:     testUser,
		Password: testPassword,
		DBName:   dbName,
		SSLMode:  "disable",
		TimeZone: "UTC",
		MaxConns: 10,
	}

	pool, cleanup, err := db.Connect(dbConfig)
	require.NoError(t, err, "failed to connect to test database")

	t.Cleanup(func() {
		cleanup()

		dropCtx, dropCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer dropCancel()
		dropPool, err := pgxpool.New(dropCtx, adminDSN)
		if err != nil {
			t.Logf("failed to connect for cleanup of %s: %v", dbName, err)
			return
		}
		defer dropPool.Close()
		if _, err := dropPool.Exec(dropCtx, "DROP DATABASE IF EXISTS "+dbName+" WITH (FORCE)"); err != nil {
			t.Logf("failed to drop %s: %v", dbName, err)
		}
	})

	applyMigrations(t, pool)
	return pool, dbConfig
}

// SeedRoom inserts an available room and returns its id.
func SeedRoom(t *testing.T, pool *pgxpool.Pool, number string, monthlyPrice int64, capacity int) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		"INSERT INTO rooms (id, number, floor, monthly_price, capacity, is_available) VALUES ($1, $2, 1, $3, $4, true)",
		id, number, monthlyPrice, capacity)
	require.NoError(t, err)
	return id
}

// SeedUser inserts an active user with the given bcrypt hash and returns its id.
func SeedUser(t *testing.T, pool *pgxpool.Pool, email, phone, passwordHash, role string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		"INSERT INTO users (id, email, phone, password_hash, role, is_active) VALUES ($1, $2, $3, $4, $5, true)",
		id, email, phone, passwordHash, role)
	require.NoError(t, err)
	return id
}

func startContainer(t *testing.T) {
	t.Helper()
	containerOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "postgres:17",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     testUser,
				"POSTGRES_PASSWORD": testPassword,
				"POSTGRES_DB":       "postgres",
			},
			Tmpfs: map[string]string{
				"/var/lib/postgresql/data": "rw,size=512m",
			},
			Cmd: []string{
				"postgres",
				"-c", "fsync=off",
				"-c", "full_page_writes=off",
				"-c", "synchronous_commit=off",
				"-c", "max_connections=200",
			},
			WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
				return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
					testUser, testPassword, host, port.Port())
			}).WithStartupTimeout(60 * time.Second),
			Labels: map[string]string{"purpose": "e2e-tests"},
		}

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		// ryuk removes the container when the test binary exits
		var c testcontainers.Container
		c, containerErr = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
		if containerErr != nil {
			return
		}
		if containerPort, containerErr = c.MappedPort(ctx, "5432/tcp"); containerErr != nil {
			return
		}
		containerHost, containerErr = c.Host(ctx)
	})
	require.NoError(t, containerErr, "failed to start postgres container")
}

func applyMigrations(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	dir := migrationsDir(t)
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, files, "no migrations found in %s", dir)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	for _, file := range files {
		sqlContent, err := os.ReadFile(file)
		require.NoError(t, err)
		_, err = pool.Exec(ctx, string(sqlContent))
		require.NoError(t, err, "failed to execute migration %s", file)
	}
}

// migrationsDir walks up from the package directory until it finds migrations/.
func migrationsDir(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	for dir := wd; ; dir = filepath.Dir(dir) {
		candidate := filepath.Join(dir, "migrations")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
		if filepath.Dir(dir) == dir {
			t.Fatalf("migrations directory not found above %s", wd)
		}
	}
}
