//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"lashdiary/cmd/bootstrap"
	"lashdiary/cmd/bootstrap/components"
	"lashdiary/internal/infra/db"
	"lashdiary/internal/pkg/config"
	"lashdiary/internal/pkg/password"
	"lashdiary/internal/worker"
	"lashdiary/tests/common/dbtest"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

const (
	AdminEmail    = "owner@lashdiary.test"
	StaffEmail    = "staff@lashdiary.test"
	TestPassword  = "password123"
	migrationFile = "migrations/001_initial_schema.sql"
)

var (
	postgresContainerOnce sync.Once
	postgresTestContainer testcontainers.Container

	testUser     = "test"
	testPassword = "testpass"
)

type ContainerInfo struct {
	Host string
	Port nat.Port
}

type e2eApp struct {
	Router     *gin.Engine
	Config     config.Config
	Dispatcher *worker.Dispatcher
	fx         *fx.App
}

// ------------------------------------------------------------
// Per test process setup
// ------------------------------------------------------------
func setupE2EEnvironment(t *testing.T) (*pgxpool.Pool, *e2eApp) {
	postgresInfo := startContainers(t)

	pool, dbConfig := prepareDatabase(t, postgresInfo)

	app := buildE2EApp(t, dbConfig)
	require.NotNil(t, app.Router, "failed to set up router")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.fx.Stop(ctx); err != nil {
			slog.Warn("failed to stop fx app", "error", err.Error())
		}
	})

	slog.Info("e2e environment ready",
		"postgres_host", postgresInfo.Host,
		"postgres_port", postgresInfo.Port.Port())

	return pool, app
}

// ------------------------------------------------------------
// Containers
// ------------------------------------------------------------
func startContainers(t *testing.T) ContainerInfo {
	gin.SetMode(gin.TestMode)
	startPostgreSQLContainerOnce(t)

	postgresInfo, err := getContainerHostPort(postgresTestContainer, "5432/tcp")
	require.NoError(t, err, "failed to read postgres container address")

	return postgresInfo
}

// ------------------------------------------------------------
// Database
// ------------------------------------------------------------
func prepareDatabase(t *testing.T, postgresInfo ContainerInfo) (*pgxpool.Pool, config.DBConfig) {
	// one database per test process
	dbName := "testdb_" + strings.ReplaceAll(uuid.New().String(), "-", "")

	adminDSN := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		testUser, testPassword, postgresInfo.Host, postgresInfo.Port.Port())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	adminPool, err := pgxpool.New(ctx, adminDSN)
	require.NoError(t, err, "failed to connect as admin")
	defer adminPool.Close()

	var createErr error
	for attempts := range 5 {
		if attempts > 0 {
			waitTime := min(time.Duration(500+attempts*500)*time.Millisecond, 3*time.Second)
			time.Sleep(waitTime)
			slog.Warn("retrying database creation", "attempt", attempts+1, "error", createErr.Error(), "retry_wait", waitTime)
		}
		_, createErr = adminPool.Exec(ctx, "CREATE DATABASE "+dbName)
		if createErr == nil {
			break
		}
	}
	require.NoError(t, createErr, "failed to create test database")

	t.Cleanup(func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cleanupCancel()

		cleanupPool, err := pgxpool.New(cleanupCtx, adminDSN)
		if err != nil {
			slog.Warn("failed to connect for cleanup", "database", dbName, "error", err.Error())
			return
		}
		defer cleanupPool.Close()

		// the app pool may still hold connections
		_, err = cleanupPool.Exec(cleanupCtx, "DROP DATABASE IF EXISTS "+dbName+" WITH (FORCE)")
		if err != nil {
			slog.Warn("failed to drop test database", "database", dbName, "error", err.Error())
		}
	})

	dbConfig := config.DBConfig{
		Host:     postgresInfo.Host,
		Port:     postgresInfo.Port.Port(),
		User:     testUser,
		Password: testPassword,
		DBName:   dbName,
		SSLMode:  "disable",
		TimeZone: "UTC",
		MaxConns: 8,
	}

	pool, closePool, err := db.Connect(context.Background(), dbConfig)
	require.NoError(t, err, "failed to connect to test database")
	require.NotNil(t, pool)
	t.Cleanup(closePool)

	// the app applies the same file on start; applying it here lets ResetDB
	// see every table before the first subtest
	require.NoError(t, db.ApplyMigrations(ctx, pool, resolveMigrationFile(t)), "failed to apply migrations")

	return pool, dbConfig
}

// resolveMigrationFile finds the schema relative to the package being tested.
func resolveMigrationFile(t *testing.T) string {
	t.Helper()

	candidates := []string{
		migrationFile,
		filepath.Join("..", migrationFile),
		filepath.Join("..", "..", migrationFile),
		filepath.Join("..", "..", "..", migrationFile),
	}
	for _, cand := range candidates {
		if _, err := os.Stat(cand); err == nil {
			abs, err := filepath.Abs(cand)
			require.NoError(t, err)
			return abs
		}
	}
	require.FailNow(t, "migration file not found", migrationFile)
	return ""
}

// ------------------------------------------------------------
// Application
// ------------------------------------------------------------
func buildE2EApp(t *testing.T, dbConfig config.DBConfig) *e2eApp {
	t.Helper()

	cfg := createTestConfig(t, dbConfig)
	out := &e2eApp{}

	app := fx.New(
		fx.Supply(cfg),
		bootstrap.StudioModule,
		bootstrap.LoggerModule,
		bootstrap.StoreModule,
		bootstrap.JWTModule,
		components.AccountModule,
		components.SinkModule,
		components.UseCaseModule,
		components.WorkerModule,
		components.HandlerModule,

		fx.Populate(&out.Router, &out.Config, &out.Dispatcher),

		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	require.NoError(t, app.Start(ctx), "failed to start fx app")
	require.NotNil(t, out.Router, "fx app did not provide a router")

	out.fx = app
	return out
}

func createTestConfig(t *testing.T, dbConfig config.DBConfig) config.Config {
	t.Helper()

	hash, err := password.HashPassword(TestPassword)
	require.NoError(t, err)

	testConfig := config.NewTestConfig()
	testConfig.DB = dbConfig
	testConfig.Store.MigrationsFile = resolveMigrationFile(t)
	testConfig.Admin = config.AdminConfig{
		Email:             AdminEmail,
		PasswordHash:      hash,
		StaffEmail:        StaffEmail,
		StaffPasswordHash: hash,
	}
	// tests drain the outbox themselves through Dispatcher.RunOnce
	testConfig.Worker.Enabled = false
	testConfig.RateLimit.Enabled = false
	return testConfig
}

// ------------------------------------------------------------
// Container helpers
// ------------------------------------------------------------
func startGenericContainer(req testcontainers.ContainerRequest, timeoutSec int) (testcontainers.Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSec)*time.Second)
	defer cancel()

	return testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
		// Reuse: true, // Removed to enable proper cleanup by ryuk
	})
}

// ------------------------------------------------------------
// Start the PostgreSQL container once per process
// ------------------------------------------------------------
func startPostgreSQLContainerOnce(t *testing.T) {
	postgresContainerOnce.Do(func() {
		// testcontainers Docker-in-Docker configuration
		// Note: RYUK is enabled for proper cleanup in local development

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
				"-c", "max_wal_size=512MB",
				"-c", "checkpoint_completion_target=0.9",
				"-c", "wal_buffers=16MB",
				"-c", "shared_buffers=256MB",
				"-c", "max_connections=200",
				"-c", "log_statement=none",
				"-c", "log_duration=off",
				"-c", "log_lock_waits=off",
				"-c", "log_checkpoints=off",
				"-c", "autovacuum=on",
				"-c", "autovacuum_max_workers=2",
			},
			WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
				return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
					testUser, testPassword, host, port.Port())
			}).WithStartupTimeout(60 * time.Second),
			Labels: map[string]string{"purpose": "lashdiary-e2e-tests"},
		}

		var err error
		postgresTestContainer, err = startGenericContainer(req, 180)
		require.NoError(t, err, "failed to start postgres container")

		// manual cleanup for when ryuk is disabled
		t.Cleanup(func() {
			if postgresTestContainer != nil {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := postgresTestContainer.Terminate(ctx); err != nil {
					slog.Warn("failed to terminate postgres container", "error", err.Error())
				}
			}
		})
	})
}

// ------------------------------------------------------------
// Container utilities
// ------------------------------------------------------------
func getContainerHostPort(c testcontainers.Container, port string) (ContainerInfo, error) {
	ctx := context.Background()
	mappedPort, err := c.MappedPort(ctx, nat.Port(port))
	if err != nil {
		return ContainerInfo{}, err
	}
	host, err := c.Host(ctx)
	if err != nil {
		return ContainerInfo{}, err
	}
	return ContainerInfo{Host: host, Port: mappedPort}, nil
}

// ------------------------------------------------------------
// Shared suite
// ------------------------------------------------------------
type SharedSuite struct {
	suite.Suite
	Router     *gin.Engine
	DB         *pgxpool.Pool
	Config     config.Config
	Dispatcher *worker.Dispatcher
}

func (s *SharedSuite) SetupSharedSuite(t *testing.T) {
	pool, app := setupE2EEnvironment(t)
	s.DB = pool
	s.Router = app.Router
	s.Config = app.Config
	s.Dispatcher = app.Dispatcher
	require.NotNil(t, s.DB, "failed to set up database")
	require.NotEmpty(t, s.Config, "failed to load config")
	require.NotNil(t, s.Router, "failed to set up router")
}

func (s *SharedSuite) SetupSuite() {
	s.SetupSharedSuite(s.T())
}

func (s *SharedSuite) SetupTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "Failed to reset database state")
}
