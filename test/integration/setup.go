package integration

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"course-market/internal/database"
	"course-market/internal/handler"
	"course-market/internal/metrics"
	"course-market/internal/model"
	"course-market/internal/repository"
	"course-market/internal/router"
	"course-market/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, a connection pool and the schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	if err := database.EnsureSchema(ctx, pool, zerolog.Nop()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// Backend is a running products API over a test database.
type Backend struct {
	Server *httptest.Server
	Repo   repository.ProductRepository
	Svc    service.ProductService
}

// StartBackend serves the products API on a local port until the test ends.
func StartBackend(t *testing.T, testDB *TestDB) *Backend {
	t.Helper()

	logger := zerolog.Nop()
	repo := repository.NewProductRepository(testDB.Pool, logger)
	svc := service.NewProductService(repo, logger)
	mux := router.New(handler.NewProductHandler(svc, logger), metrics.New("integration"), logger)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &Backend{Server: server, Repo: repo, Svc: svc}
}

// SeedProducts inserts test products in the given order.
func SeedProducts(t *testing.T, pool *pgxpool.Pool, products []model.Product) {
	t.Helper()

	repo := repository.NewProductRepository(pool, zerolog.Nop())
	for i := range products {
		if err := repo.Create(context.Background(), &products[i]); err != nil {
			t.Fatalf("failed to seed product %s: %v", products[i].ID, err)
		}
	}
}

// CleanupDB removes all products.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	if _, err := pool.Exec(context.Background(), "DELETE FROM products"); err != nil {
		t.Logf("failed to clean table products: %v", err)
	}
}
