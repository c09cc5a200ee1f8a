package postgresql_test

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	testDB     *database.DB
	skipReason string
)

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		skipReason = "integration tests skipped in -short mode"
		os.Exit(m.Run())
	}

	ctx := context.Background()
	container, dsn, err := startPostgres(ctx)
	if err != nil {
		skipReason = fmt.Sprintf("postgres container unavailable: %v", err)
		os.Exit(m.Run())
	}

	code := func() int {
		defer func() {
			if err := container.Terminate(ctx); err != nil {
				log.Printf("failed to terminate postgres container: %v", err)
			}
		}()

		migrator, err := database.NewMigrator(dsn, nil)
		if err != nil {
			log.Printf("failed to create migrator: %v", err)
			return 1
		}
		if err := migrator.Up(); err != nil {
			log.Printf("failed to migrate: %v", err)
			return 1
		}
		_ = migrator.Close()

		testDB, err = database.NewPostgreSQLDB(dsn)
		if err != nil {
			log.Printf("failed to connect: %v", err)
			return 1
		}
		defer testDB.Close()

		return m.Run()
	}()
	os.Exit(code)
}

// startPostgres runs a throwaway PostgreSQL; a missing Docker daemon is reported as an error
func startPostgres(ctx context.Context) (container testcontainers.Container, dsn string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("docker unavailable: %v", p)
		}
	}()

	pg, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("payroll_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		return nil, "", err
	}

	dsn, err = pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pg.Terminate(ctx)
		return nil, "", err
	}
	return pg, dsn, nil
}

// setupDB skips when no database is available and empties every table
func setupDB(t *testing.T) *database.DB {
	t.Helper()
	if testDB == nil {
		if skipReason == "" {
			skipReason = "test database not initialized"
		}
		t.Skip(skipReason)
	}

	_, err := testDB.Exec(context.Background(), `
		TRUNCATE TABLE payroll_items, payrolls, year_end_bonuses, social_securities, logistics_data,
			attendances, salary_changes, employees, workshops, departments, users
		RESTART IDENTITY CASCADE
	`)
	require.NoError(t, err)
	return testDB
}
