package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log"
	"strings"

	_ "github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type Migrator struct {
	db *sql.DB
}

// Open connects to dbURL with lib/pq and checks the connection.
func Open(ctx context.Context, dbURL string) (*Migrator, error) {
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return NewMigrator(db), nil
}

func NewMigrator(db *sql.DB) *Migrator {
	return &Migrator{db: db}
}

// Migrations lists the embedded migration names in apply order.
func Migrations() ([]string, error) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// Pending returns the migrations not yet recorded in schema_migrations.
func (m *Migrator) Pending(ctx context.Context) ([]string, error) {
	if err := m.createMigrationsTable(ctx); err != nil {
		return nil, fmt.Errorf("failed to create migrations table: %w", err)
	}

	names, err := Migrations()
	if err != nil {
		return nil, err
	}

	var pending []string
	for _, name := range names {
		applied, err := m.isMigrationApplied(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to check migration status: %w", err)
		}
		if !applied {
			pending = append(pending, name)
		}
	}
	return pending, nil
}

// Run applies every pending migration, each in its own transaction, and
// returns the names it applied.
func (m *Migrator) Run(ctx context.Context) ([]string, error) {
	pending, err := m.Pending(ctx)
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		log.Printf("Database schema is up to date")
	}

	var applied []string
	for _, name := range pending {
		if err := m.apply(ctx, name); err != nil {
			return applied, err
		}
		applied = append(applied, name)
	}
	return applied, nil
}

func (m *Migrator) apply(ctx context.Context, name string) error {
	migrationSQL, err := migrationsFS.ReadFile("migrations/" + name)
	if err != nil {
		return fmt.Errorf("failed to read migration %s: %w", name, err)
	}

	log.Printf("Applying migration: %s", name)

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, string(migrationSQL)); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to execute migration %s: %w", name, err)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO schema_migrations (name, applied_at) VALUES ($1, NOW())",
		name,
	); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to record migration %s: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %s: %w", name, err)
	}

	log.Printf("Successfully applied migration: %s", name)
	return nil
}

// SetAdminPassword stores the admin credential, replacing any previous one.
func (m *Migrator) SetAdminPassword(ctx context.Context, password string) error {
	_, err := m.db.ExecContext(ctx,
		`INSERT INTO admin_settings (id, password) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET password = EXCLUDED.password`,
		password,
	)
	if err != nil {
		return fmt.Errorf("failed to set admin password: %w", err)
	}
	return nil
}

func (m *Migrator) createMigrationsTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name TEXT PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT NOW()
		)
	`
	_, err := m.db.ExecContext(ctx, query)
	return err
}

func (m *Migrator) isMigrationApplied(ctx context.Context, name string) (bool, error) {
	var count int
	err := m.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM schema_migrations WHERE name = $1",
		name,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (m *Migrator) Close() error {
	return m.db.Close()
}
