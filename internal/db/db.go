package db

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Open opens (creating if needed) the sqlite database at dbPath and applies
// any pending migrations. A failure here is fatal to startup: the rest of the
// system assumes the store exists and has the expected schema.
func Open(dbPath string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_journal_mode=WAL", dbPath)
	return open(dsn)
}

// OpenForTesting opens a unique in-memory database with the full schema
// applied. Each call returns an isolated database.
func OpenForTesting() (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	d, err := open(dsn)
	if err != nil {
		return nil, err
	}
	// A shared in-memory database is dropped when its last connection closes;
	// pinning the pool to one connection keeps it alive for the caller.
	d.SetMaxOpenConns(1)
	return d, nil
}

func open(dsn string) (*sql.DB, error) {
	d, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := d.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(d); err != nil {
		if cerr := d.Close(); cerr != nil {
			return nil, fmt.Errorf("failed to run migrations: %w (also failed to close db: %v)", err, cerr)
		}
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return d, nil
}

func runMigrations(d *sql.DB) error {
	_, err := d.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			dirty   BOOLEAN NOT NULL DEFAULT 0
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	// Collect up migrations keyed by version, parsed from filenames like
	// "000001_create_food_logs.up.sql".
	upByVersion := make(map[int]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".up.sql") {
			continue
		}

		parts := strings.SplitN(name, "_", 2)
		if len(parts) < 2 {
			continue
		}
		version := 0
		if _, err := fmt.Sscanf(parts[0], "%d", &version); err != nil {
			continue
		}
		upByVersion[version] = name
	}

	var versions []int
	for v := range upByVersion {
		versions = append(versions, v)
	}
	sort.Ints(versions)

	for _, version := range versions {
		var applied int
		err := d.QueryRow("SELECT COUNT(*) FROM schema_migrations WHERE version = ?", version).Scan(&applied)
		if err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		if applied > 0 {
			continue
		}

		name := upByVersion[version]
		data, err := fs.ReadFile(migrationsFS, "migrations/"+name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}

		if _, err := d.Exec(string(data)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", name, err)
		}

		if _, err := d.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("failed to record migration: %w", err)
		}
	}

	return nil
}
