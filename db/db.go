package db

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// EnvDataDir overrides the directory holding the render history database.
const EnvDataDir = "CLIP_STITCH_DATA_DIR"

// Open opens or creates the SQLite database at the default location.
// The database file lives at ~/.local/share/clip-stitch-cli/data.db unless
// CLIP_STITCH_DATA_DIR is set. Parent directories are created if needed.
func Open() (*sql.DB, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, err
	}
	return OpenPath(dbPath)
}

// OpenPath opens or creates the SQLite database at the given path and runs
// migrations.
func OpenPath(dbPath string) (*sql.DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// Verify connection works
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// getDBPath returns the path to the database file.
func getDBPath() (string, error) {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		return filepath.Join(dir, "data.db"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".local", "share", "clip-stitch-cli", "data.db"), nil
}
