package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/Thiht/transactor"
	txstdlib "github.com/Thiht/transactor/stdlib"
	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pbaille/timebox/internal/logging"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store handles database operations
type Store struct {
	db         *sql.DB
	transactor transactor.Transactor
	dbGetter   txstdlib.DBGetter
	l          logging.Logger
}

// New opens the database at dbPath and applies pending migrations
func New(dbPath string, l logging.Logger) (*Store, error) {
	// Writers take the lock at BEGIN so the read-then-write in SaveSleepWindow cannot interleave.
	dsn := fmt.Sprintf("file:%s?_txlock=immediate&_busy_timeout=5000&_foreign_keys=on", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, err
	}
	l.Debug("database ready", "path", dbPath)

	tx, dbGetter := txstdlib.NewTransactor(db, txstdlib.NestedTransactionsSavepoints)
	return &Store{
		db:         db,
		transactor: tx,
		dbGetter:   dbGetter,
		l:          l,
	}, nil
}

func migrateUp(db *sql.DB) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	// m.Close would close db as well
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// WithinTransaction runs fn in a transaction; store calls made with the
// context fn receives join it.
func (s *Store) WithinTransaction(ctx context.Context, fn func(context.Context) error) error {
	return s.transactor.WithinTransaction(ctx, fn)
}

type scannable interface {
	Scan(...any) error
}
