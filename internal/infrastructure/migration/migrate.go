package migration

import (
	"errors"
	"fmt"

	"revhistory/internal/app/server/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"golang.org/x/exp/slog"
)

// Migrator is the subset of *migrate.Migrate used here.
type Migrator interface {
	Up() error
	Down() error
	Close() (error, error)
}

// MigrationEngine builds a Migrator. Tests swap it to avoid touching the
// filesystem and the database.
type MigrationEngine func(sourceURL, databaseURL string) (Migrator, error)

type Migration struct {
	db     config.DB
	engine MigrationEngine
	log    *slog.Logger
}

func NewMigration(db config.DB, engine MigrationEngine, log *slog.Logger) *Migration {
	return &Migration{
		db:     db,
		engine: engine,
		log:    log.With("component", "migration"),
	}
}

func DefaultEngine(sourceURL, databaseURL string) (Migrator, error) {
	return migrate.New(sourceURL, databaseURL)
}

// Up applies all pending migrations. No pending migrations is not an error.
func (mg *Migration) Up() error {
	return mg.run("up", Migrator.Up)
}

// Down rolls back every applied migration.
func (mg *Migration) Down() error {
	return mg.run("down", Migrator.Down)
}

func (mg *Migration) run(direction string, step func(Migrator) error) (err error) {
	m, err := mg.engine("file://"+mg.db.Migrations, mg.db.DatabaseURI)
	if err != nil {
		return err
	}
	defer func() {
		serr, dberr := m.Close()
		if serr != nil {
			err = errors.Join(err, fmt.Errorf("migration source: %w", serr))
		}
		if dberr != nil {
			err = errors.Join(err, fmt.Errorf("migration database: %w", dberr))
		}
	}()

	if err := step(m); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			mg.log.Info("no migrations to apply", "direction", direction)
			return nil
		}
		return fmt.Errorf("migrate %s: %w", direction, err)
	}

	mg.log.Info("migrations applied", "direction", direction, "path", mg.db.Migrations)
	return nil
}
