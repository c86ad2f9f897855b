// Package database is the SQLite storage engine: the same eight logical
// tables as the CSV backend, expressed as real relational tables with
// foreign keys and ON DELETE CASCADE, managed through gorm. Cascades
// that the CSV backend enforces in application code are enforced here by
// constraints, and compound mutations run inside a single transaction.
package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/phoebeshelves/shelves/internal/entities"
)

// Database wraps the gorm handle for the tracker's SQLite file.
type Database struct {
	db *gorm.DB
}

// Open opens (creating if necessary) the SQLite database at dbPath,
// enables foreign-key enforcement, and migrates the schema.
func Open(dbPath string) (*Database, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on", dbPath)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.Author{},
		&entities.Book{},
		&entities.Genre{},
		&entities.Series{},
		&entities.Reading{},
		&entities.BookAuthor{},
		&entities.BookGenre{},
		&entities.BookSeries{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Database{db: db}, nil
}

// Init creates the database file and schema. force empties all tables.
func Init(dbPath string, force bool) error {
	d, err := Open(dbPath)
	if err != nil {
		return err
	}
	defer d.Close()
	if force {
		if err := d.reset(); err != nil {
			return err
		}
		log.Printf("Recreated database at %s", dbPath)
	}
	return nil
}

func (d *Database) reset() error {
	// Dependents first so foreign keys never dangle mid-reset.
	for _, table := range []any{
		&entities.BookSeries{}, &entities.BookGenre{}, &entities.BookAuthor{},
		&entities.Reading{}, &entities.Series{}, &entities.Genre{},
		&entities.Book{}, &entities.Author{},
	} {
		if err := d.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
			return err
		}
	}
	return nil
}

// Close closes the underlying connection.
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
