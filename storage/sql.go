package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// record is a row of the store table.
type record struct {
	Name      string `gorm:"primaryKey;size:191"`
	Value     []byte
	UpdatedAt time.Time
}

func (record) TableName() string { return "flucas_store" }

// SQL stores keys in a single table of a gorm database.
type SQL struct {
	db *gorm.DB
}

// OpenSQLite opens, or creates, the sqlite database at path.
func OpenSQLite(ctx context.Context, path string) (*SQL, error) {
	if path == "" {
		return nil, errors.New("missing path for sqlite store")
	}
	return openSQL(ctx, sqlite.Open(path))
}

// OpenPostgres connects to the postgres database dsn.
func OpenPostgres(ctx context.Context, dsn string) (*SQL, error) {
	if dsn == "" {
		return nil, errors.New("missing dsn for postgres store")
	}
	return openSQL(ctx, postgres.Open(dsn))
}

func openSQL(ctx context.Context, dialector gorm.Dialector) (*SQL, error) {
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.WithContext(ctx).AutoMigrate(&record{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return &SQL{db: db}, nil
}

func (s *SQL) Get(ctx context.Context, key string) ([]byte, error) {
	var r record
	err := s.db.WithContext(ctx).First(&r, "name = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read %q: %w", key, err)
	}
	return r.Value, nil
}

// Set inserts or replaces the value of key.
func (s *SQL) Set(ctx context.Context, key string, value []byte) error {
	r := record{Name: key, Value: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&r).Error
	if err != nil {
		return fmt.Errorf("cannot write %q: %w", key, err)
	}
	return nil
}

func (s *SQL) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

var _ KV = (*SQL)(nil)
