package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/nashon/pos-ledger-api/internal/config"
	domainRepo "github.com/nashon/pos-ledger-api/internal/domain/repository"
)

// Snapshot is the key-value row holding one serialized collection.
type Snapshot struct {
	Key       string    `gorm:"primaryKey;size:100"`
	Data      []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for the Snapshot model.
func (Snapshot) TableName() string {
	return "snapshots"
}

// NewPostgresDB creates a new PostgreSQL database connection for the
// snapshot store and migrates the snapshots table.
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)

	if err := db.AutoMigrate(&Snapshot{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Successfully connected to PostgreSQL snapshot store")
	return db, nil
}

type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a snapshot repository backed by the snapshots
// table. Used when several terminals share one durable store.
func NewGormStore(db *gorm.DB) domainRepo.SnapshotRepository {
	return &gormStore{db: db}
}

func (s *gormStore) Load(ctx context.Context, key string) ([]byte, error) {
	var snap Snapshot
	err := s.db.WithContext(ctx).First(&snap, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return snap.Data, nil
}

func (s *gormStore) Save(ctx context.Context, key string, data []byte) error {
	snap := Snapshot{Key: key, Data: data}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(&snap).Error
}
