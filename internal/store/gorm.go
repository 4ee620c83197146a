package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is one persisted collection.
type Record struct {
	Key       string `gorm:"primaryKey;size:191"`
	Payload   []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (Record) TableName() string { return "records" }

// GormBackend stores payloads in the records table of a SQLite or PostgreSQL database.
type GormBackend struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormBackend(db *gorm.DB) *GormBackend {
	return &GormBackend{db: db, now: time.Now}
}

func (b *GormBackend) Read(ctx context.Context, key string) ([]byte, bool, error) {
	var rec Record
	err := b.db.WithContext(ctx).Where(&Record{Key: key}).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return rec.Payload, true, nil
}

// Write upserts the payload of key.
func (b *GormBackend) Write(ctx context.Context, key string, payload []byte) error {
	rec := Record{Key: key, Payload: payload, UpdatedAt: b.now().UTC()}
	return b.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&rec).Error
}
