package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/yz4230/repowatch/internal/entity"
)

// RecordRepository is the record store. Records are append-only.
type RecordRepository interface {
	Insert(ctx context.Context, record *entity.Record) (*entity.Record, error)
	Recent(ctx context.Context, limit int) ([]*entity.Record, error)
	Since(ctx context.Context, since time.Time) ([]*entity.Record, error)
}

type recordRepositoryImpl struct {
	db  *Database
	now func() time.Time
}

func NewRecordRepository(db *Database) RecordRepository {
	return &recordRepositoryImpl{db: db, now: time.Now}
}

// Insert stores the record and returns it with its generated ID. A zero
// timestamp is replaced with the current time.
func (r *recordRepositoryImpl) Insert(ctx context.Context, record *entity.Record) (*entity.Record, error) {
	ctx, cancel := withTimeout(ctx, r.db.timeout)
	defer cancel()

	var model Record
	model.FromEntity(record)
	if model.Timestamp.IsZero() {
		model.Timestamp = r.now().UTC()
	}
	if err := r.db.WithContext(ctx).Table(r.db.table).Create(&model).Error; err != nil {
		return nil, fmt.Errorf("insert record: %w", err)
	}
	return model.ToEntity(), nil
}

// Recent returns at most limit records, newest first.
func (r *recordRepositoryImpl) Recent(ctx context.Context, limit int) ([]*entity.Record, error) {
	ctx, cancel := withTimeout(ctx, r.db.timeout)
	defer cancel()

	var founds []Record
	err := r.db.WithContext(ctx).Table(r.db.table).
		Order("timestamp DESC").Order("id DESC").
		Limit(limit).
		Find(&founds).Error
	if err != nil {
		return nil, fmt.Errorf("list recent records: %w", err)
	}
	return toEntities(founds), nil
}

// Since returns records with a timestamp strictly after since, newest first.
func (r *recordRepositoryImpl) Since(ctx context.Context, since time.Time) ([]*entity.Record, error) {
	ctx, cancel := withTimeout(ctx, r.db.timeout)
	defer cancel()

	var founds []Record
	err := r.db.WithContext(ctx).Table(r.db.table).
		Where("timestamp > ?", since.UTC()).
		Order("timestamp DESC").Order("id DESC").
		Find(&founds).Error
	if err != nil {
		return nil, fmt.Errorf("list records since %s: %w", since.Format(time.RFC3339), err)
	}
	return toEntities(founds), nil
}

func toEntities(founds []Record) []*entity.Record {
	return lo.Map(founds, func(f Record, _ int) *entity.Record { return f.ToEntity() })
}
