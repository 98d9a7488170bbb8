package repository

import (
	"time"

	"github.com/yz4230/repowatch/internal/entity"
)

// Record is the persisted row. Indexes are created by ensureIndexes so that
// a failure there does not block startup.
type Record struct {
	ID        uint      `gorm:"primarykey"`
	Author    string    `gorm:"not null"`
	PushedTo  string    `gorm:"column:pushed_to;not null"`
	On        string    `gorm:"column:on;not null"`
	Sample    string    `gorm:"not null"`
	Timestamp time.Time `gorm:"not null"`
}

func (r *Record) ToEntity() *entity.Record {
	return &entity.Record{
		ID:        entity.NewID(r.ID),
		Author:    r.Author,
		PushedTo:  r.PushedTo,
		On:        r.On,
		Sample:    r.Sample,
		Timestamp: r.Timestamp.UTC(),
	}
}

func (r *Record) FromEntity(e *entity.Record) {
	if !e.ID.IsZero() {
		r.ID = e.ID.Uint()
	}
	r.Author = e.Author
	r.PushedTo = e.PushedTo
	r.On = e.On
	r.Sample = e.Sample
	r.Timestamp = e.Timestamp.UTC()
}
