package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/samber/do"
	"github.com/yz4230/repowatch/internal/config"
	"github.com/yz4230/repowatch/internal/entity"
	"github.com/yz4230/repowatch/internal/repository"
)

type fakeRecordRepository struct {
	mu        sync.Mutex
	records   []*entity.Record
	insertErr error
	lastLimit int
	lastSince time.Time
}

func (f *fakeRecordRepository) Insert(_ context.Context, record *entity.Record) (*entity.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	stored := *record
	stored.ID = entity.NewID(uint(len(f.records) + 1))
	f.records = append(f.records, &stored)
	return &stored, nil
}

func (f *fakeRecordRepository) Recent(_ context.Context, limit int) ([]*entity.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastLimit = limit
	return f.records[:min(limit, len(f.records))], nil
}

func (f *fakeRecordRepository) Since(_ context.Context, since time.Time) ([]*entity.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastSince = since
	var out []*entity.Record
	for _, r := range f.records {
		if r.Timestamp.After(since) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRecordRepository) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

func newTestInjector(secret string, repo *fakeRecordRepository, now time.Time) *do.Injector {
	injector := do.New()
	cfg := config.Config{Webhook: config.WebhookConfig{Secret: secret}}
	do.ProvideValue(injector, cfg)
	do.ProvideValue[repository.RecordRepository](injector, repo)
	do.ProvideValue(injector, Clock(func() time.Time { return now }))
	return injector
}
