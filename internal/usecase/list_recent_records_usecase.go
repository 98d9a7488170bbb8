package usecase

import (
	"context"

	"github.com/samber/do"
	"github.com/yz4230/repowatch/internal/entity"
	"github.com/yz4230/repowatch/internal/repository"
)

const (
	DefaultRecentLimit = 10
	MaxRecentLimit     = 500
)

type ListRecentRecordsUsecase interface {
	Execute(ctx context.Context, limit int) ([]*entity.Record, error)
}

type listRecentRecordsUsecaseImpl struct {
	recordRepository repository.RecordRepository
}

// Execute implements ListRecentRecordsUsecase. Non-positive limits use the
// default; large ones are capped.
func (l *listRecentRecordsUsecaseImpl) Execute(ctx context.Context, limit int) ([]*entity.Record, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return l.recordRepository.Recent(ctx, min(limit, MaxRecentLimit))
}

func NewListRecentRecordsUsecase(i *do.Injector) (ListRecentRecordsUsecase, error) {
	return &listRecentRecordsUsecaseImpl{
		recordRepository: do.MustInvoke[repository.RecordRepository](i),
	}, nil
}
