package usecase

import (
	"context"
	"time"

	"github.com/samber/do"
	"github.com/yz4230/repowatch/internal/entity"
	"github.com/yz4230/repowatch/internal/repository"
)

type ListRecordsSinceUsecase interface {
	Execute(ctx context.Context, since time.Time) ([]*entity.Record, error)
}

type listRecordsSinceUsecaseImpl struct {
	recordRepository repository.RecordRepository
}

// Execute implements ListRecordsSinceUsecase.
func (l *listRecordsSinceUsecaseImpl) Execute(ctx context.Context, since time.Time) ([]*entity.Record, error) {
	return l.recordRepository.Since(ctx, since)
}

func NewListRecordsSinceUsecase(i *do.Injector) (ListRecordsSinceUsecase, error) {
	return &listRecordsSinceUsecaseImpl{
		recordRepository: do.MustInvoke[repository.RecordRepository](i),
	}, nil
}
