package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/do"
	"github.com/yz4230/repowatch/internal/config"
	"github.com/yz4230/repowatch/internal/entity"
	"github.com/yz4230/repowatch/internal/metrics"
	"github.com/yz4230/repowatch/internal/repository"
	"github.com/yz4230/repowatch/internal/webhook"
)

// Delivery is one inbound webhook request.
type Delivery struct {
	Event       string
	Signature   string
	DeliveryID  string
	ContentType string
	Body        []byte
}

// IngestResult describes an accepted delivery. Record is nil when the event
// type is not recorded.
type IngestResult struct {
	EventType string
	Supported bool
	Record    *entity.Record
}

type IngestWebhookUsecase interface {
	Execute(ctx context.Context, delivery *Delivery) (*IngestResult, error)
}

type ingestWebhookUsecaseImpl struct {
	secret           string
	now              Clock
	recordRepository repository.RecordRepository
}

// Execute verifies, decodes, extracts, validates and stores a delivery,
// stopping at the first failing step.
func (u *ingestWebhookUsecaseImpl) Execute(ctx context.Context, delivery *Delivery) (*IngestResult, error) {
	start := time.Now()
	outcome := metrics.OutcomeMalformed
	defer func() {
		metrics.WebhookDeliveries.WithLabelValues(metrics.EventLabel(delivery.Event), outcome).Inc()
		metrics.WebhookProcessingDuration.Observe(time.Since(start).Seconds())
	}()

	log := zerolog.Ctx(ctx).With().
		Str("event_type", delivery.Event).
		Str("delivery_id", delivery.DeliveryID).
		Logger()

	if !webhook.Verify(delivery.Body, delivery.Signature, u.secret) {
		outcome = metrics.OutcomeInvalidSignature
		log.Warn().Bool("signature_present", delivery.Signature != "").Msg("rejected delivery with invalid signature")
		return nil, entity.ErrSignatureInvalid
	}

	if delivery.Event == "" {
		log.Warn().Msg("rejected delivery without event type")
		return nil, webhook.ErrMissingEvent
	}
	payload, err := webhook.PayloadFromBody(delivery.ContentType, delivery.Body)
	if err != nil {
		log.Warn().Err(err).Msg("rejected delivery with unreadable payload")
		return nil, err
	}

	extract, ok := webhook.ExtractorFor(webhook.Event(delivery.Event))
	if !ok {
		outcome = metrics.OutcomeUnsupported
		log.Info().Msg("ignored unsupported event type")
		return &IngestResult{EventType: delivery.Event}, nil
	}

	record, err := extract(payload, u.now())
	if err != nil {
		outcome = metrics.OutcomeExtractionFailed
		log.Warn().Err(err).Msg("payload extraction failed")
		return nil, err
	}

	if err := webhook.ValidateRecord(record); err != nil {
		outcome = metrics.OutcomeInvalid
		log.Warn().Err(err).Msg("extracted record is invalid")
		return nil, err
	}

	stored, err := u.recordRepository.Insert(ctx, record)
	if err != nil {
		outcome = metrics.OutcomeStoreFailed
		log.Error().Err(err).Msg("failed to store record")
		return nil, fmt.Errorf("%w: %v", entity.ErrStoreFailure, err)
	}

	outcome = metrics.OutcomeStored
	metrics.RecordsStored.Inc()
	log.Info().
		Str("id", stored.ID.String()).
		Str("author", stored.Author).
		Str("pushed_to", stored.PushedTo).
		Msg("stored record")
	return &IngestResult{EventType: delivery.Event, Supported: true, Record: stored}, nil
}

func NewIngestWebhookUsecase(i *do.Injector) (IngestWebhookUsecase, error) {
	cfg := do.MustInvoke[config.Config](i)
	return &ingestWebhookUsecaseImpl{
		secret:           cfg.Webhook.Secret,
		now:              invokeClock(i),
		recordRepository: do.MustInvoke[repository.RecordRepository](i),
	}, nil
}
