package display

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/yz4230/repowatch/internal/entity"
	"github.com/yz4230/repowatch/internal/usecase"
)

// InitialLimit is the number of records shown when the poller starts.
const InitialLimit = 10

// Poller prints records added since its watermark on a fixed interval. It is
// not safe for concurrent use; a single consumer is assumed.
type Poller struct {
	recent    usecase.ListRecentRecordsUsecase
	since     usecase.ListRecordsSinceUsecase
	interval  time.Duration
	out       io.Writer
	log       zerolog.Logger
	now       func() time.Time
	watermark time.Time
}

type Option func(*Poller)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Poller) { p.now = now }
}

func NewPoller(recent usecase.ListRecentRecordsUsecase, since usecase.ListRecordsSinceUsecase, interval time.Duration, out io.Writer, log zerolog.Logger, opts ...Option) *Poller {
	p := &Poller{
		recent:   recent,
		since:    since,
		interval: interval,
		out:      out,
		log:      log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.watermark = p.now().UTC().Add(-interval)
	return p
}

// Watermark is the lower bound, exclusive, of the next poll.
func (p *Poller) Watermark() time.Time { return p.watermark }

// ShowRecent prints the most recent records.
func (p *Poller) ShowRecent(ctx context.Context) error {
	records, err := p.recent.Execute(ctx, InitialLimit)
	if err != nil {
		return fmt.Errorf("list recent records: %w", err)
	}
	if len(records) == 0 {
		writeLine(p.out, "No data found in the database")
		return nil
	}
	writeLine(p.out, Format(records, p.now()))
	return nil
}

// Poll fetches records newer than the watermark and prints them, or a
// heartbeat when there are none. The watermark advances after every
// successful fetch to the later of the fetch start and the newest record.
func (p *Poller) Poll(ctx context.Context) ([]*entity.Record, error) {
	startedAt := p.now().UTC()
	records, err := p.since.Execute(ctx, p.watermark)
	if err != nil {
		return nil, fmt.Errorf("list records since %s: %w", p.watermark.Format(time.RFC3339), err)
	}

	next := startedAt
	for _, r := range records {
		if r.Timestamp.After(next) {
			next = r.Timestamp
		}
	}
	p.watermark = next

	if len(records) == 0 {
		writeLine(p.out, Heartbeat(startedAt))
		return records, nil
	}
	writeLine(p.out, fmt.Sprintf("\nNew data detected at %s", startedAt.Format(clockLayout)))
	writeLine(p.out, Format(records, startedAt))
	return records, nil
}

// Run polls until ctx is cancelled. Fetch errors are logged and the loop
// continues.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		if _, err := p.Poll(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			p.log.Error().Err(err).Msg("failed to fetch new records")
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
