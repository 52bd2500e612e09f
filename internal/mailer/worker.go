package mailer

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ieeesb/event-portal/internal/app/models"
	"github.com/ieeesb/event-portal/internal/app/repositories"
)

// Worker polls the per-event mail outbox collections and delivers pending
// records. Each record is marked SENT or ERROR after the attempt; a record
// that fails stays in ERROR and is not retried.
type Worker struct {
	eventRepo *repositories.EventRepository
	mailRepo  *repositories.MailRepository
	sender    Sender
	interval  time.Duration
	logger    zerolog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWorker creates a new outbox worker
func NewWorker(
	eventRepo *repositories.EventRepository,
	mailRepo *repositories.MailRepository,
	sender Sender,
	interval time.Duration,
	logger zerolog.Logger,
) *Worker {
	return &Worker{
		eventRepo: eventRepo,
		mailRepo:  mailRepo,
		sender:    sender,
		interval:  interval,
		logger:    logger,
	}
}

// Start launches the polling loop in its own goroutine
func (w *Worker) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel

	w.wg.Add(1)
	go w.run(ctx)

	w.logger.Info().Dur("interval", w.interval).Msg("Mail outbox worker started")
}

// Stop cancels the loop and waits for the in-flight cycle to finish
func (w *Worker) Stop() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	w.wg.Wait()
	w.logger.Info().Msg("Mail outbox worker stopped")
}

func (w *Worker) run(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.deliverPending(ctx)
		}
	}
}

// deliverPending walks every event's outbox collection once
func (w *Worker) deliverPending(ctx context.Context) {
	events, err := w.eventRepo.ListEvents(ctx)
	if err != nil {
		w.logger.Error().Err(err).Msg("Outbox cycle: listing events failed")
		return
	}

	for _, event := range events {
		if ctx.Err() != nil {
			return
		}
		w.deliverCollection(ctx, models.MailCollection(event))
	}
}

func (w *Worker) deliverCollection(ctx context.Context, collection string) {
	records, err := w.mailRepo.ListPending(ctx, collection)
	if err != nil {
		w.logger.Error().Err(err).Str("collection", collection).Msg("Outbox cycle: listing pending mail failed")
		return
	}

	for _, record := range records {
		if ctx.Err() != nil {
			return
		}

		state := models.DeliverySent
		if err := w.sender.Send(record); err != nil {
			w.logger.Error().Err(err).
				Str("collection", collection).
				Str("mailId", record.ID).
				Msg("Mail delivery failed")
			state = models.DeliveryError
		}

		if err := w.mailRepo.MarkDelivery(ctx, collection, record.ID, state); err != nil {
			w.logger.Error().Err(err).
				Str("collection", collection).
				Str("mailId", record.ID).
				Msg("Could not record mail delivery state")
		}
	}
}
