// Package outbox dispatches transactional outbox entries to a downstream
// sink. Entries are written by the signup transaction; this package only
// drains them.
package outbox

import (
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/gatehouse-io/gatehouse/pkg/model"
	"github.com/gatehouse-io/gatehouse/pkg/server/store"
)

// Sink receives outbox entries. Delivery must be idempotent on the entry's
// user id; the dispatcher retries failures.
type Sink interface {
	Deliver(entry model.OutboxEntry) error
}

// Config holds the dispatcher knobs. Zero values fall back to defaults.
type Config struct {
	// Schedule is a cron expression; defaults to every 30 seconds.
	Schedule string
	// BatchSize caps entries fetched per run.
	BatchSize int
	// MaxAttempts is the retry budget before an entry is parked as failed.
	MaxAttempts int
}

// Dispatcher drains pending outbox entries on a cron schedule.
type Dispatcher struct {
	store       store.OutboxStore
	sink        Sink
	log         *logrus.Logger
	schedule    string
	batchSize   int
	maxAttempts int

	cron    *cron.Cron
	entryID cron.EntryID
}

// NewDispatcher creates a dispatcher over an outbox store and a sink.
func NewDispatcher(outboxStore store.OutboxStore, sink Sink, log *logrus.Logger, cfg Config) *Dispatcher {
	d := &Dispatcher{
		store:       outboxStore,
		sink:        sink,
		log:         log,
		schedule:    cfg.Schedule,
		batchSize:   cfg.BatchSize,
		maxAttempts: cfg.MaxAttempts,
		cron:        cron.New(),
	}
	if d.schedule == "" {
		d.schedule = "@every 30s"
	}
	if d.batchSize == 0 {
		d.batchSize = 100
	}
	if d.maxAttempts == 0 {
		d.maxAttempts = 10
	}
	return d
}

// Start schedules the dispatch loop.
func (d *Dispatcher) Start() error {
	entryID, err := d.cron.AddFunc(d.schedule, d.Run)
	if err != nil {
		return err
	}
	d.entryID = entryID
	d.cron.Start()
	d.log.WithField("schedule", d.schedule).Info("outbox dispatcher started")
	return nil
}

// Stop halts the schedule and waits for a running dispatch to finish.
func (d *Dispatcher) Stop() {
	ctx := d.cron.Stop()
	<-ctx.Done()
	d.log.Info("outbox dispatcher stopped")
}

// Run drains one batch of pending entries. Exported so a cron tick and a
// manual flush share the same path.
func (d *Dispatcher) Run() {
	entries, err := d.store.FetchPending(d.batchSize)
	if err != nil {
		d.log.WithError(err).Error("outbox fetch failed")
		return
	}

	for _, entry := range entries {
		if err := d.sink.Deliver(entry); err != nil {
			d.log.WithError(err).
				WithFields(logrus.Fields{"entry": entry.ID, "user": entry.UserID, "attempts": entry.Attempts + 1}).
				Warn("outbox delivery failed")
			if markErr := d.store.MarkFailed(entry.ID, err.Error(), d.maxAttempts); markErr != nil {
				d.log.WithError(markErr).WithField("entry", entry.ID).Error("outbox mark-failed failed")
			}
			continue
		}

		if err := d.store.MarkDispatched(entry.ID); err != nil {
			d.log.WithError(err).WithField("entry", entry.ID).Error("outbox mark-dispatched failed")
			continue
		}
		d.log.WithFields(logrus.Fields{"entry": entry.ID, "user": entry.UserID, "kind": entry.Kind}).
			Debug("outbox entry dispatched")
	}
}
