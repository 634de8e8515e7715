package outbox

import (
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatehouse-io/gatehouse/pkg/model"
)

type fakeOutboxStore struct {
	pending    []model.OutboxEntry
	dispatched []string
	failed     []string
}

func (f *fakeOutboxStore) FetchPending(limit int) ([]model.OutboxEntry, error) {
	if limit < len(f.pending) {
		return f.pending[:limit], nil
	}
	return f.pending, nil
}

func (f *fakeOutboxStore) MarkDispatched(id string) error {
	f.dispatched = append(f.dispatched, id)
	return nil
}

func (f *fakeOutboxStore) MarkFailed(id string, lastError string, maxAttempts int) error {
	f.failed = append(f.failed, id)
	return nil
}

type fakeSink struct {
	delivered []string
	failWith  error
}

func (f *fakeSink) Deliver(entry model.OutboxEntry) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.delivered = append(f.delivered, entry.ID)
	return nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestRunDispatchesPendingEntries(t *testing.T) {
	fake := &fakeOutboxStore{pending: []model.OutboxEntry{
		{ID: "e-1", UserID: "u-1", Kind: model.OutboxKindSignup},
		{ID: "e-2", UserID: "u-2", Kind: model.OutboxKindSignup},
	}}
	sink := &fakeSink{}

	d := NewDispatcher(fake, sink, quietLogger(), Config{})
	d.Run()

	assert.Equal(t, []string{"e-1", "e-2"}, sink.delivered)
	assert.Equal(t, []string{"e-1", "e-2"}, fake.dispatched)
	assert.Empty(t, fake.failed)
}

func TestRunMarksFailuresAndContinues(t *testing.T) {
	fake := &fakeOutboxStore{pending: []model.OutboxEntry{
		{ID: "e-1", UserID: "u-1"},
		{ID: "e-2", UserID: "u-2"},
	}}
	sink := &fakeSink{failWith: errors.New("downstream unavailable")}

	d := NewDispatcher(fake, sink, quietLogger(), Config{MaxAttempts: 3})
	d.Run()

	assert.Empty(t, fake.dispatched)
	assert.Equal(t, []string{"e-1", "e-2"}, fake.failed)
}

func TestRunHonoursBatchSize(t *testing.T) {
	fake := &fakeOutboxStore{pending: []model.OutboxEntry{
		{ID: "e-1"}, {ID: "e-2"}, {ID: "e-3"},
	}}
	sink := &fakeSink{}

	d := NewDispatcher(fake, sink, quietLogger(), Config{BatchSize: 2})
	d.Run()

	require.Len(t, sink.delivered, 2)
}

func TestStartRejectsBadSchedule(t *testing.T) {
	d := NewDispatcher(&fakeOutboxStore{}, &fakeSink{}, quietLogger(), Config{Schedule: "not a schedule"})
	assert.Error(t, d.Start())
}
