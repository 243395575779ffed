// internal/enrichment/service_test.go
package enrichment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"chinook-assistant/internal/common/logger"
)

type fakeDispatcher struct {
	mu         sync.Mutex
	dispatched []string
	err        error
}

func (f *fakeDispatcher) DispatchLookup(ctx context.Context, artistName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.dispatched = append(f.dispatched, artistName)
	return nil
}

func (f *fakeDispatcher) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.dispatched...)
}

func setupService(t *testing.T, dispatcher Dispatcher) (*Service, *Store) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := NewStore(client, time.Hour)
	return NewService(store, dispatcher, 5*time.Second, logger.NewNoOpLogger()), store
}

func TestService_TriggerRecordsPendingAndDispatches(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	service, _ := setupService(t, dispatcher)

	ack := service.Trigger(context.Background(), "Queen")

	assert.Equal(t, "I'm looking up information about Queen. Please check back in a moment or ask me again soon for the results.", ack)

	entry, err := service.Poll(context.Background(), "queen")
	assert.NoError(t, err)
	assert.Equal(t, StatusPending, entry.Status)

	assert.Eventually(t, func() bool {
		return len(dispatcher.calls()) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestService_TriggerDispatchFailureWritesErrorEntry(t *testing.T) {
	dispatcher := &fakeDispatcher{err: errors.New("broker unavailable")}
	service, store := setupService(t, dispatcher)

	ack := service.Trigger(context.Background(), "Queen")

	// The acknowledgement is optimistic; the failure surfaces on poll.
	assert.Contains(t, ack, "I'm looking up information about Queen")

	assert.Eventually(t, func() bool {
		entry, err := store.Get(context.Background(), "queen")
		return err == nil && entry != nil && entry.Status == StatusError
	}, time.Second, 10*time.Millisecond)

	entry, _ := store.Get(context.Background(), "queen")
	assert.Contains(t, entry.Message, "Error triggering search:")
}

func TestService_DeliverSuccessThenPoll(t *testing.T) {
	service, _ := setupService(t, &fakeDispatcher{})

	err := service.Deliver(context.Background(), &CallbackPayload{
		Status:      StatusSuccess,
		ArtistName:  "queen",
		Name:        "Queen",
		Albums:      []AlbumSummary{{Title: "Greatest Hits I", TrackCount: 17}},
		TotalTracks: 45,
		MainGenres:  []string{"Rock"},
	})
	assert.NoError(t, err)

	entry, err := service.Poll(context.Background(), "Queen")
	assert.NoError(t, err)
	assert.Equal(t, StatusSuccess, entry.Status)
	assert.Equal(t, "Queen", entry.Name)
	assert.Equal(t, 45, entry.TotalTracks)
	assert.Equal(t, []string{"Rock"}, entry.MainGenres)
	assert.NotEmpty(t, entry.Timestamp)

	// The timestamp assigned on first poll sticks.
	again, err := service.Poll(context.Background(), "queen")
	assert.NoError(t, err)
	assert.Equal(t, entry.Timestamp, again.Timestamp)
}

func TestService_DeliverOverwritesPending(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	service, _ := setupService(t, dispatcher)

	service.Trigger(context.Background(), "Queen")
	err := service.Deliver(context.Background(), &CallbackPayload{
		Status:     StatusNotFound,
		ArtistName: "Queen",
	})
	assert.NoError(t, err)

	entry, err := service.Poll(context.Background(), "queen")
	assert.NoError(t, err)
	assert.Equal(t, StatusNotFound, entry.Status)
}

func TestService_RetriggerResetsToPending(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	service, _ := setupService(t, dispatcher)

	assert.NoError(t, service.Deliver(context.Background(), &CallbackPayload{
		Status:     StatusSuccess,
		ArtistName: "queen",
		Name:       "Queen",
	}))

	service.Trigger(context.Background(), "Queen")

	entry, err := service.Poll(context.Background(), "queen")
	assert.NoError(t, err)
	assert.Equal(t, StatusPending, entry.Status)
}

func TestService_DeliverErrorDefaultMessage(t *testing.T) {
	service, _ := setupService(t, &fakeDispatcher{})

	assert.NoError(t, service.Deliver(context.Background(), &CallbackPayload{
		Status:     StatusError,
		ArtistName: "queen",
	}))

	entry, err := service.Poll(context.Background(), "queen")
	assert.NoError(t, err)
	assert.Equal(t, StatusError, entry.Status)
	assert.Equal(t, "An unknown error occurred", entry.Message)
}

func TestService_PollUnknownArtist(t *testing.T) {
	service, _ := setupService(t, &fakeDispatcher{})

	entry, err := service.Poll(context.Background(), "nobody")

	assert.NoError(t, err)
	assert.Equal(t, StatusNotFound, entry.Status)
	assert.Equal(t, "No results found for artist: 'nobody'. Try triggering a search first.", entry.Message)
}

func TestStore_KeysAreCaseInsensitive(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	store := NewStore(client, time.Hour)

	assert.NoError(t, store.Put(context.Background(), "  Iron Maiden ", &Entry{Status: StatusPending}))

	entry, err := store.Get(context.Background(), "iron maiden")
	assert.NoError(t, err)
	assert.NotNil(t, entry)
	assert.Equal(t, StatusPending, entry.Status)
}

func TestStore_EntriesExpire(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	store := NewStore(client, time.Minute)

	assert.NoError(t, store.Put(context.Background(), "queen", &Entry{Status: StatusPending}))

	mr.FastForward(2 * time.Minute)

	entry, err := store.Get(context.Background(), "queen")
	assert.NoError(t, err)
	assert.Nil(t, entry)
}
