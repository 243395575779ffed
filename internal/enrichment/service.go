// internal/enrichment/service.go
package enrichment

import (
	"context"
	"fmt"
	"time"

	"chinook-assistant/internal/common/logger"
	"chinook-assistant/internal/common/metrics"
)

// Dispatcher hands a lookup request to the workflow engine.
type Dispatcher interface {
	DispatchLookup(ctx context.Context, artistName string) error
}

// Service coordinates the lookup lifecycle. Triggering is fire-and-forget:
// the caller gets an acknowledgement immediately and the dispatch happens in
// the background, with failures recorded as error entries so a later poll
// explains what went wrong.
type Service struct {
	store           *Store
	dispatcher      Dispatcher
	dispatchTimeout time.Duration
	logger          logger.Logger
}

func NewService(store *Store, dispatcher Dispatcher, dispatchTimeout time.Duration, log logger.Logger) *Service {
	return &Service{
		store:           store,
		dispatcher:      dispatcher,
		dispatchTimeout: dispatchTimeout,
		logger: log.With(map[string]interface{}{
			"component": "enrichment-service",
		}),
	}
}

// Trigger records a pending lookup and dispatches it. The returned text is the
// conversational acknowledgement shown to the user.
func (s *Service) Trigger(ctx context.Context, artistName string) string {
	s.logger.Info("triggering artist lookup", map[string]interface{}{
		"artistName": artistName,
	})

	if err := s.store.Put(ctx, artistName, &Entry{Status: StatusPending}); err != nil {
		s.logger.WithError(err).Error("failed to record pending lookup", nil)
		return fmt.Sprintf("I'm having trouble looking up information about %s. Please try again later.", artistName)
	}

	metrics.EnrichmentTriggers.Inc()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.dispatchTimeout)
		defer cancel()

		if err := s.dispatcher.DispatchLookup(ctx, artistName); err != nil {
			s.logger.WithError(err).Error("lookup dispatch failed", map[string]interface{}{
				"artistName": artistName,
			})
			putErr := s.store.Put(ctx, artistName, &Entry{
				Status:  StatusError,
				Name:    artistName,
				Message: fmt.Sprintf("Error triggering search: %v", err),
			})
			if putErr != nil {
				s.logger.WithError(putErr).Error("failed to record dispatch failure", nil)
			}
		}
	}()

	return fmt.Sprintf("I'm looking up information about %s. Please check back in a moment or ask me again soon for the results.", artistName)
}

// Deliver stores a worker callback result, replacing whatever state the
// artist's entry was in.
func (s *Service) Deliver(ctx context.Context, payload *CallbackPayload) error {
	var entry *Entry

	switch payload.Status {
	case StatusNotFound:
		entry = &Entry{
			Status: StatusNotFound,
			Name:   payload.ArtistName,
		}
	case StatusError:
		message := payload.Message
		if message == "" {
			message = "An unknown error occurred"
		}
		entry = &Entry{
			Status:  StatusError,
			Name:    payload.ArtistName,
			Message: message,
		}
	default:
		name := payload.Name
		if name == "" {
			name = payload.ArtistName
		}
		entry = &Entry{
			Status:      StatusSuccess,
			Name:        name,
			Albums:      payload.Albums,
			TotalTracks: payload.TotalTracks,
			MainGenres:  payload.MainGenres,
		}
	}

	if err := s.store.Put(ctx, payload.ArtistName, entry); err != nil {
		metrics.EnrichmentCallbacks.WithLabelValues("store_failed").Inc()
		return err
	}

	metrics.EnrichmentCallbacks.WithLabelValues(entry.Status).Inc()
	s.logger.Info("stored lookup result", map[string]interface{}{
		"artistName": payload.ArtistName,
		"status":     entry.Status,
	})
	return nil
}

// Poll returns the current entry for an artist. A missing entry comes back as
// a not_found placeholder rather than an error, because asking before
// triggering is a normal user mistake.
func (s *Service) Poll(ctx context.Context, artistName string) (*Entry, error) {
	entry, err := s.store.Get(ctx, artistName)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return &Entry{
			Status:  StatusNotFound,
			Message: fmt.Sprintf("No results found for artist: '%s'. Try triggering a search first.", artistName),
		}, nil
	}

	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().Format(time.RFC3339)
		if err := s.store.Put(ctx, artistName, entry); err != nil {
			s.logger.WithError(err).Warn("failed to persist poll timestamp", nil)
		}
	}
	return entry, nil
}
