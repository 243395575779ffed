// internal/workers/enrichment/artist-lookup/handler.go
package artistlookup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"chinook-assistant/internal/catalog"
	commonerrors "chinook-assistant/internal/common/errors"
	"chinook-assistant/internal/common/metrics"
	"chinook-assistant/internal/enrichment"
)

const (
	TaskType = "artist-lookup"
)

var (
	ErrArtistLookupFailed = errors.New("ARTIST_LOOKUP_FAILED")
)

// Logger interface definition
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

// Handler resolves an artist against the catalog and posts the result back to
// the assistant's webhook. Lookup misses and database errors are results, not
// job failures: the payload carries the status and the job completes.
type Handler struct {
	config     *Config
	store      *catalog.Store
	httpClient *http.Client
	logger     Logger
}

func NewHandler(config *Config, store *catalog.Store, log Logger) *Handler {
	return &Handler{
		config: config,
		store:  store,
		httpClient: &http.Client{
			Timeout: config.CallbackTimeout,
		},
		logger: log.With(map[string]interface{}{
			"taskType": TaskType,
		}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output := h.execute(ctx, &input)
	h.postCallback(ctx, output)
	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) *Output {
	artistName := strings.TrimSpace(input.ArtistName)
	if artistName == "" {
		return &Output{
			Status:     enrichment.StatusError,
			ArtistName: artistName,
			Message:    "Artist name is required",
		}
	}

	matches, err := h.store.FindArtists(ctx, artistName)
	if err != nil {
		return h.databaseError(artistName, err)
	}
	if len(matches) == 0 {
		h.logger.Warn("no artist found", map[string]interface{}{
			"artistName": artistName,
		})
		return &Output{
			Status:     enrichment.StatusNotFound,
			ArtistName: artistName,
			Message:    fmt.Sprintf("No artist found matching '%s'", artistName),
		}
	}

	// Exact name match wins over the first substring match.
	chosen := matches[0]
	for _, m := range matches {
		if strings.EqualFold(m.Name, artistName) {
			chosen = m
			break
		}
	}

	albums, err := h.store.ArtistAlbums(ctx, chosen.ID)
	if err != nil {
		return h.databaseError(artistName, err)
	}
	totalTracks, err := h.store.ArtistTotalTracks(ctx, chosen.ID)
	if err != nil {
		return h.databaseError(artistName, err)
	}
	genres, err := h.store.ArtistGenres(ctx, chosen.ID)
	if err != nil {
		return h.databaseError(artistName, err)
	}

	albumSummaries := make([]enrichment.AlbumSummary, len(albums))
	for i, album := range albums {
		albumSummaries[i] = enrichment.AlbumSummary{
			Title:      album.Title,
			TrackCount: album.TrackCount,
		}
	}

	var mainGenres []string
	for i, genre := range genres {
		if i == h.config.MaxGenres {
			break
		}
		mainGenres = append(mainGenres, genre.Name)
	}

	h.logger.Info("artist resolved", map[string]interface{}{
		"artistName":  artistName,
		"resolvedTo":  chosen.Name,
		"albumCount":  len(albumSummaries),
		"totalTracks": totalTracks,
	})

	return &Output{
		Status:      enrichment.StatusSuccess,
		ArtistName:  artistName,
		Name:        chosen.Name,
		ArtistID:    chosen.ID,
		Albums:      albumSummaries,
		TotalTracks: totalTracks,
		MainGenres:  mainGenres,
	}
}

func (h *Handler) databaseError(artistName string, err error) *Output {
	h.logger.Error("lookup query failed", map[string]interface{}{
		"artistName": artistName,
		"error":      err.Error(),
	})
	return &Output{
		Status:     enrichment.StatusError,
		ArtistName: artistName,
		Message:    fmt.Sprintf("Database error: %v", err),
	}
}

// postCallback delivers the result to the assistant. Delivery is best-effort:
// the result also rides on the completed job variables.
func (h *Handler) postCallback(ctx context.Context, output *Output) {
	body, err := json.Marshal(output)
	if err != nil {
		h.logger.Error("failed to marshal callback", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	req, err := http.NewRequestWithContext(ctx, "POST", h.config.CallbackURL, bytes.NewBuffer(body))
	if err != nil {
		h.logger.Error("failed to build callback request", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		metrics.CallbackDeliveryFailures.Inc()
		h.logger.Error("callback delivery failed", map[string]interface{}{
			"url":   h.config.CallbackURL,
			"error": commonerrors.NewCallbackDeliveryFailedError(err).Error(),
		})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		metrics.CallbackDeliveryFailures.Inc()
		deliveryErr := commonerrors.NewCallbackDeliveryFailedError(
			fmt.Errorf("callback endpoint returned status %d", resp.StatusCode))
		h.logger.Error("callback rejected", map[string]interface{}{
			"url":    h.config.CallbackURL,
			"status": resp.StatusCode,
			"error":  deliveryErr.Error(),
		})
		return
	}

	h.logger.Info("callback delivered", map[string]interface{}{
		"artistName": output.ArtistName,
		"status":     output.Status,
	})
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) *Output {
	return h.execute(ctx, input)
}
