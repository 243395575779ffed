// internal/enrichment/dispatcher.go
package enrichment

import (
	"context"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	commonerrors "chinook-assistant/internal/common/errors"
	"chinook-assistant/internal/common/logger"
)

// MessageName is the workflow message that starts an artist lookup.
const MessageName = "artist.lookup"

// ZeebeDispatcher publishes lookup requests as workflow messages. The process
// model correlates on the lowercased artist name, so duplicate triggers for
// the same artist collapse onto one running lookup.
type ZeebeDispatcher struct {
	client zbc.Client
	logger logger.Logger
}

func NewZeebeDispatcher(client zbc.Client, log logger.Logger) *ZeebeDispatcher {
	return &ZeebeDispatcher{
		client: client,
		logger: log.With(map[string]interface{}{
			"component": "zeebe-dispatcher",
		}),
	}
}

func (d *ZeebeDispatcher) DispatchLookup(ctx context.Context, artistName string) error {
	correlationKey := strings.ToLower(strings.TrimSpace(artistName))

	cmd, err := d.client.NewPublishMessageCommand().
		MessageName(MessageName).
		CorrelationKey(correlationKey).
		VariablesFromMap(map[string]interface{}{
			"artist_name": artistName,
		})
	if err != nil {
		return commonerrors.NewLookupDispatchFailedError(err)
	}

	if _, err := cmd.Send(ctx); err != nil {
		return commonerrors.NewLookupDispatchFailedError(err)
	}

	d.logger.Debug("lookup message published", map[string]interface{}{
		"artistName":     artistName,
		"correlationKey": correlationKey,
	})
	return nil
}
