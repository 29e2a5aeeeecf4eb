package explorer

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"github.com/isometry/eventbridge-explorer/internal/helpers"
	"github.com/isometry/eventbridge-explorer/internal/models"
	"github.com/pkg/errors"
)

// PublishTestMessage puts a single event onto a bus and returns the event as accepted.
// A rejected entry is reported as a *PublishError.
func (e *Explorer) PublishTestMessage(ctx context.Context, msg models.TestMessage) (*models.Event, error) {
	bus := NormalizeBusName(msg.EventBusName)
	if bus == "" {
		bus = e.publish.bus
	}
	source := msg.Source
	if source == "" {
		source = e.publish.source
	}
	detailType := msg.DetailType
	if detailType == "" {
		detailType = e.publish.detailType
	}
	detail := json.RawMessage("{}")
	if len(msg.Detail) > 0 && string(msg.Detail) != "null" {
		if !json.Valid(msg.Detail) {
			return nil, &InvalidInputError{Field: "detail", Reason: "not a JSON document"}
		}
		detail = msg.Detail
	}

	logger := e.logger.With("bus", bus, "source", source, "detail_type", detailType)
	logger.Info("publishing test message...")
	now := e.clock.Now().UTC()
	out, err := e.backend.Events().PutEvents(ctx, &eventbridge.PutEventsInput{
		Entries: []types.PutEventsRequestEntry{{
			EventBusName: aws.String(bus),
			Source:       aws.String(source),
			DetailType:   aws.String(detailType),
			Detail:       aws.String(string(detail)),
			Resources:    msg.Resources,
			Time:         aws.Time(now),
		}},
	})
	if err != nil {
		logger.Warn("failed to put events", slog.Any("error", err))
		return nil, errors.Wrap(err, "failed to put events")
	}
	if len(out.Entries) == 0 {
		return nil, &PublishError{Code: "NoEntries", Message: "PutEvents returned no entries"}
	}
	entry := out.Entries[0]
	if code := helpers.String(entry.ErrorCode); code != "" || helpers.String(entry.EventId) == "" {
		perr := &PublishError{Code: code, Message: helpers.String(entry.ErrorMessage)}
		logger.Warn("test message rejected", slog.Any("error", perr))
		return nil, perr
	}

	event := &models.Event{
		ID:           helpers.String(entry.EventId),
		Time:         now,
		Region:       e.backend.Region(),
		Source:       source,
		Version:      "0",
		Detail:       detail,
		DetailType:   detailType,
		Resources:    msg.Resources,
		EventBusName: bus,
	}
	if event.Resources == nil {
		event.Resources = []string{}
	}
	logger.Info("test message published", "event_id", event.ID)
	return event, nil
}
