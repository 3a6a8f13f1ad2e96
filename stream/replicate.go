// Package stream provides DynamoDB Streams handlers that replicate the resume
// table into another store.Store.
package stream

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/jacentio/vitae/resume"
	"github.com/jacentio/vitae/store"
	"github.com/jacentio/vitae/store/dynamo"
)

// ErrMissingImage is returned for INSERT and MODIFY records without a new
// image, i.e. a stream not configured with NEW_IMAGE or NEW_AND_OLD_IMAGES.
var ErrMissingImage = errors.New("vitae: stream record has no new image")

// ErrMissingKey is returned for REMOVE records without a string id key.
var ErrMissingKey = errors.New("vitae: stream record has no id key")

// Replicator applies DynamoDB stream records to a target store. Records are
// applied in order and replays are idempotent.
type Replicator struct {
	target store.Store
	logger *slog.Logger
}

// NewReplicator creates a new stream replicator.
func NewReplicator(target store.Store, logger *slog.Logger) *Replicator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Replicator{
		target: target,
		logger: logger,
	}
}

// HandleEvent applies every record of event to the target store.
// This function is designed to be used as an AWS Lambda handler: the first
// failure aborts the batch so that Lambda retries it from the start.
func (r *Replicator) HandleEvent(ctx context.Context, event events.DynamoDBEvent) error {
	applied := 0
	for _, record := range event.Records {
		ok, err := r.processRecord(ctx, record)
		if err != nil {
			r.logger.Error("failed to replicate record",
				"eventID", record.EventID,
				"eventName", record.EventName,
				"error", err,
			)
			return err // Will retry, eventually DLQ
		}
		if ok {
			applied++
		}
	}

	r.logger.Info("replicated stream batch",
		"records", len(event.Records),
		"applied", applied,
	)
	return nil
}

// HandleEventWithFailures applies records like HandleEvent but reports the
// first failed record as a partial batch failure, so Lambda retries only from
// that record. Use it with ReportBatchItemFailures enabled.
func (r *Replicator) HandleEventWithFailures(ctx context.Context, event events.DynamoDBEvent) (events.DynamoDBEventResponse, error) {
	var resp events.DynamoDBEventResponse
	applied := 0
	for _, record := range event.Records {
		ok, err := r.processRecord(ctx, record)
		if err != nil {
			r.logger.Error("failed to replicate record",
				"eventID", record.EventID,
				"sequenceNumber", record.Change.SequenceNumber,
				"error", err,
			)
			resp.BatchItemFailures = append(resp.BatchItemFailures, events.DynamoDBBatchItemFailure{
				ItemIdentifier: record.Change.SequenceNumber,
			})
			break
		}
		if ok {
			applied++
		}
	}

	r.logger.Info("replicated stream batch",
		"records", len(event.Records),
		"applied", applied,
		"failed", len(resp.BatchItemFailures),
	)
	return resp, nil
}

// processRecord applies a single record. It reports whether the record
// changed the target.
func (r *Replicator) processRecord(ctx context.Context, record events.DynamoDBEventRecord) (bool, error) {
	switch record.EventName {
	case "INSERT":
		res, err := decodeImage(record.Change.NewImage)
		if err != nil {
			return false, err
		}
		return true, r.upsert(ctx, res, r.target.Save, r.target.Update, store.ErrDuplicateID)

	case "MODIFY":
		res, err := decodeImage(record.Change.NewImage)
		if err != nil {
			return false, err
		}
		return true, r.upsert(ctx, res, r.target.Update, r.target.Save, store.ErrNotFound)

	case "REMOVE":
		id := getStringAttr(record.Change.Keys, "id")
		if id == "" {
			return false, ErrMissingKey
		}
		err := r.target.Delete(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			r.logger.Debug("remove of absent resume ignored", "id", id)
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("delete %s: %w", id, err)
		}
		return true, nil
	}

	r.logger.Warn("skipping stream record",
		"eventID", record.EventID,
		"eventName", record.EventName,
	)
	return false, nil
}

// upsert runs primary and falls back to secondary when primary fails with
// fallbackOn. Replays of INSERT become updates and a MODIFY of a resume the
// target never saw becomes a save.
func (r *Replicator) upsert(ctx context.Context, res *resume.Resume, primary, secondary func(context.Context, *resume.Resume) error, fallbackOn error) error {
	err := primary(ctx, res)
	if errors.Is(err, fallbackOn) {
		r.logger.Debug("replicating with fallback", "id", res.ID(), "cause", err)
		err = secondary(ctx, res)
	}
	if err != nil {
		return fmt.Errorf("replicate %s: %w", res.ID(), err)
	}
	return nil
}

func decodeImage(image map[string]events.DynamoDBAttributeValue) (*resume.Resume, error) {
	if len(image) == 0 {
		return nil, ErrMissingImage
	}
	return dynamo.DecodeItem(ConvertImage(image))
}

// getStringAttr extracts a string attribute from a DynamoDB stream image.
func getStringAttr(image map[string]events.DynamoDBAttributeValue, key string) string {
	if v, ok := image[key]; ok && v.DataType() == events.DataTypeString {
		return v.String()
	}
	return ""
}
