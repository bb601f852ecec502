package form

import (
	"context"
	"time"

	"github.com/ariefcatur/go-catalog-client/internal/catalog"
	kafkax "github.com/ariefcatur/go-catalog-client/internal/kafka"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
)

// Recorder receives the diagnostic record of every finished submission.
type Recorder interface {
	Record(ctx context.Context, p catalog.SubmissionPayload)
}

type NopRecorder struct{}

func (NopRecorder) Record(context.Context, catalog.SubmissionPayload) {}

type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

// EventRecorder wraps submissions in the event envelope and hands them to a
// kafka producer.
type EventRecorder struct {
	Producer Publisher
	Service  string
}

func (r *EventRecorder) Record(_ context.Context, p catalog.SubmissionPayload) {
	eventType := catalog.EventSubmissionSucceeded
	if p.Status == string(catalog.StatusFailed) {
		eventType = catalog.EventSubmissionFailed
	}
	ev := catalog.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      r.Service,
		CorrelationID: p.CorrelationID,
		Payload:       kafkax.MustMarshal(p),
	}
	r.Producer.Publish(catalog.PartitionKey(p.CorrelationID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
