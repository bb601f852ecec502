package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ariefcatur/go-catalog-client/internal/catalog"
	kafkax "github.com/ariefcatur/go-catalog-client/internal/kafka"
	"github.com/ariefcatur/go-catalog-client/internal/redisx"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	kafkago "github.com/segmentio/kafka-go"
)

type Store interface {
	Insert(ctx context.Context, rec Record) (bool, error)
}

type Service struct {
	Store       Store
	Redis       *redis.Client // optional fast-path dedup
	ServiceName string
	Log         zerolog.Logger
}

// HandleSubmissionEvent: dipasang sebagai handler consumer.
func (s *Service) HandleSubmissionEvent(ctx context.Context, m kafkago.Message) error {
	// 1) decode envelope
	var env catalog.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		// pesan rusak tidak akan pernah berhasil, jangan di-retry
		s.Log.Warn().Err(err).Int64("offset", m.Offset).Msg("drop undecodable event")
		return nil
	}
	if env.EventType != catalog.EventSubmissionSucceeded && env.EventType != catalog.EventSubmissionFailed {
		return nil
	} // ignore

	// 2) dedup via Redis (pakai event_id); DB tetap jadi kebenaran
	dkey := fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID)
	if s.Redis != nil {
		if seen, _ := redisx.Exists(ctx, s.Redis, dkey); seen {
			return nil
		}
	}

	// 3) decode payload
	p, err := kafkax.UnwrapPayload[catalog.SubmissionPayload](env.Payload)
	if err != nil {
		s.Log.Warn().Err(err).Str("event_id", env.EventID).Msg("drop event with bad payload")
		return nil
	}

	inserted, err := s.Store.Insert(ctx, Record{
		EventID:       env.EventID,
		EventType:     env.EventType,
		Producer:      env.Producer,
		Flow:          p.Flow,
		CorrelationID: p.CorrelationID,
		Status:        p.Status,
		Message:       p.Message,
		ErrorKind:     p.ErrorKind,
		ErrorDetail:   p.ErrorDetail,
		HTTPStatus:    p.HTTPStatus,
		DurationMS:    p.DurationMS,
		OccurredAt:    env.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("insert audit %s: %w", env.EventID, err)
	}

	if s.Redis != nil {
		_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()
	}

	s.Log.Info().
		Str("event_id", env.EventID).
		Str("flow", p.Flow).
		Str("status", p.Status).
		Str("error_kind", p.ErrorKind).
		Bool("inserted", inserted).
		Msg("submission recorded")
	return nil
}
