package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mastodon-sync/core/reconcile"
)

var (
	// ErrInvalidEnvelope is returned when an envelope lacks required fields.
	ErrInvalidEnvelope = errors.New("invalid envelope")
	// ErrInvalidPayload is returned when a payload does not decode.
	ErrInvalidPayload = errors.New("invalid payload")
)

// Kind names the API response an envelope carries.
type Kind string

const (
	KindStatuses      Kind = "statuses"
	KindStatus        Kind = "status"
	KindAccounts      Kind = "accounts"
	KindRelationships Kind = "relationships"
	KindTags          Kind = "tags"
	KindSetting       Kind = "setting"
	KindSubscription  Kind = "subscription"
)

// Envelope is one API response waiting to be reconciled.
type Envelope struct {
	Kind       Kind            `json:"kind"`
	Domain     string          `json:"domain"`
	ViewerID   string          `json:"viewer_id,omitempty"`
	Policy     string          `json:"policy,omitempty"`
	ObservedAt time.Time       `json:"observed_at"`
	Payload    json.RawMessage `json:"payload"`
}

// Validate checks the fields every handler relies on.
func (e Envelope) Validate() error {
	var errs []error
	if e.Kind == "" {
		errs = append(errs, errors.New("kind is required"))
	}
	if e.Domain == "" {
		errs = append(errs, errors.New("domain is required"))
	}
	if e.ObservedAt.IsZero() {
		errs = append(errs, errors.New("observed_at is required"))
	}
	if len(e.Payload) == 0 {
		errs = append(errs, errors.New("payload is required"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidEnvelope, errors.Join(errs...))
	}
	return nil
}

// Decode unmarshals the payload into v.
func (e Envelope) Decode(v any) error {
	if err := json.Unmarshal(e.Payload, v); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidPayload, e.Kind, err)
	}
	return nil
}

// DecodeList decodes a payload holding either a JSON array of T or a single T.
func DecodeList[T any](e Envelope) ([]T, error) {
	trimmed := bytes.TrimSpace(e.Payload)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []T
		if err := e.Decode(&list); err != nil {
			return nil, err
		}
		return list, nil
	}

	var one T
	if err := e.Decode(&one); err != nil {
		return nil, err
	}
	return []T{one}, nil
}

// BatchOptions returns the reconcile batch context of the envelope.
func (e Envelope) BatchOptions() reconcile.BatchOptions {
	return reconcile.BatchOptions{
		Domain:     e.Domain,
		ObservedAt: e.ObservedAt,
		ViewerID:   e.ViewerID,
	}
}

// ResultFromStats converts batch counters into a Result.
func ResultFromStats(stats reconcile.Stats) Result {
	return Result{Created: stats.Inserts, Updated: stats.Merges, Skipped: stats.Stale}
}

// Result summarizes one reconciled envelope.
type Result struct {
	Kind    Kind   `json:"kind"`
	Domain  string `json:"domain"`
	Created int    `json:"created"`
	Updated int    `json:"updated"`
	Skipped int    `json:"skipped"`
	// Archive is the object key of the archived payload, if any.
	Archive string `json:"archive,omitempty"`
}
