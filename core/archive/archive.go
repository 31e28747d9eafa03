package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"mastodon-sync/core/ingest"
	"mastodon-sync/core/storage"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// ErrEmptyPayload is returned when an envelope without payload is archived.
var ErrEmptyPayload = errors.New("archive: empty payload")

const keyTimeLayout = "20060102T150405.000Z"

// Archive stores ingest envelopes in a bucket.
type Archive struct {
	client storage.Client
	bucket string
	prefix string
}

// New creates an archive writing under cfg.Prefix in bucket.
func New(client storage.Client, bucket string, cfg Config) *Archive {
	prefix := strings.Trim(cfg.Prefix, "/")
	if prefix == "" {
		prefix = "responses"
	}
	return &Archive{client: client, bucket: bucket, prefix: prefix}
}

// Bucket returns the bucket the archive writes to.
func (a *Archive) Bucket() string {
	return a.bucket
}

// Prefix returns the key prefix of every archived object.
func (a *Archive) Prefix() string {
	return a.prefix
}

// Key builds the object key for env.
func (a *Archive) Key(env ingest.Envelope) string {
	name := fmt.Sprintf("%s-%s.json", env.ObservedAt.UTC().Format(keyTimeLayout), uuid.NewString())
	return path.Join(a.prefix, env.Domain, name)
}

// Put writes env and returns its object key.
func (a *Archive) Put(ctx context.Context, env ingest.Envelope) (string, error) {
	if len(env.Payload) == 0 {
		return "", ErrEmptyPayload
	}

	data, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("failed to encode envelope: %w", err)
	}

	key := a.Key(env)
	_, err = a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return key, nil
}

// Keys lists the archived envelopes of domain in observation order.
func (a *Archive) Keys(ctx context.Context, domain string) ([]string, error) {
	prefix := a.prefix + "/"
	if domain != "" {
		prefix = path.Join(a.prefix, domain) + "/"
	}

	var keys []string
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", prefix, obj.Err)
		}
		if strings.HasSuffix(obj.Key, ".json") {
			keys = append(keys, obj.Key)
		}
	}

	// Keys under different domains share no order; sort on the file name only.
	sort.SliceStable(keys, func(i, j int) bool {
		return path.Base(keys[i]) < path.Base(keys[j])
	})
	return keys, nil
}

// Get reads the envelope stored at key.
func (a *Archive) Get(ctx context.Context, key string) (ingest.Envelope, error) {
	var env ingest.Envelope

	obj, err := a.client.GetObject(ctx, a.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return env, fmt.Errorf("failed to download %s: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return env, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return env, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return env, nil
}

// ObservedAt recovers the observation time encoded in key.
func ObservedAt(key string) (time.Time, error) {
	base := path.Base(key)
	if len(base) < len(keyTimeLayout) {
		return time.Time{}, fmt.Errorf("archive: malformed key %q", key)
	}
	return time.Parse(keyTimeLayout, base[:len(keyTimeLayout)])
}

// Prune removes the envelopes of domain observed before cutoff and returns how
// many were removed. Keys that do not carry a timestamp are left alone.
func (a *Archive) Prune(ctx context.Context, domain string, cutoff time.Time) (int, error) {
	keys, err := a.Keys(ctx, domain)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, key := range keys {
		at, err := ObservedAt(key)
		if err != nil || !at.Before(cutoff) {
			continue
		}
		if err := a.client.RemoveObject(ctx, a.bucket, key, minio.RemoveObjectOptions{}); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", key, err)
		}
		removed++
	}
	return removed, nil
}
