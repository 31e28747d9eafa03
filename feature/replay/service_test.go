package replay

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mastodon-sync/core/archive"
	"mastodon-sync/core/ingest"
	"mastodon-sync/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func listing(keys ...string) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(keys))
	for _, k := range keys {
		ch <- minio.ObjectInfo{Key: k}
	}
	close(ch)
	return ch
}

func archived(kind ingest.Kind, payload string) string {
	data, _ := json.Marshal(ingest.Envelope{
		Kind:       kind,
		Domain:     "a.social",
		ObservedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Payload:    json.RawMessage(payload),
	})
	return string(data)
}

func setupService(t *testing.T, objects map[string]string) (*Service, *[]string) {
	t.Helper()
	client := new(mocks.Client)

	// Listed out of order; the archive sorts by file name.
	client.On("ListObjects", mock.Anything, "bucket", mock.Anything).
		Return(listing(
			"responses/a.social/20240501T120002.000Z-c.json",
			"responses/a.social/20240501T120000.000Z-a.json",
			"responses/a.social/20240501T120001.000Z-b.json",
			"responses/a.social/README",
		))
	client.On("GetObject", mock.Anything, "bucket", mock.Anything, mock.Anything).
		Return(func(key string) io.ReadCloser {
			return io.NopCloser(strings.NewReader(objects[key]))
		}, nil)

	var seen []string
	router := ingest.NewRouter()
	router.Register(ingest.KindTags, func(ctx context.Context, env ingest.Envelope) (ingest.Result, error) {
		seen = append(seen, string(env.Payload))
		if string(env.Payload) == `"boom"` {
			return ingest.Result{}, errors.New("boom")
		}
		return ingest.Result{Created: 1, Skipped: 2}, nil
	})

	a := archive.New(client, "bucket", archive.Config{Prefix: "responses"})
	return NewService(a, router, zap.NewNop()), &seen
}

func TestReplay(t *testing.T) {
	svc, seen := setupService(t, map[string]string{
		"responses/a.social/20240501T120000.000Z-a.json": archived(ingest.KindTags, `"first"`),
		"responses/a.social/20240501T120001.000Z-b.json": archived(ingest.KindTags, `"boom"`),
		"responses/a.social/20240501T120002.000Z-c.json": archived(ingest.KindTags, `"third"`),
	})

	report, err := svc.Replay(context.Background(), "a.social")
	require.NoError(t, err)

	assert.Equal(t, []string{`"first"`, `"boom"`, `"third"`}, *seen)
	assert.Equal(t, 2, report.Envelopes)
	assert.Equal(t, 2, report.Created)
	assert.Equal(t, 4, report.Skipped)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, "responses/a.social/20240501T120001.000Z-b.json", report.Failed[0].Key)
}

func TestReplay_UnknownKindAndCorruptObject(t *testing.T) {
	svc, seen := setupService(t, map[string]string{
		"responses/a.social/20240501T120000.000Z-a.json": archived(ingest.KindStatuses, `[]`),
		"responses/a.social/20240501T120001.000Z-b.json": `{not json`,
		"responses/a.social/20240501T120002.000Z-c.json": archived(ingest.KindTags, `"ok"`),
	})

	report, err := svc.Replay(context.Background(), "a.social")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Envelopes)
	assert.Len(t, report.Failed, 2)
	assert.Contains(t, report.Failed[0].Error, "unknown ingest kind")
	assert.Equal(t, []string{`"ok"`}, *seen)
}

func TestHandlers(t *testing.T) {
	svc, _ := setupService(t, map[string]string{})
	feature := &Feature{service: svc, handler: NewHandler(svc), enabled: true}
	assert.Equal(t, "replay", feature.Name())

	app := fiber.New()
	require.NoError(t, feature.Load(app))

	resp, err := app.Test(httptest.NewRequest("GET", "/replay/A.social", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Domain string   `json:"domain"`
		Keys   []string `json:"keys"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "a.social", body.Domain)
	assert.Len(t, body.Keys, 3)
}

func TestNewFeature_DisabledWithoutArchive(t *testing.T) {
	assert.False(t, NewFeature(nil, ingest.NewRouter(), zap.NewNop()).IsEnabled())
}
