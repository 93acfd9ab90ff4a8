package stream

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/faqdesk/backend/internal/model/faq"
	widgetService "github.com/zhouzirui/faqdesk/backend/internal/service/widget"
)

func setup(t *testing.T) (*httptest.Server, *widgetService.Service) {
	t.Helper()
	svc := widgetService.NewService(faq.MustSeedCatalog(), widgetService.Options{ReplyDelay: 5 * time.Millisecond})
	r := chi.NewRouter()
	New(svc).RegisterRoutes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, svc
}

func readEvent(t *testing.T, reader *bufio.Reader) (string, string) {
	t.Helper()
	var event, data string
	for {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		switch {
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		case line == "" && event != "":
			return event, data
		}
	}
}

func TestStreamDeliversSnapshots(t *testing.T) {
	srv, svc := setup(t)
	ctx := context.Background()

	created, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	resp, err := http.Get(srv.URL + "/widgets/" + created.SessionID + "/stream")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	event, data := readEvent(t, reader)
	assert.Equal(t, "snapshot", event)

	var snap widgetService.Snapshot
	require.NoError(t, json.Unmarshal([]byte(data), &snap))
	assert.Equal(t, created.SessionID, snap.SessionID)

	_, err = svc.SelectTopic(ctx, created.SessionID, "Uni AI")
	require.NoError(t, err)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		_, data = readEvent(t, reader)
		require.NoError(t, json.Unmarshal([]byte(data), &snap))
		if len(snap.State.Transcript) == 2 {
			break
		}
	}
	require.Len(t, snap.State.Transcript, 2)

	require.NoError(t, svc.Teardown(ctx, created.SessionID))
	event, _ = readEvent(t, reader)
	assert.Equal(t, "end", event)
}

func TestStreamUnknownSession(t *testing.T) {
	srv, _ := setup(t)

	resp, err := http.Get(srv.URL + "/widgets/missing/stream")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
