package duui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pipeline_monitor/config"
	"pipeline_monitor/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(&config.Config{DuuiAPIURL: srv.URL + "/", DuuiAPIKey: "secret", FetchTimeout: time.Second})
	require.NoError(t, err)
	return c
}

func TestClient_GetProcess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/processes/p1", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"oid":"p1","pipeline_id":"pl","status":"Active","started_at":5,"document_names":["in/a.txt"],"input":{"provider":"Minio","path":"bucket/in"}}`))
	})

	p, err := c.GetProcess(context.Background(), "p1")

	require.NoError(t, err)
	assert.Equal(t, "pl", p.PipelineID)
	assert.Equal(t, []string{"in/a.txt"}, []string(p.DocumentNames))
	assert.Equal(t, "Minio", p.Input.Provider)
	assert.Nil(t, p.FinishedAt)
}

func TestClient_GetProcessNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.GetProcess(context.Background(), "missing")

	assert.ErrorIs(t, err, models.ErrProcessNotFound)
}

func TestClient_GetEvents(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/processes/p1/timeline", r.URL.Path)
		_, _ = w.Write([]byte(`{"timeline":[{"timestamp":10,"event":{"sender":"DOCUMENT","message":"a.txt is being processed by component A"}}]}`))
	})

	events, err := c.GetEvents(context.Background(), "p1")

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, int64(10), events[0].Timestamp)
	assert.Equal(t, "DOCUMENT", events[0].Event.Sender)
	assert.Equal(t, "p1", events[0].ProcessID)
}

func TestClient_GetPipelineAndDocuments(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pipelines/pl":
			_, _ = w.Write([]byte(`{"oid":"pl","name":"demo","components":[{"name":"A"},{"name":"B"},{"name":"A"}]}`))
		case "/documents":
			assert.Equal(t, "p1", r.URL.Query().Get("process_id"))
			_, _ = w.Write([]byte(`{"documents":[{"name":"a.txt","path":"in/a.txt","duration_wait":7}],"count":1}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	pipeline, err := c.GetPipeline(context.Background(), "pl")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "A"}, pipeline.StageNames())

	docs, err := c.GetDocuments(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, int64(7), docs[0].DurationWait)

	_, err = c.GetPipeline(context.Background(), "nope")
	assert.ErrorIs(t, err, models.ErrPipelineNotFound)
}

func TestClient_ServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := c.GetEvents(context.Background(), "p1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestNewClient_RequiresURL(t *testing.T) {
	_, err := NewClient(&config.Config{})
	assert.Error(t, err)
}
