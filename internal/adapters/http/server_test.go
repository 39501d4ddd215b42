package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakenomibu/nomibot/internal/adapters/memory"
	"github.com/sakenomibu/nomibot/pkg/domain"
)

// stubParser returns a canned batch or error instead of verifying signatures.
type stubParser struct {
	events []domain.InboundEvent
	err    error
}

func (p *stubParser) ParseRequest(r *http.Request) ([]domain.InboundEvent, error) {
	return p.events, p.err
}

// recordingDispatcher captures dispatched batches.
type recordingDispatcher struct {
	batches [][]domain.InboundEvent
}

func (d *recordingDispatcher) Dispatch(ctx context.Context, events []domain.InboundEvent) {
	d.batches = append(d.batches, events)
}

func newTestHandler(parser EventParser, dispatcher BatchDispatcher) (http.Handler, *memory.Store) {
	store := memory.New("entry")
	return NewHandler(parser, dispatcher, store), store
}

func TestRoot(t *testing.T) {
	handler, _ := newTestHandler(&stubParser{}, &recordingDispatcher{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Hello, World!", rr.Body.String())
}

func TestHealthz(t *testing.T) {
	handler, _ := newTestHandler(&stubParser{}, &recordingDispatcher{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestWebhook_DispatchesBatch(t *testing.T) {
	events := []domain.InboundEvent{
		{Kind: domain.EventText, UserID: "U1", ReplyToken: "t1", Text: "1"},
		{Kind: domain.EventText, UserID: "U2", ReplyToken: "t2", Text: "2"},
	}
	dispatcher := &recordingDispatcher{}
	handler, _ := newTestHandler(&stubParser{events: events}, dispatcher)

	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewBufferString(`{"events":[]}`))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, dispatcher.batches, 1)
	assert.Equal(t, events, dispatcher.batches[0])
}

func TestWebhook_InvalidSignature(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	handler, _ := newTestHandler(&stubParser{err: domain.ErrInvalidSignature}, dispatcher)

	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewBufferString(`{}`))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, dispatcher.batches)
}

func TestChangeState_Success(t *testing.T) {
	handler, store := newTestHandler(&stubParser{}, &recordingDispatcher{})

	body := `{"userId":"U1","status":"completed","currentPhaseId":"end"}`
	req := httptest.NewRequest(http.MethodPost, "/changeState", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	session, err := store.Get(context.Background(), "U1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, session.Status)
	assert.Equal(t, "end", session.CurrentPhaseID)
}

func TestChangeState_MissingFields(t *testing.T) {
	handler, _ := newTestHandler(&stubParser{}, &recordingDispatcher{})

	cases := []string{
		`{}`,
		`{"userId":"U1"}`,
		`{"userId":"U1","status":"in_progress"}`,
		`{"status":"in_progress","currentPhaseId":"entry"}`,
		`not json`,
	}
	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/changeState", bytes.NewBufferString(body))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code, "body %s", body)
	}
}

func TestChangeState_RejectsUnknownStatus(t *testing.T) {
	handler, _ := newTestHandler(&stubParser{}, &recordingDispatcher{})

	body := `{"userId":"U1","status":"drunk","currentPhaseId":"entry"}`
	req := httptest.NewRequest(http.MethodPost, "/changeState", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestChangeState_StoreFailure(t *testing.T) {
	store := &failingMergeStore{Store: memory.New("entry")}
	handler := NewHandler(&stubParser{}, &recordingDispatcher{}, store)

	body := `{"userId":"U1","status":"in_progress","currentPhaseId":"entry"}`
	req := httptest.NewRequest(http.MethodPost, "/changeState", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

type failingMergeStore struct {
	*memory.Store
}

func (s *failingMergeStore) Merge(ctx context.Context, userID string, update domain.SessionUpdate) error {
	return errors.New("write failed")
}
