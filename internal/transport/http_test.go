package transport_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rferreira/batepapo/internal/domain/message"
	"github.com/rferreira/batepapo/internal/domain/participant"
	"github.com/rferreira/batepapo/internal/sqlite"
	"github.com/rferreira/batepapo/internal/transport"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router       http.Handler
	presence     *participant.Service
	participants *sqlite.ParticipantRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	// Each pooled connection would otherwise get its own empty :memory: db.
	db.SetMaxOpenConns(1)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	participantRepo := sqlite.NewParticipantRepository(db)
	messageRepo := sqlite.NewMessageRepository(db)

	presenceSvc := participant.NewService(participantRepo, messageRepo, 10*time.Second, logger)
	messageSvc := message.NewService(messageRepo, presenceSvc, logger)

	handler := transport.NewHandler(presenceSvc, messageSvc, logger)
	return &testServer{
		router:       handler.Router(),
		presence:     presenceSvc,
		participants: participantRepo,
	}
}

func (ts *testServer) do(t *testing.T, method, path, user string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if user != "" {
		req.Header.Set("User", user)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

type messageResponse struct {
	ID   string `json:"id"`
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
	Kind string `json:"kind"`
	Time string `json:"time"`
}

func decodeMessages(t *testing.T, rec *httptest.ResponseRecorder) []messageResponse {
	t.Helper()
	var out []messageResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func register(t *testing.T, ts *testServer, name string) {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/participants", "", map[string]string{"name": name})
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestRegisterAndPostScenario(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/participants", "", map[string]string{"name": "Alice"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodPost, "/participants", "", map[string]string{"name": "Alice"})
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.do(t, http.MethodPost, "/messages", "Alice",
		map[string]string{"to": "Todos", "text": "hi", "kind": "message"})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Bob never registered, but public messages are visible to anyone.
	rec = ts.do(t, http.MethodGet, "/messages", "Bob", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	msgs := decodeMessages(t, rec)
	var texts []string
	for _, m := range msgs {
		texts = append(texts, m.Text)
	}
	require.Contains(t, texts, "hi")
	require.Contains(t, texts, "joined")

	// Mallory never registered and cannot post.
	rec = ts.do(t, http.MethodPost, "/messages", "Mallory",
		map[string]string{"to": "Todos", "text": "let me in", "kind": "message"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestPrivateMessageVisibility(t *testing.T) {
	ts := newTestServer(t)
	register(t, ts, "Alice")

	rec := ts.do(t, http.MethodPost, "/messages", "Alice",
		map[string]string{"to": "Bob", "text": "segredo", "kind": "private_message"})
	require.Equal(t, http.StatusCreated, rec.Code)

	contains := func(user string) bool {
		rec := ts.do(t, http.MethodGet, "/messages", user, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		for _, m := range decodeMessages(t, rec) {
			if m.Text == "segredo" {
				return true
			}
		}
		return false
	}

	require.True(t, contains("Alice"))
	require.True(t, contains("Bob"))
	require.False(t, contains("Carol"))
}

func TestListMessagesLimit(t *testing.T) {
	ts := newTestServer(t)
	register(t, ts, "Alice")

	for _, text := range []string{"one", "two", "three"} {
		rec := ts.do(t, http.MethodPost, "/messages", "Alice",
			map[string]string{"to": "Todos", "text": text, "kind": "message"})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := ts.do(t, http.MethodGet, "/messages?limit=2", "Alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	msgs := decodeMessages(t, rec)
	require.Len(t, msgs, 2)
	require.Equal(t, "two", msgs[0].Text)
	require.Equal(t, "three", msgs[1].Text)

	rec = ts.do(t, http.MethodGet, "/messages?limit=abc", "Alice", nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestUpdateAndDeleteGuards(t *testing.T) {
	ts := newTestServer(t)
	register(t, ts, "Alice")
	register(t, ts, "Bob")

	rec := ts.do(t, http.MethodPost, "/messages", "Alice",
		map[string]string{"to": "Todos", "text": "original", "kind": "message"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var posted messageResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&posted))

	rec = ts.do(t, http.MethodPut, "/messages/"+posted.ID, "Bob",
		map[string]string{"to": "Todos", "text": "hijacked", "kind": "message"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/messages/"+posted.ID, "Bob", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodPut, "/messages/"+posted.ID, "Alice",
		map[string]string{"to": "Bob", "text": "edited", "kind": "private_message"})
	require.Equal(t, http.StatusOK, rec.Code)
	var edited messageResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&edited))
	require.Equal(t, "edited", edited.Text)
	require.Equal(t, "Alice", edited.From)

	rec = ts.do(t, http.MethodPut, "/messages/missing", "Alice",
		map[string]string{"to": "Todos", "text": "x", "kind": "message"})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/messages/missing", "Alice", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/messages/"+posted.ID, "Alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/messages", "Alice", nil)
	for _, m := range decodeMessages(t, rec) {
		require.NotEqual(t, posted.ID, m.ID)
	}
}

func TestHeartbeat(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/status", "Ghost", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodPost, "/status", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	register(t, ts, "Alice")
	rec = ts.do(t, http.MethodPost, "/status", "Alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/participants", "", map[string]string{"name": ""})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Error  string   `json:"error"`
		Fields []string `json:"fields"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, []string{"name"}, body.Fields)
}

func TestPostMessageValidationListsAllFields(t *testing.T) {
	ts := newTestServer(t)
	register(t, ts, "Alice")

	rec := ts.do(t, http.MethodPost, "/messages", "Alice",
		map[string]string{"to": "", "text": "", "kind": "status"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Fields []string `json:"fields"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.ElementsMatch(t, []string{"to", "text", "kind"}, body.Fields)
}

func TestListParticipants(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/participants", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "[]\n", rec.Body.String())

	register(t, ts, "Alice")
	register(t, ts, "Bob")

	rec = ts.do(t, http.MethodGet, "/participants", "", nil)
	var list []participant.Participant
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	require.Len(t, list, 2)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}

// Sweep end to end: a participant whose heartbeat is too old is evicted
// exactly once, with a single "left" announcement; fresh ones stay.
func TestSweepEvictsStaleParticipant(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()
	register(t, ts, "Fresh")

	err := ts.participants.Create(ctx, &participant.Participant{
		Name:     "Sleepy",
		LastSeen: time.Now().Add(-time.Minute),
	})
	require.NoError(t, err)

	evicted, err := ts.presence.Sweep(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Sleepy"}, evicted)

	rec := ts.do(t, http.MethodGet, "/participants", "", nil)
	var list []participant.Participant
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	require.Len(t, list, 1)
	require.Equal(t, "Fresh", list[0].Name)

	rec = ts.do(t, http.MethodGet, "/messages", "Carol", nil)
	var left int
	for _, m := range decodeMessages(t, rec) {
		if m.Kind == "status" && m.From == "Sleepy" && m.Text == "left" {
			left++
		}
	}
	require.Equal(t, 1, left)

	// A second sweep finds nothing.
	evicted, err = ts.presence.Sweep(ctx)
	require.NoError(t, err)
	require.Empty(t, evicted)
}
