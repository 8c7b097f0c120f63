// Package transport binds the chat API to HTTP: routing, identity
// extraction, JSON envelopes and the domain-error to status-code mapping.
package transport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rferreira/batepapo/internal/domain/message"
	"github.com/rferreira/batepapo/internal/domain/participant"
	"github.com/rferreira/batepapo/internal/validation"
)

// Handler holds the services behind the HTTP API.
type Handler struct {
	participants *participant.Service
	messages     *message.Service
	logger       *slog.Logger
}

// NewHandler creates an HTTP handler over the chat services.
func NewHandler(participants *participant.Service, messages *message.Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{participants: participants, messages: messages, logger: logger}
}

// Router configures and returns the HTTP router.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(IdentityMiddleware)

	r.HandleFunc("/participants", h.registerParticipant).Methods("POST")
	r.HandleFunc("/participants", h.listParticipants).Methods("GET")
	r.HandleFunc("/messages", h.postMessage).Methods("POST")
	r.HandleFunc("/messages", h.listMessages).Methods("GET")
	r.HandleFunc("/messages/{id}", h.updateMessage).Methods("PUT")
	r.HandleFunc("/messages/{id}", h.deleteMessage).Methods("DELETE")
	r.HandleFunc("/status", h.heartbeat).Methods("POST")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods("GET")

	return r
}

type registerRequest struct {
	Name string `json:"name"`
}

// messageResponse renders a message with its display-formatted time.
type messageResponse struct {
	ID   string       `json:"id"`
	From string       `json:"from"`
	To   string       `json:"to"`
	Text string       `json:"text"`
	Kind message.Kind `json:"kind"`
	Time string       `json:"time"`
}

func toMessageResponse(m message.Message) messageResponse {
	return messageResponse{
		ID:   m.ID,
		From: m.From,
		To:   m.To,
		Text: m.Text,
		Kind: m.Kind,
		Time: m.CreatedAt.Format("15:04:05"),
	}
}

func (h *Handler) registerParticipant(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusUnprocessableEntity, "invalid request body", nil)
		return
	}

	if err := h.participants.Register(r.Context(), req.Name); err != nil {
		h.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) listParticipants(w http.ResponseWriter, r *http.Request) {
	list, err := h.participants.List(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if list == nil {
		list = []participant.Participant{}
	}
	h.writeJSON(w, http.StatusOK, list)
}

func (h *Handler) postMessage(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())

	var req message.PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusUnprocessableEntity, "invalid request body", nil)
		return
	}

	m, err := h.messages.Post(r.Context(), user, req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toMessageResponse(*m))
}

func (h *Handler) listMessages(w http.ResponseWriter, r *http.Request) {
	viewer, _ := UserFromContext(r.Context())

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.writeError(w, http.StatusUnprocessableEntity, "invalid limit", []string{"limit"})
			return
		}
		limit = parsed
	}

	list, err := h.messages.List(r.Context(), viewer, limit)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	out := make([]messageResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMessageResponse(m))
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handler) updateMessage(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())
	id := mux.Vars(r)["id"]

	var req message.PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusUnprocessableEntity, "invalid request body", nil)
		return
	}

	m, err := h.messages.Update(r.Context(), user, id, req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toMessageResponse(*m))
}

func (h *Handler) deleteMessage(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())
	id := mux.Vars(r)["id"]

	if err := h.messages.Delete(r.Context(), user, id); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) heartbeat(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusNotFound, "unknown participant", nil)
		return
	}

	if err := h.participants.Heartbeat(r.Context(), user); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

type errorBody struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		h.writeError(w, http.StatusUnprocessableEntity, "invalid payload", verr.Fields)
	case errors.Is(err, participant.ErrNameTaken):
		h.writeError(w, http.StatusConflict, "name already taken", nil)
	case errors.Is(err, participant.ErrUnknownParticipant):
		h.writeError(w, http.StatusNotFound, "unknown participant", nil)
	case errors.Is(err, message.ErrUnknownUser):
		h.writeError(w, http.StatusUnprocessableEntity, "unknown user", nil)
	case errors.Is(err, message.ErrMessageNotFound):
		h.writeError(w, http.StatusNotFound, "message not found", nil)
	case errors.Is(err, message.ErrNotAuthor):
		h.writeError(w, http.StatusUnauthorized, "not the message author", nil)
	default:
		h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal error", nil)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("writing response failed", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string, fields []string) {
	h.writeJSON(w, status, errorBody{Error: msg, Fields: fields})
}
