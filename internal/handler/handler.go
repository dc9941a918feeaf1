// Package handler contains the sample API served behind the request logger.
package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Handler {
	return &Handler{log: log}
}

type createUserRequest struct {
	Name string `json:"name"`
}

type userResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name,omitempty"`
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.log, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(h.log, w, http.StatusOK, map[string]string{
		"query":   q.Get("query"),
		"options": q.Get("options"),
	})
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(h.log, w, http.StatusBadRequest, "invalid id")
		return
	}

	writeJSON(h.log, w, http.StatusOK, userResponse{ID: id})
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(h.log, w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(h.log, w, http.StatusBadRequest, "name is required")
		return
	}

	writeJSON(h.log, w, http.StatusCreated, userResponse{ID: uuid.New(), Name: req.Name})
}
