package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"

	"github.com/go-chi/chi"
	log "github.com/sirupsen/logrus"

	"github.com/voidbinder/binder-services/internal/collectionsvc/ingest"
	"github.com/voidbinder/binder-services/internal/collectionsvc/models"
	"github.com/voidbinder/binder-services/internal/collectionsvc/service"
	"github.com/voidbinder/binder-services/internal/collectionsvc/store"
)

type Handler struct {
	cardService *service.CardService
}

func NewHandler(cardService *service.CardService) *Handler {
	return &Handler{cardService: cardService}
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error,omitempty"`
}

type ListResponse struct {
	Cards  []models.Card `json:"cards"`
	Source string        `json:"source"`
}

type CardResponse struct {
	Success bool         `json:"success"`
	Card    *models.Card `json:"card,omitempty"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	json.NewEncoder(w).Encode(body)
}

func (h *Handler) writeError(w http.ResponseWriter, code int, message string) {
	h.writeJSON(w, code, map[string]string{"error": message})
}

// faultReport is the single generic row-0 report used when the upload
// could not be processed at all.
func faultReport(message string) *ingest.Report {
	return &ingest.Report{
		Errors:      []ingest.RowError{{Row: 0, Message: message}},
		TotalErrors: 1,
	}
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	rsp := Response{
		Message: "collection service is running at port " + os.Getenv("COLLECTION_SERVICE_PORT"),
		Code:    200,
	}
	h.writeJSON(w, http.StatusOK, rsp)
}

// UploadHandler ingests one CSV file posted as multipart field "file"
// and returns the pipeline report. Validation failures are part of a
// normal 200 report; only a missing file, structural CSV breakage or an
// internal fault produce non-200 codes.
func (h *Handler) UploadHandler(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Errorf("Upload error: %v", rec)
			h.writeJSON(w, http.StatusInternalServerError, faultReport("Internal server error"))
		}
	}()

	file, _, err := r.FormFile("file")
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, faultReport("No file provided"))
		return
	}
	defer file.Close()

	text, err := io.ReadAll(file)
	if err != nil {
		log.Errorf("Upload error: %s", err)
		h.writeJSON(w, http.StatusInternalServerError, faultReport("Internal server error"))
		return
	}

	res := h.cardService.IngestCSV(r.Context(), string(text))

	code := http.StatusOK
	if res.ParseFailed {
		code = http.StatusBadRequest
	}
	h.writeJSON(w, code, res.Report)
}

// ListCardsHandler returns the whole collection, newest first. A broken
// or absent store degrades to an empty list with a source marker.
func (h *Handler) ListCardsHandler(w http.ResponseWriter, r *http.Request) {
	cards, source := h.cardService.ListCards(r.Context())
	h.writeJSON(w, http.StatusOK, ListResponse{Cards: cards, Source: source})
}

// UpdateCardHandler applies a partial edit to one card. Unknown body
// fields are ignored; an edit carrying no recognized field is rejected.
func (h *Handler) UpdateCardHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var upd models.CardUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	card, err := h.cardService.UpdateCard(r.Context(), id, upd)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrEmptyUpdate):
			h.writeError(w, http.StatusBadRequest, "No valid fields to update")
		case errors.Is(err, store.ErrNotConfigured):
			h.writeError(w, http.StatusServiceUnavailable, "Database not configured")
		case errors.Is(err, store.ErrNotFound):
			h.writeError(w, http.StatusNotFound, "card not found")
		default:
			log.Errorf("Update error: %s", err)
			h.writeError(w, http.StatusInternalServerError, "Failed to update card")
		}
		return
	}

	h.writeJSON(w, http.StatusOK, CardResponse{Success: true, Card: card})
}

// DeleteCardHandler removes one card by id; unknown ids succeed.
func (h *Handler) DeleteCardHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.cardService.DeleteCard(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotConfigured) {
			h.writeError(w, http.StatusServiceUnavailable, "Database not configured")
			return
		}
		log.Errorf("Delete error: %s", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to delete card")
		return
	}

	h.writeJSON(w, http.StatusOK, CardResponse{Success: true})
}
