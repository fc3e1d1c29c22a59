package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/iho/conta/internal/adapter/http/dto"
	"github.com/iho/conta/internal/domain"
)

// EntryService defines the behavior needed by EntryHandler.
type EntryService interface {
	ValidateEntry(ctx context.Context, draft *domain.EntryDraft) (domain.ValidationResult, error)
	CreateEntry(ctx context.Context, draft *domain.EntryDraft) (*domain.JournalEntry, error)
	UpdateEntry(ctx context.Context, id string, draft *domain.EntryDraft) (*domain.JournalEntry, error)
	DeleteEntry(ctx context.Context, id string) error
	GetEntry(ctx context.Context, id string) (*domain.JournalEntry, error)
	Journal(ctx context.Context, filter domain.EntryFilter) ([]domain.JournalEntry, error)
}

// EntryHandler handles journal entry requests.
type EntryHandler struct {
	entryUC EntryService
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entryUC EntryService) *EntryHandler {
	return &EntryHandler{entryUC: entryUC}
}

// Create validates and records a new entry.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.decodeDraft(w, r)
	if !ok {
		return
	}

	entry, err := h.entryUC.CreateEntry(r.Context(), draft)
	if err != nil {
		writeDomainError(w, "failed to create entry", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// Validate runs the entry rules without persisting. It answers 200 with the
// result whether or not the entry is valid.
func (h *EntryHandler) Validate(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.decodeDraft(w, r)
	if !ok {
		return
	}

	result, err := h.entryUC.ValidateEntry(r.Context(), draft)
	if err != nil {
		writeDomainError(w, "failed to validate entry", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ValidationFromDomain(result))
}

// List returns the journal in chronological order.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.entryUC.Journal(r.Context(), entryFilter(r))
	if err != nil {
		writeDomainError(w, "failed to list entries", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.JournalFromDomain(entries))
}

// Get retrieves an entry by ID.
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	entry, err := h.entryUC.GetEntry(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to get entry", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// Update replaces an entry's content.
func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.decodeDraft(w, r)
	if !ok {
		return
	}

	entry, err := h.entryUC.UpdateEntry(r.Context(), chi.URLParam(r, "id"), draft)
	if err != nil {
		writeDomainError(w, "failed to update entry", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// Delete removes an entry.
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.entryUC.DeleteEntry(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, "failed to delete entry", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *EntryHandler) decodeDraft(w http.ResponseWriter, r *http.Request) (*domain.EntryDraft, bool) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return nil, false
	}

	req, err := dto.DecodeEntry(body)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidShape) {
			log.Warn().Err(err).Str("path", r.URL.Path).Msg("rejected malformed entry")
		}
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return nil, false
	}

	return req.ToDraft(), true
}
