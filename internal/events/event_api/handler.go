package event_api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"samad-backend/internal/events"
	"samad-backend/internal/models"
	"samad-backend/internal/utils"
)

type Handler struct {
	Service *events.EventService
}

func NewHandler(service *events.EventService) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.ListEvents)
	r.Post("/", h.CreateEvent)
	r.Get("/{id}", h.GetEvent)
	r.Put("/{id}", h.UpdateEvent)
	r.Delete("/{id}", h.DeleteEvent)
	r.Get("/{id}/tickets", h.ListEventTickets)
}

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListEvents(r.Context())
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch events")
		return
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var insert models.InsertEvent
	if err := json.NewDecoder(r.Body).Decode(&insert); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid event data")
		return
	}

	event, err := h.Service.CreateEvent(r.Context(), insert)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid event data")
		return
	}
	utils.WriteJSON(w, http.StatusCreated, event)
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.Service.GetEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeEventError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, event)
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var update models.EventUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid event data")
		return
	}

	event, err := h.Service.UpdateEvent(r.Context(), chi.URLParam(r, "id"), update)
	if err != nil {
		writeEventError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, event)
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteEvent(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeEventError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListEventTickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.Service.ListEventTickets(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeEventError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, tickets)
}

func writeEventError(w http.ResponseWriter, err error) {
	if errors.Is(err, events.ErrEventNotFound) {
		utils.WriteError(w, http.StatusNotFound, "Event not found")
		return
	}
	utils.WriteError(w, http.StatusInternalServerError, "Internal server error")
}
