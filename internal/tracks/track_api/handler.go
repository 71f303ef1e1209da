package track_api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"samad-backend/internal/models"
	"samad-backend/internal/tracks"
	"samad-backend/internal/utils"
)

type Handler struct {
	Service *tracks.TrackService
}

func NewHandler(service *tracks.TrackService) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.ListTracks)
	r.Post("/", h.CreateTrack)
	r.Get("/{id}", h.GetTrack)
	r.Put("/{id}", h.UpdateTrack)
}

func (h *Handler) ListTracks(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListTracks(r.Context())
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch tracks")
		return
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) CreateTrack(w http.ResponseWriter, r *http.Request) {
	var insert models.InsertTrack
	if err := json.NewDecoder(r.Body).Decode(&insert); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid track data")
		return
	}

	track, err := h.Service.CreateTrack(r.Context(), insert)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid track data")
		return
	}
	utils.WriteJSON(w, http.StatusCreated, track)
}

func (h *Handler) GetTrack(w http.ResponseWriter, r *http.Request) {
	track, err := h.Service.GetTrack(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeTrackError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, track)
}

func (h *Handler) UpdateTrack(w http.ResponseWriter, r *http.Request) {
	var update models.TrackUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid track data")
		return
	}

	track, err := h.Service.UpdateTrack(r.Context(), chi.URLParam(r, "id"), update)
	if err != nil {
		writeTrackError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, track)
}

func writeTrackError(w http.ResponseWriter, err error) {
	if errors.Is(err, tracks.ErrTrackNotFound) {
		utils.WriteError(w, http.StatusNotFound, "Track not found")
		return
	}
	utils.WriteError(w, http.StatusInternalServerError, "Internal server error")
}
