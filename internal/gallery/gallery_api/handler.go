package gallery_api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"samad-backend/internal/gallery"
	"samad-backend/internal/models"
	"samad-backend/internal/uploads"
	"samad-backend/internal/utils"
)

type Handler struct {
	Service *gallery.GalleryService
	Uploads *uploads.Saver
}

func NewHandler(service *gallery.GalleryService, saver *uploads.Saver) *Handler {
	return &Handler{Service: service, Uploads: saver}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.ListImages)
	r.Post("/", h.CreateImage)
	r.Get("/{id}", h.GetImage)
	r.Put("/{id}", h.UpdateImage)
	r.Delete("/{id}", h.DeleteImage)
}

func (h *Handler) ListImages(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	list, err := h.Service.ListImages(r.Context(), activeOnly)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch gallery")
		return
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

// CreateImage accepts a multipart form: an optional "image" file plus
// title/caption/isActive fields. Without a file the imageUrl field must
// point at an already-hosted image.
func (h *Handler) CreateImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.Uploads.MaxBytes() + 1024); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	insert := models.InsertGalleryImage{
		Title:    r.FormValue("title"),
		ImageURL: r.FormValue("imageUrl"),
		Caption:  r.FormValue("caption"),
	}
	if raw := r.FormValue("isActive"); raw != "" {
		if active, err := strconv.ParseBool(raw); err == nil {
			insert.IsActive = &active
		}
	}

	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		path, err := h.Uploads.Save(file, header)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		insert.ImageURL = path
	}

	if insert.ImageURL == "" {
		utils.WriteError(w, http.StatusBadRequest, "imageUrl is required")
		return
	}

	image, err := h.Service.CreateImage(r.Context(), insert)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid gallery data")
		return
	}
	utils.WriteJSON(w, http.StatusCreated, image)
}

func (h *Handler) GetImage(w http.ResponseWriter, r *http.Request) {
	image, err := h.Service.GetImage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeGalleryError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, image)
}

func (h *Handler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	var update models.GalleryImageUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid gallery data")
		return
	}

	image, err := h.Service.UpdateImage(r.Context(), chi.URLParam(r, "id"), update)
	if err != nil {
		writeGalleryError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, image)
}

func (h *Handler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteImage(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeGalleryError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeGalleryError(w http.ResponseWriter, err error) {
	if errors.Is(err, gallery.ErrImageNotFound) {
		utils.WriteError(w, http.StatusNotFound, "Gallery image not found")
		return
	}
	utils.WriteError(w, http.StatusInternalServerError, "Internal server error")
}
