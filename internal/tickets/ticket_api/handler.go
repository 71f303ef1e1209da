package ticket_api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"samad-backend/internal/tickets"
	"samad-backend/internal/utils"
)

type Handler struct {
	Service *tickets.TicketService
}

func NewHandler(service *tickets.TicketService) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.ListTickets)
	r.Post("/", h.PurchaseTicket)
	r.Get("/verify/{reference}", h.VerifyPayment)
	r.Get("/code/{code}", h.GetTicketByCode)
	r.Get("/{id}", h.GetTicket)
	r.Get("/{id}/qr", h.TicketQR)
}

func (h *Handler) ListTickets(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListTickets(r.Context())
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch tickets")
		return
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) PurchaseTicket(w http.ResponseWriter, r *http.Request) {
	var req tickets.PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid ticket data")
		return
	}
	if req.CustomerEmail == "" || req.EventID == "" {
		utils.WriteError(w, http.StatusBadRequest, "eventId and customerEmail are required")
		return
	}

	result, err := h.Service.Purchase(r.Context(), req)
	if err != nil {
		writeTicketError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, result)
}

func (h *Handler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	ticket, err := h.Service.VerifyPayment(r.Context(), chi.URLParam(r, "reference"))
	if err != nil {
		writeTicketError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, ticket)
}

func (h *Handler) GetTicket(w http.ResponseWriter, r *http.Request) {
	ticket, err := h.Service.GetTicket(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeTicketError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, ticket)
}

func (h *Handler) GetTicketByCode(w http.ResponseWriter, r *http.Request) {
	ticket, err := h.Service.GetTicketByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeTicketError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, ticket)
}

func (h *Handler) TicketQR(w http.ResponseWriter, r *http.Request) {
	png, err := h.Service.TicketQR(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeTicketError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func writeTicketError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tickets.ErrEventNotFound):
		utils.WriteError(w, http.StatusNotFound, "Event not found")
	case errors.Is(err, tickets.ErrTicketNotFound):
		utils.WriteError(w, http.StatusNotFound, "Ticket not found")
	case errors.Is(err, tickets.ErrTierNotFound):
		utils.WriteError(w, http.StatusBadRequest, "Unknown ticket tier")
	case errors.Is(err, tickets.ErrTierSoldOut):
		utils.WriteError(w, http.StatusBadRequest, "Ticket tier not available")
	case errors.Is(err, tickets.ErrPaymentInit):
		utils.WriteError(w, http.StatusBadGateway, "Payment initialization failed")
	default:
		utils.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}
