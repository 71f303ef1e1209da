package merch_api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"samad-backend/internal/merch"
	"samad-backend/internal/models"
	"samad-backend/internal/uploads"
	"samad-backend/internal/utils"
)

type Handler struct {
	Service *merch.MerchService
	Uploads *uploads.Saver
}

func NewHandler(service *merch.MerchService, saver *uploads.Saver) *Handler {
	return &Handler{Service: service, Uploads: saver}
}

// Routes mounts the catalog and order endpoints. Order routes go first so
// chi does not swallow "orders" as a product id.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/orders", h.ListOrders)
	r.Post("/orders", h.PlaceOrder)
	r.Get("/orders/verify/{reference}", h.VerifyPayment)
	r.Get("/orders/{id}", h.GetOrder)

	r.Get("/", h.ListProducts)
	r.Post("/", h.CreateProduct)
	r.Get("/{id}", h.GetProduct)
	r.Put("/{id}", h.UpdateProduct)
	r.Delete("/{id}", h.DeleteProduct)
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	list, err := h.Service.ListProducts(r.Context(), activeOnly)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

// CreateProduct accepts a multipart form with an optional "image" file;
// the stored product's imageUrl is the served upload path when a file is
// sent.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.Uploads.MaxBytes() + 1024); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid product data")
		return
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil || r.FormValue("name") == "" {
		utils.WriteError(w, http.StatusBadRequest, "Invalid product data")
		return
	}

	insert := models.InsertMerchProduct{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Price:       price,
		JumiaLink:   r.FormValue("jumiaLink"),
	}
	if raw := r.FormValue("stock"); raw != "" {
		if stock, err := strconv.Atoi(raw); err == nil {
			insert.Stock = stock
		}
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
		insert.ImageURL = &path
	}

	product, err := h.Service.CreateProduct(r.Context(), insert)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid product data")
		return
	}
	utils.WriteJSON(w, http.StatusCreated, product)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.Service.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeMerchError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, product)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var update models.MerchProductUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid product data")
		return
	}

	product, err := h.Service.UpdateProduct(r.Context(), chi.URLParam(r, "id"), update)
	if err != nil {
		writeMerchError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, product)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeMerchError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req merch.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid order data")
		return
	}
	if req.ProductID == "" || req.CustomerEmail == "" {
		utils.WriteError(w, http.StatusBadRequest, "productId and customerEmail are required")
		return
	}

	result, err := h.Service.PlaceOrder(r.Context(), req)
	if err != nil {
		writeMerchError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, result)
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListOrders(r.Context())
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Service.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeMerchError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, order)
}

func (h *Handler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	order, err := h.Service.VerifyPayment(r.Context(), chi.URLParam(r, "reference"))
	if err != nil {
		writeMerchError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, order)
}

func writeMerchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, merch.ErrProductNotFound):
		utils.WriteError(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, merch.ErrOrderNotFound):
		utils.WriteError(w, http.StatusNotFound, "Order not found")
	case errors.Is(err, merch.ErrProductUnavailable):
		utils.WriteError(w, http.StatusBadRequest, "Product not available")
	case errors.Is(err, merch.ErrPaymentInit):
		utils.WriteError(w, http.StatusBadGateway, "Payment initialization failed")
	default:
		utils.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}
