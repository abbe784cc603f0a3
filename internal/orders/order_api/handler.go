package order_api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"skylink/internal/auth"
	"skylink/internal/errs"
	"skylink/internal/logger"
	"skylink/internal/models"
	"skylink/internal/orders"
	"skylink/internal/utils"
)

type Handler struct {
	OrderService *orders.OrderService
	Logger       *logger.Logger
}

func NewHandler(orderService *orders.OrderService, log *logger.Logger) *Handler {
	return &Handler{OrderService: orderService, Logger: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/orders", h.ListOrders)
	r.Post("/orders", h.PlaceOrder)
	r.Get("/orders/{id}", h.GetOrder)
}

func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.ErrorResponse("authentication required", "no user in context"))
		return
	}

	var req models.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body", err.Error()))
		return
	}

	resp, err := h.OrderService.PlaceOrder(r.Context(), userID, req)
	if err != nil {
		utils.WriteJSON(w, errs.HTTPStatus(err), utils.ErrorResponse("failed to place order", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("order placed", resp))
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid order id", err.Error()))
		return
	}

	order, err := h.OrderService.GetOrder(r.Context(), id)
	if err != nil {
		utils.WriteJSON(w, errs.HTTPStatus(err), utils.ErrorResponse("failed to get order", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("order", order))
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	// An authenticated caller sees their own orders; everything else is
	// the admin listing.
	if userID, ok := auth.UserIDFromContext(r.Context()); ok {
		list, err := h.OrderService.ListOrdersByUser(r.Context(), userID)
		if err != nil {
			utils.WriteJSON(w, errs.HTTPStatus(err), utils.ErrorResponse("failed to list orders", err.Error()))
			return
		}
		utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("orders", list))
		return
	}

	list, err := h.OrderService.ListOrders(r.Context())
	if err != nil {
		utils.WriteJSON(w, errs.HTTPStatus(err), utils.ErrorResponse("failed to list orders", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("orders", list))
}
