package ticket_api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"skylink/internal/auth"
	"skylink/internal/errs"
	"skylink/internal/logger"
	"skylink/internal/tickets"
	"skylink/internal/utils"
)

type Handler struct {
	TicketService *tickets.TicketService
	Logger        *logger.Logger
}

func NewHandler(ticketService *tickets.TicketService, log *logger.Logger) *Handler {
	return &Handler{TicketService: ticketService, Logger: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/tickets", h.ListTickets)
	r.Post("/tickets", h.IssueTicket)
	r.Get("/tickets/{id}", h.GetTicket)
	r.Get("/orders/{id}/tickets", h.GetTicketsByOrder)
	r.Get("/my/tickets", h.GetMyTickets)
}

type issueRequest struct {
	FlightSeatID int64   `json:"flight_seat_id"`
	OrderID      int64   `json:"order_id"`
	Price        float64 `json:"price"`
}

func (h *Handler) IssueTicket(w http.ResponseWriter, r *http.Request) {
	var req issueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body", err.Error()))
		return
	}

	ticket, err := h.TicketService.IssueTicket(r.Context(), req.FlightSeatID, req.OrderID, req.Price)
	if err != nil {
		utils.WriteJSON(w, errs.HTTPStatus(err), utils.ErrorResponse("failed to issue ticket", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("ticket issued", ticket))
}

func (h *Handler) GetTicket(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid ticket id", err.Error()))
		return
	}

	ticket, err := h.TicketService.GetTicket(r.Context(), id)
	if err != nil {
		utils.WriteJSON(w, errs.HTTPStatus(err), utils.ErrorResponse("failed to get ticket", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("ticket", ticket))
}

func (h *Handler) ListTickets(w http.ResponseWriter, r *http.Request) {
	list, err := h.TicketService.ListTickets(r.Context())
	if err != nil {
		utils.WriteJSON(w, errs.HTTPStatus(err), utils.ErrorResponse("failed to list tickets", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("tickets", list))
}

// GetMyTickets returns every ticket across the authenticated user's
// orders with nested flight and seat data.
func (h *Handler) GetMyTickets(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.ErrorResponse("authentication required", "no user in context"))
		return
	}

	list, err := h.TicketService.GetTicketsByUser(r.Context(), userID)
	if err != nil {
		utils.WriteJSON(w, errs.HTTPStatus(err), utils.ErrorResponse("failed to get tickets", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("tickets", list))
}

func (h *Handler) GetTicketsByOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid order id", err.Error()))
		return
	}

	list, err := h.TicketService.GetTicketsByOrder(r.Context(), orderID)
	if err != nil {
		utils.WriteJSON(w, errs.HTTPStatus(err), utils.ErrorResponse("failed to get tickets", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("tickets", list))
}
