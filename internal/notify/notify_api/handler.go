package notify_api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"skylink/internal/auth"
	"skylink/internal/errs"
	"skylink/internal/logger"
	"skylink/internal/notify"
	"skylink/internal/utils"
)

type Handler struct {
	Service *notify.Service
	Logger  *logger.Logger
}

func NewHandler(service *notify.Service, log *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/tickets/{id}/deliver", h.DeliverTicket)
	r.Post("/my/tickets/deliver", h.DeliverMyTickets)
	r.Post("/users/{id}/telegram", h.LinkTelegram)
	r.Post("/notify/greetings", h.SendGreetings)
}

// DeliverTicket re-sends the ticket document on demand.
func (h *Handler) DeliverTicket(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid ticket id", err.Error()))
		return
	}

	if err := h.Service.DeliverTicket(r.Context(), id); err != nil {
		utils.WriteJSON(w, errs.HTTPStatus(err), utils.ErrorResponse("failed to deliver ticket", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("ticket delivery started", nil))
}

// DeliverMyTickets re-sends every ticket of the authenticated user.
func (h *Handler) DeliverMyTickets(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.ErrorResponse("authentication required", "no user in context"))
		return
	}

	delivered, err := h.Service.DeliverUserTickets(r.Context(), userID)
	if err != nil {
		utils.WriteJSON(w, errs.HTTPStatus(err), utils.ErrorResponse("failed to deliver tickets", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("tickets delivered", map[string]int{"delivered": delivered}))
}

type linkTelegramRequest struct {
	ChatID int64 `json:"chat_id"`
}

// LinkTelegram is the check-in endpoint: binds a chat to the user and
// drains any queued documents.
func (h *Handler) LinkTelegram(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid user id", err.Error()))
		return
	}

	var req linkTelegramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body", err.Error()))
		return
	}

	if err := h.Service.LinkTelegram(r.Context(), id, req.ChatID); err != nil {
		utils.WriteJSON(w, errs.HTTPStatus(err), utils.ErrorResponse("failed to link telegram chat", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("telegram chat linked", nil))
}

func (h *Handler) SendGreetings(w http.ResponseWriter, r *http.Request) {
	sent, err := h.Service.SendWeeklyGreetings(r.Context())
	if err != nil {
		utils.WriteJSON(w, errs.HTTPStatus(err), utils.ErrorResponse("failed to send greetings", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("greetings sent", map[string]int{"sent": sent}))
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
