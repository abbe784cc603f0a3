package fleet_api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"skylink/internal/errs"
	"skylink/internal/fleet"
	"skylink/internal/logger"
	"skylink/internal/models"
	"skylink/internal/utils"
)

type Handler struct {
	FleetService *fleet.FleetService
	Logger       *logger.Logger
}

func NewHandler(fleetService *fleet.FleetService, log *logger.Logger) *Handler {
	return &Handler{FleetService: fleetService, Logger: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/airports", h.ListAirports)
	r.Post("/airports", h.CreateAirport)
	r.Get("/airports/{id}", h.GetAirport)
	r.Get("/routes", h.ListRoutes)
	r.Post("/routes", h.CreateRoute)
	r.Get("/routes/{id}", h.GetRoute)
	r.Get("/airplane-types", h.ListAirplaneTypes)
	r.Post("/airplane-types", h.CreateAirplaneType)
	r.Get("/airplanes", h.ListAirplanes)
	r.Post("/airplanes", h.CreateAirplane)
	r.Get("/airplanes/{id}", h.GetAirplane)
	r.Get("/ticket-classes", h.ListTicketClasses)
	r.Post("/ticket-classes", h.CreateTicketClass)
	r.Get("/tariffs", h.ListTariffs)
	r.Post("/tariffs", h.CreateTariff)
	r.Get("/seats", h.ListSeats)
	r.Post("/seats", h.CreateSeat)
	r.Get("/seats/{id}", h.GetSeat)
}

func (h *Handler) CreateAirport(w http.ResponseWriter, r *http.Request) {
	var airport models.Airport
	if err := json.NewDecoder(r.Body).Decode(&airport); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body", err.Error()))
		return
	}
	if err := h.FleetService.CreateAirport(r.Context(), &airport); err != nil {
		utils.WriteJSON(w, errs.HTTPStatus(err), utils.ErrorResponse("failed to create airport", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("airport created", airport))
}

func (h *Handler) GetAirport(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid airport id", err.Error()))
		return
	}
	airport, err := h.FleetService.GetAirport(r.Context(), id)
	if err != nil {
		utils.WriteJSON(w, errs.HTTPStatus(err), utils.ErrorResponse("failed to get airport", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("airport", airport))
}

func (h *Handler) ListAirports(w http.ResponseWriter, r *http.Request) {
	airports, err := h.FleetService.ListAirports(r.Context())
	if err != nil {
		utils.WriteJSON(w, errs.HTTPStatus(err), utils.ErrorResponse("failed to list airports", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("airports", airports))
}

func (h *Handler) CreateRoute(w http.ResponseWriter, r *http.Request) {
	var route models.Route
	if err := json.NewDecoder(r.Body).Decode(&route); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body", err.Error()))
		return
	}
	if err := h.FleetService.CreateRoute(r.Context(), &route); err != nil {
		utils.WriteJSON(w, errs.HTTPStatus(err), utils.ErrorResponse("failed to create route", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("route created", route))
}

func (h *Handler) GetRoute(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid route id", err.Error()))
		return
	}
	route, err := h.FleetService.GetRoute(r.Context(), id)
	if err != nil {
		utils.WriteJSON(w, errs.HTTPStatus(err), utils.ErrorResponse("failed to get route", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("route", route))
}

func (h *Handler) ListRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := h.FleetService.ListRoutes(r.Context())
	if err != nil {
		utils.WriteJSON(w, errs.HTTPStatus(err), utils.ErrorResponse("failed to list routes", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("routes", routes))
}

func (h *Handler) CreateAirplaneType(w http.ResponseWriter, r *http.Request) {
	var airplaneType models.AirplaneType
	if err := json.NewDecoder(r.Body).Decode(&airplaneType); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body", err.Error()))
		return
	}
	if err := h.FleetService.CreateAirplaneType(r.Context(), &airplaneType); err != nil {
		utils.WriteJSON(w, errs.HTTPStatus(err), utils.ErrorResponse("failed to create airplane type", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("airplane type created", airplaneType))
}

func (h *Handler) ListAirplaneTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.FleetService.ListAirplaneTypes(r.Context())
	if err != nil {
		utils.WriteJSON(w, errs.HTTPStatus(err), utils.ErrorResponse("failed to list airplane types", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("airplane types", types))
}

func (h *Handler) CreateAirplane(w http.ResponseWriter, r *http.Request) {
	var airplane models.Airplane
	if err := json.NewDecoder(r.Body).Decode(&airplane); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body", err.Error()))
		return
	}
	if err := h.FleetService.CreateAirplane(r.Context(), &airplane); err != nil {
		utils.WriteJSON(w, errs.HTTPStatus(err), utils.ErrorResponse("failed to create airplane", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("airplane created", airplane))
}

func (h *Handler) GetAirplane(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid airplane id", err.Error()))
		return
	}
	airplane, err := h.FleetService.GetAirplane(r.Context(), id)
	if err != nil {
		utils.WriteJSON(w, errs.HTTPStatus(err), utils.ErrorResponse("failed to get airplane", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("airplane", airplane))
}

func (h *Handler) ListAirplanes(w http.ResponseWriter, r *http.Request) {
	airplanes, err := h.FleetService.ListAirplanes(r.Context())
	if err != nil {
		utils.WriteJSON(w, errs.HTTPStatus(err), utils.ErrorResponse("failed to list airplanes", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("airplanes", airplanes))
}

func (h *Handler) CreateTicketClass(w http.ResponseWriter, r *http.Request) {
	var ticketClass models.TicketClass
	if err := json.NewDecoder(r.Body).Decode(&ticketClass); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body", err.Error()))
		return
	}
	if err := h.FleetService.CreateTicketClass(r.Context(), &ticketClass); err != nil {
		utils.WriteJSON(w, errs.HTTPStatus(err), utils.ErrorResponse("failed to create ticket class", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("ticket class created", ticketClass))
}

func (h *Handler) ListTicketClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := h.FleetService.ListTicketClasses(r.Context())
	if err != nil {
		utils.WriteJSON(w, errs.HTTPStatus(err), utils.ErrorResponse("failed to list ticket classes", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("ticket classes", classes))
}

func (h *Handler) CreateTariff(w http.ResponseWriter, r *http.Request) {
	var tariff models.Tariff
	if err := json.NewDecoder(r.Body).Decode(&tariff); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body", err.Error()))
		return
	}
	if err := h.FleetService.CreateTariff(r.Context(), &tariff); err != nil {
		utils.WriteJSON(w, errs.HTTPStatus(err), utils.ErrorResponse("failed to create tariff", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("tariff created", tariff))
}

func (h *Handler) ListTariffs(w http.ResponseWriter, r *http.Request) {
	tariffs, err := h.FleetService.ListTariffs(r.Context())
	if err != nil {
		utils.WriteJSON(w, errs.HTTPStatus(err), utils.ErrorResponse("failed to list tariffs", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("tariffs", tariffs))
}

func (h *Handler) CreateSeat(w http.ResponseWriter, r *http.Request) {
	var seat models.Seat
	if err := json.NewDecoder(r.Body).Decode(&seat); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body", err.Error()))
		return
	}
	if err := h.FleetService.CreateSeat(r.Context(), &seat); err != nil {
		utils.WriteJSON(w, errs.HTTPStatus(err), utils.ErrorResponse("failed to create seat", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("seat created", seat))
}

func (h *Handler) GetSeat(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid seat id", err.Error()))
		return
	}
	seat, err := h.FleetService.GetSeat(r.Context(), id)
	if err != nil {
		utils.WriteJSON(w, errs.HTTPStatus(err), utils.ErrorResponse("failed to get seat", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("seat", seat))
}

func (h *Handler) ListSeats(w http.ResponseWriter, r *http.Request) {
	var airplaneID int64
	if raw := r.URL.Query().Get("airplane_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid airplane_id", err.Error()))
			return
		}
		airplaneID = parsed
	}
	seats, err := h.FleetService.ListSeats(r.Context(), airplaneID)
	if err != nil {
		utils.WriteJSON(w, errs.HTTPStatus(err), utils.ErrorResponse("failed to list seats", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("seats", seats))
}

func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		return 0, errors.New("missing id")
	}
	return strconv.ParseInt(raw, 10, 64)
}
