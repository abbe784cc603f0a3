package flight_api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"skylink/internal/errs"
	"skylink/internal/flights"
	"skylink/internal/logger"
	"skylink/internal/models"
	"skylink/internal/utils"
)

type Handler struct {
	FlightService *flights.FlightService
	Logger        *logger.Logger
}

func NewHandler(flightService *flights.FlightService, log *logger.Logger) *Handler {
	return &Handler{FlightService: flightService, Logger: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/flights", h.ListFlights)
	r.Post("/flights", h.ScheduleFlight)
	r.Get("/flights/{id}", h.GetFlight)
	r.Get("/flights/{id}/availability", h.GetAvailability)
	r.Get("/availability", h.GetAvailabilityForAll)
	r.Get("/flight-seats", h.ListFlightSeats)
	r.Post("/flight-seats", h.BindSeat)
	r.Get("/flight-seats/{id}", h.GetFlightSeat)
	r.Get("/crews", h.ListCrews)
	r.Post("/crews", h.CreateCrew)
}

func (h *Handler) ScheduleFlight(w http.ResponseWriter, r *http.Request) {
	var req models.FlightCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body", err.Error()))
		return
	}

	flight, err := h.FlightService.ScheduleFlight(r.Context(), req)
	if err != nil {
		utils.WriteJSON(w, errs.HTTPStatus(err), utils.ErrorResponse("failed to schedule flight", err.Error()))
		return
	}

	h.Logger.LogFlight("SCHEDULE", flight.ID, "flight created with materialized seat inventory")
	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("flight scheduled", flight))
}

func (h *Handler) GetFlight(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid flight id", err.Error()))
		return
	}

	flight, err := h.FlightService.GetFlight(r.Context(), id)
	if err != nil {
		utils.WriteJSON(w, errs.HTTPStatus(err), utils.ErrorResponse("failed to get flight", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("flight", flight))
}

func (h *Handler) ListFlights(w http.ResponseWriter, r *http.Request) {
	responses, err := h.FlightService.ListFlights(r.Context())
	if err != nil {
		utils.WriteJSON(w, errs.HTTPStatus(err), utils.ErrorResponse("failed to list flights", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("flights", responses))
}

func (h *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid flight id", err.Error()))
		return
	}

	availability, err := h.FlightService.GetAvailability(r.Context(), id)
	if err != nil {
		utils.WriteJSON(w, errs.HTTPStatus(err), utils.ErrorResponse("failed to get availability", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("availability", availability))
}

// GetAvailabilityForAll supports route_id, from and to query filters and
// returns one availability row per matching flight.
func (h *Handler) GetAvailabilityForAll(w http.ResponseWriter, r *http.Request) {
	var routeID int64
	if raw := r.URL.Query().Get("route_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid route_id", err.Error()))
			return
		}
		routeID = parsed
	}

	var from, to time.Time
	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid from timestamp", err.Error()))
			return
		}
		from = parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid to timestamp", err.Error()))
			return
		}
		to = parsed
	}

	rows, err := h.FlightService.GetAvailabilityForAll(r.Context(), routeID, from, to)
	if err != nil {
		utils.WriteJSON(w, errs.HTTPStatus(err), utils.ErrorResponse("failed to compute availability", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("availability", rows))
}

func (h *Handler) BindSeat(w http.ResponseWriter, r *http.Request) {
	var req models.FlightSeatCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body", err.Error()))
		return
	}

	binding, err := h.FlightService.BindSeat(r.Context(), req)
	if err != nil {
		utils.WriteJSON(w, errs.HTTPStatus(err), utils.ErrorResponse("failed to bind seat", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("flight seat created", binding))
}

func (h *Handler) GetFlightSeat(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid flight seat id", err.Error()))
		return
	}

	binding, err := h.FlightService.GetFlightSeat(r.Context(), id)
	if err != nil {
		utils.WriteJSON(w, errs.HTTPStatus(err), utils.ErrorResponse("failed to get flight seat", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("flight seat", binding))
}

func (h *Handler) ListFlightSeats(w http.ResponseWriter, r *http.Request) {
	var flightID int64
	if raw := r.URL.Query().Get("flight_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid flight_id", err.Error()))
			return
		}
		flightID = parsed
	}

	bindings, err := h.FlightService.ListFlightSeats(r.Context(), flightID)
	if err != nil {
		utils.WriteJSON(w, errs.HTTPStatus(err), utils.ErrorResponse("failed to list flight seats", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("flight seats", bindings))
}

func (h *Handler) ListCrews(w http.ResponseWriter, r *http.Request) {
	crews, err := h.FlightService.ListCrews(r.Context())
	if err != nil {
		utils.WriteJSON(w, errs.HTTPStatus(err), utils.ErrorResponse("failed to list crews", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("crews", crews))
}

func (h *Handler) CreateCrew(w http.ResponseWriter, r *http.Request) {
	var crew models.Crew
	if err := json.NewDecoder(r.Body).Decode(&crew); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body", err.Error()))
		return
	}

	if err := h.FlightService.CreateCrew(r.Context(), &crew); err != nil {
		utils.WriteJSON(w, errs.HTTPStatus(err), utils.ErrorResponse("failed to create crew", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("crew created", crew))
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
