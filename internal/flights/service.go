package flights

import (
	"context"
	"fmt"
	"time"

	"skylink/internal/errs"
	"skylink/internal/models"
)

type DBLayer interface {
	GetFlightByID(ctx context.Context, id int64) (*models.Flight, error)
	ListFlights(ctx context.Context) ([]*models.Flight, error)
	FlightExists(ctx context.Context, id int64) (bool, error)
	CreateFlight(ctx context.Context, flight *models.Flight, crewIDs []int64) error
	RouteExists(ctx context.Context, id int64) (bool, error)
	AirplaneExists(ctx context.Context, id int64) (bool, error)
	GetSeatByID(ctx context.Context, id int64) (*models.Seat, error)
	CreateFlightSeat(ctx context.Context, binding *models.FlightSeat) error
	GetFlightSeatByID(ctx context.Context, id int64) (*models.FlightSeat, error)
	ListFlightSeats(ctx context.Context, flightID int64) ([]*models.FlightSeat, error)
	ListCrews(ctx context.Context) ([]*models.Crew, error)
	CreateCrew(ctx context.Context, crew *models.Crew) error
	CrewsExist(ctx context.Context, ids []int64) (bool, error)
	GetAvailability(ctx context.Context, flightID int64) (*models.FlightAvailability, error)
	GetAvailabilityForAll(ctx context.Context, routeID int64, from, to time.Time) ([]models.FlightAvailability, error)
}

type FlightService struct {
	DB DBLayer
}

func NewFlightService(db DBLayer) *FlightService {
	return &FlightService{DB: db}
}

// ScheduleFlight validates and creates a flight together with its crew
// assignments and materialized seat inventory.
func (s *FlightService) ScheduleFlight(ctx context.Context, req models.FlightCreateRequest) (*models.Flight, error) {
	if !req.DepartureTime.Before(req.ArrivalTime) {
		return nil, errs.Validation("departure_time", "departure must be earlier than arrival")
	}
	if req.Status == 0 {
		req.Status = models.StatusScheduled
	}
	if req.Status.String() == "UNKNOWN" {
		return nil, errs.Validation("status", "unknown flight status")
	}

	ok, err := s.DB.RouteExists(ctx, req.RouteID)
	if err != nil {
		return nil, fmt.Errorf("check route: %w", err)
	}
	if !ok {
		return nil, errs.NotFound("route", req.RouteID)
	}

	ok, err = s.DB.AirplaneExists(ctx, req.AirplaneID)
	if err != nil {
		return nil, fmt.Errorf("check airplane: %w", err)
	}
	if !ok {
		return nil, errs.NotFound("airplane", req.AirplaneID)
	}

	ok, err = s.DB.CrewsExist(ctx, req.CrewIDs)
	if err != nil {
		return nil, fmt.Errorf("check crew: %w", err)
	}
	if !ok {
		return nil, errs.Validation("crew_ids", "one or more crew members do not exist")
	}

	flight := &models.Flight{
		RouteID:       req.RouteID,
		AirplaneID:    req.AirplaneID,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
		Status:        req.Status,
	}
	if err := s.DB.CreateFlight(ctx, flight, req.CrewIDs); err != nil {
		return nil, fmt.Errorf("create flight: %w", err)
	}
	return flight, nil
}

// BindSeat creates a FlightSeat after checking, in order, that both ends
// exist and that the seat physically belongs to the airplane operating the
// flight. Nothing is persisted when either check fails.
func (s *FlightService) BindSeat(ctx context.Context, req models.FlightSeatCreateRequest) (*models.FlightSeat, error) {
	seat, err := s.DB.GetSeatByID(ctx, req.SeatID)
	if err != nil {
		return nil, err
	}
	flight, err := s.DB.GetFlightByID(ctx, req.FlightID)
	if err != nil {
		return nil, err
	}

	if seat.AirplaneID != flight.AirplaneID {
		return nil, errs.Consistency(fmt.Sprintf(
			"seat %d belongs to airplane %d but flight %d is operated by airplane %d",
			seat.ID, seat.AirplaneID, flight.ID, flight.AirplaneID))
	}

	binding := &models.FlightSeat{SeatID: seat.ID, FlightID: flight.ID}
	if err := s.DB.CreateFlightSeat(ctx, binding); err != nil {
		return nil, err
	}
	return binding, nil
}

func (s *FlightService) GetFlightSeat(ctx context.Context, id int64) (*models.FlightSeat, error) {
	return s.DB.GetFlightSeatByID(ctx, id)
}

func (s *FlightService) ListFlightSeats(ctx context.Context, flightID int64) ([]*models.FlightSeat, error) {
	return s.DB.ListFlightSeats(ctx, flightID)
}

// GetAvailability reports total, booked and available seats for a flight.
// Advisory only: a positive availability is not a reservation.
func (s *FlightService) GetAvailability(ctx context.Context, flightID int64) (*models.FlightAvailability, error) {
	return s.DB.GetAvailability(ctx, flightID)
}

func (s *FlightService) GetAvailabilityForAll(ctx context.Context, routeID int64, from, to time.Time) ([]models.FlightAvailability, error) {
	return s.DB.GetAvailabilityForAll(ctx, routeID, from, to)
}

// GetFlight returns the read shape for one flight, availability included.
func (s *FlightService) GetFlight(ctx context.Context, id int64) (*models.FlightResponse, error) {
	flight, err := s.DB.GetFlightByID(ctx, id)
	if err != nil {
		return nil, err
	}
	availability, err := s.DB.GetAvailability(ctx, id)
	if err != nil {
		return nil, err
	}
	return flightResponse(flight, availability), nil
}

// ListFlights annotates every flight with availability computed in a
// single batched pass.
func (s *FlightService) ListFlights(ctx context.Context) ([]*models.FlightResponse, error) {
	flights, err := s.DB.ListFlights(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.DB.GetAvailabilityForAll(ctx, 0, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}

	byFlight := make(map[int64]*models.FlightAvailability, len(rows))
	for i := range rows {
		byFlight[rows[i].FlightID] = &rows[i]
	}

	responses := make([]*models.FlightResponse, 0, len(flights))
	for _, flight := range flights {
		responses = append(responses, flightResponse(flight, byFlight[flight.ID]))
	}
	return responses, nil
}

func (s *FlightService) ListCrews(ctx context.Context) ([]*models.Crew, error) {
	return s.DB.ListCrews(ctx)
}

func (s *FlightService) CreateCrew(ctx context.Context, crew *models.Crew) error {
	if crew.FirstName == "" {
		return errs.Validation("first_name", "must not be empty")
	}
	if crew.LastName == "" {
		return errs.Validation("last_name", "must not be empty")
	}
	return s.DB.CreateCrew(ctx, crew)
}

func flightResponse(flight *models.Flight, availability *models.FlightAvailability) *models.FlightResponse {
	airplane := ""
	if flight.Airplane != nil {
		airplane = flight.Airplane.Name
	}
	return &models.FlightResponse{
		ID:                flight.ID,
		Route:             flight.Route,
		Airplane:          airplane,
		DepartureTime:     flight.DepartureTime,
		ArrivalTime:       flight.ArrivalTime,
		Status:            flight.Status.String(),
		Crew:              flight.Crew,
		FormattedDuration: models.FormatDuration(flight.DepartureTime, flight.ArrivalTime),
		Availability:      availability,
	}
}
