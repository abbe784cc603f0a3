package fleet

import (
	"context"
	"fmt"

	"skylink/internal/errs"
	"skylink/internal/models"
)

type DBLayer interface {
	CreateAirport(ctx context.Context, airport *models.Airport) error
	GetAirportByID(ctx context.Context, id int64) (*models.Airport, error)
	ListAirports(ctx context.Context) ([]*models.Airport, error)
	AirportExists(ctx context.Context, id int64) (bool, error)
	CreateRoute(ctx context.Context, route *models.Route) error
	GetRouteByID(ctx context.Context, id int64) (*models.Route, error)
	ListRoutes(ctx context.Context) ([]*models.Route, error)
	CreateAirplaneType(ctx context.Context, airplaneType *models.AirplaneType) error
	GetAirplaneTypeByID(ctx context.Context, id int64) (*models.AirplaneType, error)
	ListAirplaneTypes(ctx context.Context) ([]*models.AirplaneType, error)
	AirplaneTypeExists(ctx context.Context, id int64) (bool, error)
	CreateAirplane(ctx context.Context, airplane *models.Airplane) error
	GetAirplaneByID(ctx context.Context, id int64) (*models.Airplane, error)
	ListAirplanes(ctx context.Context) ([]*models.Airplane, error)
	AirplaneExists(ctx context.Context, id int64) (bool, error)
	CreateTicketClass(ctx context.Context, ticketClass *models.TicketClass) error
	ListTicketClasses(ctx context.Context) ([]*models.TicketClass, error)
	TicketClassExists(ctx context.Context, id int64) (bool, error)
	CreateTariff(ctx context.Context, tariff *models.Tariff) error
	ListTariffs(ctx context.Context) ([]*models.Tariff, error)
	CreateSeat(ctx context.Context, seat *models.Seat) error
	GetSeatByID(ctx context.Context, id int64) (*models.Seat, error)
	ListSeats(ctx context.Context, airplaneID int64) ([]*models.Seat, error)
}

// FleetService covers the configuration-management side: airports, routes,
// airplane types, airplanes, seats, ticket classes and tariffs.
type FleetService struct {
	DB DBLayer
}

func NewFleetService(db DBLayer) *FleetService {
	return &FleetService{DB: db}
}

func (s *FleetService) CreateAirport(ctx context.Context, airport *models.Airport) error {
	if airport.Name == "" {
		return errs.Validation("name", "must not be empty")
	}
	return s.DB.CreateAirport(ctx, airport)
}

func (s *FleetService) GetAirport(ctx context.Context, id int64) (*models.Airport, error) {
	return s.DB.GetAirportByID(ctx, id)
}

func (s *FleetService) ListAirports(ctx context.Context) ([]*models.Airport, error) {
	return s.DB.ListAirports(ctx)
}

func (s *FleetService) CreateRoute(ctx context.Context, route *models.Route) error {
	if route.SourceID == route.DestinationID {
		return errs.Validation("destination_id", "source and destination must differ")
	}
	if route.Distance <= 0 {
		return errs.Validation("distance", "must be positive")
	}
	for _, airportID := range []int64{route.SourceID, route.DestinationID} {
		ok, err := s.DB.AirportExists(ctx, airportID)
		if err != nil {
			return fmt.Errorf("check airport: %w", err)
		}
		if !ok {
			return errs.NotFound("airport", airportID)
		}
	}
	return s.DB.CreateRoute(ctx, route)
}

func (s *FleetService) GetRoute(ctx context.Context, id int64) (*models.Route, error) {
	return s.DB.GetRouteByID(ctx, id)
}

func (s *FleetService) ListRoutes(ctx context.Context) ([]*models.Route, error) {
	return s.DB.ListRoutes(ctx)
}

func (s *FleetService) CreateAirplaneType(ctx context.Context, airplaneType *models.AirplaneType) error {
	if airplaneType.Name == "" {
		return errs.Validation("name", "must not be empty")
	}
	return s.DB.CreateAirplaneType(ctx, airplaneType)
}

func (s *FleetService) ListAirplaneTypes(ctx context.Context) ([]*models.AirplaneType, error) {
	return s.DB.ListAirplaneTypes(ctx)
}

func (s *FleetService) CreateAirplane(ctx context.Context, airplane *models.Airplane) error {
	if airplane.Name == "" {
		return errs.Validation("name", "must not be empty")
	}
	ok, err := s.DB.AirplaneTypeExists(ctx, airplane.AirplaneTypeID)
	if err != nil {
		return fmt.Errorf("check airplane type: %w", err)
	}
	if !ok {
		return errs.NotFound("airplane_type", airplane.AirplaneTypeID)
	}
	return s.DB.CreateAirplane(ctx, airplane)
}

func (s *FleetService) GetAirplane(ctx context.Context, id int64) (*models.Airplane, error) {
	return s.DB.GetAirplaneByID(ctx, id)
}

func (s *FleetService) ListAirplanes(ctx context.Context) ([]*models.Airplane, error) {
	return s.DB.ListAirplanes(ctx)
}

func (s *FleetService) CreateTicketClass(ctx context.Context, ticketClass *models.TicketClass) error {
	if ticketClass.Name == "" {
		return errs.Validation("name", "must not be empty")
	}
	return s.DB.CreateTicketClass(ctx, ticketClass)
}

func (s *FleetService) ListTicketClasses(ctx context.Context) ([]*models.TicketClass, error) {
	return s.DB.ListTicketClasses(ctx)
}

func (s *FleetService) CreateTariff(ctx context.Context, tariff *models.Tariff) error {
	if tariff.Code == "" {
		return errs.Validation("code", "must not be empty")
	}
	ok, err := s.DB.TicketClassExists(ctx, tariff.TicketClassID)
	if err != nil {
		return fmt.Errorf("check ticket class: %w", err)
	}
	if !ok {
		return errs.NotFound("ticket_class", tariff.TicketClassID)
	}
	return s.DB.CreateTariff(ctx, tariff)
}

func (s *FleetService) ListTariffs(ctx context.Context) ([]*models.Tariff, error) {
	return s.DB.ListTariffs(ctx)
}

// CreateSeat validates the slot before persisting. Seat and row numbering
// starts at 1.
func (s *FleetService) CreateSeat(ctx context.Context, seat *models.Seat) error {
	if seat.Seat < 1 {
		return errs.Validation("seat", "seat number must be at least 1")
	}
	if seat.Row < 1 {
		return errs.Validation("row", "row must be at least 1")
	}
	ok, err := s.DB.AirplaneExists(ctx, seat.AirplaneID)
	if err != nil {
		return fmt.Errorf("check airplane: %w", err)
	}
	if !ok {
		return errs.NotFound("airplane", seat.AirplaneID)
	}
	ok, err = s.DB.TicketClassExists(ctx, seat.TicketClassID)
	if err != nil {
		return fmt.Errorf("check ticket class: %w", err)
	}
	if !ok {
		return errs.NotFound("ticket_class", seat.TicketClassID)
	}
	return s.DB.CreateSeat(ctx, seat)
}

func (s *FleetService) GetSeat(ctx context.Context, id int64) (*models.SeatResponse, error) {
	seat, err := s.DB.GetSeatByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return seatResponse(seat), nil
}

func (s *FleetService) ListSeats(ctx context.Context, airplaneID int64) ([]*models.SeatResponse, error) {
	seats, err := s.DB.ListSeats(ctx, airplaneID)
	if err != nil {
		return nil, err
	}
	responses := make([]*models.SeatResponse, 0, len(seats))
	for _, seat := range seats {
		responses = append(responses, seatResponse(seat))
	}
	return responses, nil
}

func seatResponse(seat *models.Seat) *models.SeatResponse {
	resp := &models.SeatResponse{
		ID:       seat.ID,
		Seat:     seat.Seat,
		Row:      seat.Row,
		SeatType: seat.SeatType,
	}
	if seat.Airplane != nil {
		resp.Airplane = seat.Airplane.Name
	}
	if seat.TicketClass != nil {
		resp.TicketClass = seat.TicketClass.Name
	}
	return resp
}
