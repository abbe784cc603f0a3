package fleet_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skylink/internal/errs"
	"skylink/internal/fleet"
	"skylink/internal/models"
)

type MockFleetDB struct {
	airports      map[int64]*models.Airport
	airplaneTypes map[int64]bool
	airplanes     map[int64]bool
	ticketClasses map[int64]bool
	seats         []*models.Seat
	tariffs       []*models.Tariff
	routes        []*models.Route
	nextID        int64
}

func NewMockFleetDB() *MockFleetDB {
	return &MockFleetDB{
		airports:      make(map[int64]*models.Airport),
		airplaneTypes: make(map[int64]bool),
		airplanes:     make(map[int64]bool),
		ticketClasses: make(map[int64]bool),
		nextID:        1,
	}
}

func (m *MockFleetDB) CreateAirport(_ context.Context, airport *models.Airport) error {
	airport.ID = m.nextID
	m.nextID++
	m.airports[airport.ID] = airport
	return nil
}

func (m *MockFleetDB) GetAirportByID(_ context.Context, id int64) (*models.Airport, error) {
	airport, ok := m.airports[id]
	if !ok {
		return nil, errs.NotFound("airport", id)
	}
	return airport, nil
}

func (m *MockFleetDB) ListAirports(_ context.Context) ([]*models.Airport, error) {
	out := make([]*models.Airport, 0, len(m.airports))
	for _, a := range m.airports {
		out = append(out, a)
	}
	return out, nil
}

func (m *MockFleetDB) AirportExists(_ context.Context, id int64) (bool, error) {
	_, ok := m.airports[id]
	return ok, nil
}

func (m *MockFleetDB) CreateRoute(_ context.Context, route *models.Route) error {
	route.ID = m.nextID
	m.nextID++
	m.routes = append(m.routes, route)
	return nil
}

func (m *MockFleetDB) GetRouteByID(_ context.Context, id int64) (*models.Route, error) {
	for _, r := range m.routes {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, errs.NotFound("route", id)
}

func (m *MockFleetDB) ListRoutes(_ context.Context) ([]*models.Route, error) {
	return m.routes, nil
}

func (m *MockFleetDB) CreateAirplaneType(_ context.Context, airplaneType *models.AirplaneType) error {
	airplaneType.ID = m.nextID
	m.nextID++
	m.airplaneTypes[airplaneType.ID] = true
	return nil
}

func (m *MockFleetDB) GetAirplaneTypeByID(_ context.Context, id int64) (*models.AirplaneType, error) {
	if !m.airplaneTypes[id] {
		return nil, errs.NotFound("airplane_type", id)
	}
	return &models.AirplaneType{ID: id}, nil
}

func (m *MockFleetDB) ListAirplaneTypes(_ context.Context) ([]*models.AirplaneType, error) {
	return nil, nil
}

func (m *MockFleetDB) AirplaneTypeExists(_ context.Context, id int64) (bool, error) {
	return m.airplaneTypes[id], nil
}

func (m *MockFleetDB) CreateAirplane(_ context.Context, airplane *models.Airplane) error {
	airplane.ID = m.nextID
	m.nextID++
	m.airplanes[airplane.ID] = true
	return nil
}

func (m *MockFleetDB) GetAirplaneByID(_ context.Context, id int64) (*models.Airplane, error) {
	if !m.airplanes[id] {
		return nil, errs.NotFound("airplane", id)
	}
	return &models.Airplane{ID: id}, nil
}

func (m *MockFleetDB) ListAirplanes(_ context.Context) ([]*models.Airplane, error) {
	return nil, nil
}

func (m *MockFleetDB) AirplaneExists(_ context.Context, id int64) (bool, error) {
	return m.airplanes[id], nil
}

func (m *MockFleetDB) CreateTicketClass(_ context.Context, ticketClass *models.TicketClass) error {
	ticketClass.ID = m.nextID
	m.nextID++
	m.ticketClasses[ticketClass.ID] = true
	return nil
}

func (m *MockFleetDB) ListTicketClasses(_ context.Context) ([]*models.TicketClass, error) {
	return nil, nil
}

func (m *MockFleetDB) TicketClassExists(_ context.Context, id int64) (bool, error) {
	return m.ticketClasses[id], nil
}

func (m *MockFleetDB) CreateTariff(_ context.Context, tariff *models.Tariff) error {
	for _, existing := range m.tariffs {
		if existing.Code == tariff.Code {
			return errs.Validation("code", "tariff code already exists")
		}
	}
	tariff.ID = m.nextID
	m.nextID++
	m.tariffs = append(m.tariffs, tariff)
	return nil
}

func (m *MockFleetDB) ListTariffs(_ context.Context) ([]*models.Tariff, error) {
	return m.tariffs, nil
}

func (m *MockFleetDB) CreateSeat(_ context.Context, seat *models.Seat) error {
	for _, existing := range m.seats {
		if existing.AirplaneID == seat.AirplaneID && existing.Row == seat.Row && existing.Seat == seat.Seat {
			return errs.Validation("seat", "seat slot already exists in this airplane")
		}
	}
	seat.ID = m.nextID
	m.nextID++
	m.seats = append(m.seats, seat)
	return nil
}

func (m *MockFleetDB) GetSeatByID(_ context.Context, id int64) (*models.Seat, error) {
	for _, s := range m.seats {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, errs.NotFound("seat", id)
}

func (m *MockFleetDB) ListSeats(_ context.Context, airplaneID int64) ([]*models.Seat, error) {
	var out []*models.Seat
	for _, s := range m.seats {
		if airplaneID == 0 || s.AirplaneID == airplaneID {
			out = append(out, s)
		}
	}
	return out, nil
}

func seededFleetDB() *MockFleetDB {
	db := NewMockFleetDB()
	db.airplanes[1] = true
	db.ticketClasses[2] = true
	db.airplaneTypes[3] = true
	return db
}

func TestCreateSeatNumberBelowMinimum(t *testing.T) {
	svc := fleet.NewFleetService(seededFleetDB())

	err := svc.CreateSeat(context.Background(), &models.Seat{AirplaneID: 1, Row: 1, Seat: 0, TicketClassID: 2})
	var ve *errs.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "seat", ve.Field)
}

func TestCreateSeatRowBelowMinimum(t *testing.T) {
	svc := fleet.NewFleetService(seededFleetDB())

	err := svc.CreateSeat(context.Background(), &models.Seat{AirplaneID: 1, Row: 0, Seat: 1, TicketClassID: 2})
	var ve *errs.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "row", ve.Field)
}

func TestCreateSeatUnknownAirplane(t *testing.T) {
	svc := fleet.NewFleetService(seededFleetDB())

	err := svc.CreateSeat(context.Background(), &models.Seat{AirplaneID: 99, Row: 1, Seat: 1, TicketClassID: 2})
	var nf *errs.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "airplane", nf.Entity)
}

func TestCreateSeatDuplicateSlot(t *testing.T) {
	db := seededFleetDB()
	svc := fleet.NewFleetService(db)
	ctx := context.Background()

	require.NoError(t, svc.CreateSeat(ctx, &models.Seat{AirplaneID: 1, Row: 1, Seat: 1, TicketClassID: 2}))
	err := svc.CreateSeat(ctx, &models.Seat{AirplaneID: 1, Row: 1, Seat: 1, TicketClassID: 2})
	var ve *errs.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Len(t, db.seats, 1)
}

func TestCreateRouteSameSourceAndDestination(t *testing.T) {
	db := seededFleetDB()
	db.airports[5] = &models.Airport{ID: 5}
	svc := fleet.NewFleetService(db)

	err := svc.CreateRoute(context.Background(), &models.Route{SourceID: 5, DestinationID: 5, Distance: 100})
	var ve *errs.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestCreateRouteUnknownAirport(t *testing.T) {
	db := seededFleetDB()
	db.airports[5] = &models.Airport{ID: 5}
	svc := fleet.NewFleetService(db)

	err := svc.CreateRoute(context.Background(), &models.Route{SourceID: 5, DestinationID: 6, Distance: 100})
	var nf *errs.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "airport", nf.Entity)
}

func TestCreateTariffDuplicateCode(t *testing.T) {
	svc := fleet.NewFleetService(seededFleetDB())
	ctx := context.Background()

	require.NoError(t, svc.CreateTariff(ctx, &models.Tariff{Code: "ECO-FLEX", Name: "Economy Flex", TicketClassID: 2}))
	err := svc.CreateTariff(ctx, &models.Tariff{Code: "ECO-FLEX", Name: "Duplicate", TicketClassID: 2})
	var ve *errs.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestCreateAirplaneUnknownType(t *testing.T) {
	svc := fleet.NewFleetService(seededFleetDB())

	err := svc.CreateAirplane(context.Background(), &models.Airplane{Name: "Skyliner", AirplaneTypeID: 99})
	var nf *errs.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "airplane_type", nf.Entity)
}
