package tickets_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skylink/internal/errs"
	"skylink/internal/models"
	"skylink/internal/tickets"
)

type MockTicketDB struct {
	flightSeats map[int64]*models.FlightSeat
	orders      map[int64]*models.Order
	tickets     map[int64]*models.Ticket
	booked      map[int64]bool
	nextID      int64
}

func NewMockTicketDB() *MockTicketDB {
	return &MockTicketDB{
		flightSeats: make(map[int64]*models.FlightSeat),
		orders:      make(map[int64]*models.Order),
		tickets:     make(map[int64]*models.Ticket),
		booked:      make(map[int64]bool),
		nextID:      1,
	}
}

func (m *MockTicketDB) CreateTicket(_ context.Context, ticket *models.Ticket) error {
	if m.booked[ticket.FlightSeatID] {
		return errs.AlreadyBooked(ticket.FlightSeatID)
	}
	ticket.ID = m.nextID
	m.nextID++
	m.tickets[ticket.ID] = ticket
	m.booked[ticket.FlightSeatID] = true
	return nil
}

func (m *MockTicketDB) GetTicketByID(_ context.Context, id int64) (*models.Ticket, error) {
	ticket, ok := m.tickets[id]
	if !ok {
		return nil, errs.NotFound("ticket", id)
	}
	return ticket, nil
}

func (m *MockTicketDB) ListTickets(_ context.Context) ([]*models.Ticket, error) {
	out := make([]*models.Ticket, 0, len(m.tickets))
	for _, ticket := range m.tickets {
		out = append(out, ticket)
	}
	return out, nil
}

func (m *MockTicketDB) GetFlightSeatWithFlight(_ context.Context, id int64) (*models.FlightSeat, error) {
	binding, ok := m.flightSeats[id]
	if !ok {
		return nil, errs.NotFound("flight_seat", id)
	}
	return binding, nil
}

func (m *MockTicketDB) GetOrderByID(_ context.Context, id int64) (*models.Order, error) {
	order, ok := m.orders[id]
	if !ok {
		return nil, errs.NotFound("order", id)
	}
	return order, nil
}

func (m *MockTicketDB) GetTicketsByOrder(_ context.Context, orderID int64) ([]*models.Ticket, error) {
	var out []*models.Ticket
	for _, ticket := range m.tickets {
		if ticket.OrderID == orderID {
			out = append(out, ticket)
		}
	}
	return out, nil
}

func (m *MockTicketDB) GetTicketsByUser(_ context.Context, userID int64) ([]*models.Ticket, error) {
	var out []*models.Ticket
	for _, ticket := range m.tickets {
		order, ok := m.orders[ticket.OrderID]
		if ok && order.UserID == userID {
			out = append(out, ticket)
		}
	}
	return out, nil
}

type MockPublisher struct {
	events []models.TicketIssuedEvent
	err    error
}

func (m *MockPublisher) PublishTicketIssued(event models.TicketIssuedEvent) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

func seededDB() *MockTicketDB {
	db := NewMockTicketDB()
	db.flightSeats[10] = &models.FlightSeat{ID: 10, SeatID: 1, FlightID: 5}
	db.orders[20] = &models.Order{ID: 20, UserID: 30}
	return db
}

func TestIssueTicketNegativePrice(t *testing.T) {
	svc := tickets.NewTicketService(seededDB(), nil, nil)

	_, err := svc.IssueTicket(context.Background(), 10, 20, -1)
	var ve *errs.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "price", ve.Field)
}

func TestIssueTicketZeroPriceAllowed(t *testing.T) {
	svc := tickets.NewTicketService(seededDB(), nil, nil)

	ticket, err := svc.IssueTicket(context.Background(), 10, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, float64(0), ticket.Price)
}

func TestIssueTicketUnknownFlightSeat(t *testing.T) {
	svc := tickets.NewTicketService(seededDB(), nil, nil)

	_, err := svc.IssueTicket(context.Background(), 999, 20, 50)
	var nf *errs.NotFoundError
	assert.ErrorAs(t, err, &nf)
	assert.Equal(t, "flight_seat", nf.Entity)
}

func TestIssueTicketUnknownOrder(t *testing.T) {
	svc := tickets.NewTicketService(seededDB(), nil, nil)

	_, err := svc.IssueTicket(context.Background(), 10, 999, 50)
	var nf *errs.NotFoundError
	assert.ErrorAs(t, err, &nf)
	assert.Equal(t, "order", nf.Entity)
}

func TestIssueTicketSecondAttemptAlreadyBooked(t *testing.T) {
	db := seededDB()
	svc := tickets.NewTicketService(db, nil, nil)
	ctx := context.Background()

	_, err := svc.IssueTicket(ctx, 10, 20, 50)
	require.NoError(t, err)

	_, err = svc.IssueTicket(ctx, 10, 20, 50)
	var ab *errs.AlreadyBookedError
	require.ErrorAs(t, err, &ab)
	assert.Equal(t, int64(10), ab.FlightSeatID)
	assert.Len(t, db.tickets, 1)
}

func TestIssueTicketPublishesEvent(t *testing.T) {
	publisher := &MockPublisher{}
	svc := tickets.NewTicketService(seededDB(), publisher, nil)

	ticket, err := svc.IssueTicket(context.Background(), 10, 20, 75)
	require.NoError(t, err)

	require.Len(t, publisher.events, 1)
	event := publisher.events[0]
	assert.Equal(t, ticket.ID, event.TicketID)
	assert.Equal(t, int64(20), event.OrderID)
	assert.Equal(t, int64(30), event.UserID)
	assert.Equal(t, int64(5), event.FlightID)
}

func TestIssueTicketSurvivesPublishFailure(t *testing.T) {
	publisher := &MockPublisher{err: errors.New("broker unavailable")}
	svc := tickets.NewTicketService(seededDB(), publisher, nil)

	ticket, err := svc.IssueTicket(context.Background(), 10, 20, 75)
	require.NoError(t, err)
	assert.NotZero(t, ticket.ID)
}

func TestGetTicketsByOrderChecksOrderFirst(t *testing.T) {
	svc := tickets.NewTicketService(seededDB(), nil, nil)

	_, err := svc.GetTicketsByOrder(context.Background(), 999)
	var nf *errs.NotFoundError
	assert.ErrorAs(t, err, &nf)
	assert.Equal(t, "order", nf.Entity)
}
