package tickets

import (
	"context"
	"fmt"
	"time"

	"skylink/internal/errs"
	"skylink/internal/logger"
	"skylink/internal/models"
)

type DBLayer interface {
	CreateTicket(ctx context.Context, ticket *models.Ticket) error
	GetTicketByID(ctx context.Context, id int64) (*models.Ticket, error)
	ListTickets(ctx context.Context) ([]*models.Ticket, error)
	GetFlightSeatWithFlight(ctx context.Context, id int64) (*models.FlightSeat, error)
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	GetTicketsByOrder(ctx context.Context, orderID int64) ([]*models.Ticket, error)
	GetTicketsByUser(ctx context.Context, userID int64) ([]*models.Ticket, error)
}

type EventPublisher interface {
	PublishTicketIssued(event models.TicketIssuedEvent) error
}

type TicketService struct {
	DB     DBLayer
	Events EventPublisher
	Logger *logger.Logger
}

func NewTicketService(db DBLayer, events EventPublisher, log *logger.Logger) *TicketService {
	return &TicketService{DB: db, Events: events, Logger: log}
}

// IssueTicket claims a flight seat for an order. Existence and price are
// validated up front; the double-booking race itself is settled by the
// storage constraint inside CreateTicket, not by a pre-check, so two
// concurrent calls on the same seat cannot both win.
func (s *TicketService) IssueTicket(ctx context.Context, flightSeatID, orderID int64, price float64) (*models.Ticket, error) {
	if price < 0 {
		return nil, errs.Validation("price", "must not be negative")
	}

	binding, err := s.DB.GetFlightSeatWithFlight(ctx, flightSeatID)
	if err != nil {
		return nil, err
	}
	order, err := s.DB.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	ticket := &models.Ticket{
		FlightSeatID: binding.ID,
		OrderID:      order.ID,
		Price:        price,
		IssuedAt:     time.Now(),
	}
	if err := s.DB.CreateTicket(ctx, ticket); err != nil {
		return nil, err
	}

	if s.Logger != nil {
		s.Logger.LogTicket("ISSUE", ticket.ID, fmt.Sprintf("flight seat %d claimed for order %d", binding.ID, order.ID))
	}

	if s.Events != nil {
		event := models.TicketIssuedEvent{
			TicketID: ticket.ID,
			OrderID:  order.ID,
			UserID:   order.UserID,
			FlightID: binding.FlightID,
		}
		if err := s.Events.PublishTicketIssued(event); err != nil && s.Logger != nil {
			// Delivery is best-effort; issuance already committed.
			s.Logger.Error("KAFKA", fmt.Sprintf("failed to publish ticket issued event: %v", err))
		}
	}

	return ticket, nil
}

func (s *TicketService) GetTicket(ctx context.Context, id int64) (*models.Ticket, error) {
	return s.DB.GetTicketByID(ctx, id)
}

func (s *TicketService) ListTickets(ctx context.Context) ([]*models.Ticket, error) {
	return s.DB.ListTickets(ctx)
}

// GetTicketsByOrder is the read contract toward the document pipeline.
func (s *TicketService) GetTicketsByOrder(ctx context.Context, orderID int64) ([]*models.Ticket, error) {
	if _, err := s.DB.GetOrderByID(ctx, orderID); err != nil {
		return nil, err
	}
	return s.DB.GetTicketsByOrder(ctx, orderID)
}

func (s *TicketService) GetTicketsByUser(ctx context.Context, userID int64) ([]*models.Ticket, error) {
	return s.DB.GetTicketsByUser(ctx, userID)
}
