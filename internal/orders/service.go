package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"skylink/internal/errs"
	"skylink/internal/logger"
	"skylink/internal/models"
)

type DBLayer interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	ListOrders(ctx context.Context) ([]*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID int64) ([]*models.Order, error)
	UserExists(ctx context.Context, id int64) (bool, error)
}

// SeatHolder is the advisory redis hold layer.
type SeatHolder interface {
	HoldSeats(ctx context.Context, flightSeatIDs []int64, owner string) (bool, error)
	ReleaseSeats(ctx context.Context, flightSeatIDs []int64, owner string) error
}

// TicketIssuer is the authoritative booking path.
type TicketIssuer interface {
	IssueTicket(ctx context.Context, flightSeatID, orderID int64, price float64) (*models.Ticket, error)
}

type OrderService struct {
	DB      DBLayer
	Holds   SeatHolder
	Tickets TicketIssuer
	Logger  *logger.Logger
}

func NewOrderService(db DBLayer, holds SeatHolder, tickets TicketIssuer, log *logger.Logger) *OrderService {
	return &OrderService{DB: db, Holds: holds, Tickets: tickets, Logger: log}
}

// PlaceOrder creates an order for the user and issues one ticket per
// requested flight seat. Seats are held in redis for the duration of the
// checkout to reduce contention; the ticket unique constraint decides any
// race that slips through. On the first issuance failure the remaining
// holds are released and the error is returned as-is; the order row and
// any tickets issued before the failure stand, so the caller can retry
// the unfilled seats or cancel the order.
func (s *OrderService) PlaceOrder(ctx context.Context, userID int64, req models.OrderRequest) (*models.OrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, errs.Validation("items", "order must contain at least one flight seat")
	}

	ok, err := s.DB.UserExists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if !ok {
		return nil, errs.NotFound("user", userID)
	}

	seatIDs := make([]int64, 0, len(req.Items))
	for _, item := range req.Items {
		seatIDs = append(seatIDs, item.FlightSeatID)
	}

	owner := uuid.NewString()
	if s.Holds != nil {
		held, err := s.Holds.HoldSeats(ctx, seatIDs, owner)
		if err != nil {
			return nil, fmt.Errorf("seat hold error: %w", err)
		}
		if !held {
			return nil, errs.AlreadyBooked(seatIDs[0])
		}
		defer func() {
			_ = s.Holds.ReleaseSeats(ctx, seatIDs, owner)
		}()
	}

	order := &models.Order{UserID: userID}
	if err := s.DB.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	if s.Logger != nil {
		s.Logger.LogOrder("PLACE", order.ID, fmt.Sprintf("user %d, %d seats", userID, len(req.Items)))
	}

	ticketIDs := make([]int64, 0, len(req.Items))
	for _, item := range req.Items {
		ticket, err := s.Tickets.IssueTicket(ctx, item.FlightSeatID, order.ID, item.Price)
		if err != nil {
			if s.Logger != nil {
				s.Logger.Warn("ORDER", fmt.Sprintf("order %d aborted at seat %d: %v", order.ID, item.FlightSeatID, err))
			}
			return nil, err
		}
		ticketIDs = append(ticketIDs, ticket.ID)
	}

	return &models.OrderResponse{
		OrderID:   order.ID,
		UserID:    userID,
		TicketIDs: ticketIDs,
	}, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	return s.DB.GetOrderByID(ctx, id)
}

func (s *OrderService) ListOrders(ctx context.Context) ([]*models.Order, error) {
	return s.DB.ListOrders(ctx)
}

func (s *OrderService) ListOrdersByUser(ctx context.Context, userID int64) ([]*models.Order, error) {
	return s.DB.ListOrdersByUser(ctx, userID)
}
