package db

import (
	"context"

	"github.com/uptrace/bun"

	"skylink/internal/database"
	"skylink/internal/errs"
	"skylink/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// CreateTicket inserts the ticket row. The unique constraint on
// flight_seat_id is the authoritative double-booking guard: a lost race
// surfaces here as AlreadyBookedError, never as a raw driver error.
func (d *DB) CreateTicket(ctx context.Context, ticket *models.Ticket) error {
	_, err := d.Bun.NewInsert().Model(ticket).Exec(ctx)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return errs.AlreadyBooked(ticket.FlightSeatID)
		}
		return err
	}
	return nil
}

func (d *DB) GetTicketByID(ctx context.Context, id int64) (*models.Ticket, error) {
	var ticket models.Ticket
	err := d.Bun.NewSelect().
		Model(&ticket).
		Relation("FlightSeat").
		Relation("FlightSeat.Seat").
		Relation("Order").
		Where("ticket.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, errs.NotFound("ticket", id)
		}
		return nil, err
	}
	return &ticket, nil
}

func (d *DB) ListTickets(ctx context.Context) ([]*models.Ticket, error) {
	var tickets []*models.Ticket
	err := d.Bun.NewSelect().
		Model(&tickets).
		Relation("FlightSeat").
		Relation("Order").
		Order("ticket.id").
		Scan(ctx)
	return tickets, err
}

func (d *DB) GetFlightSeatWithFlight(ctx context.Context, id int64) (*models.FlightSeat, error) {
	var binding models.FlightSeat
	err := d.Bun.NewSelect().
		Model(&binding).
		Relation("Flight").
		Where("flight_seat.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, errs.NotFound("flight_seat", id)
		}
		return nil, err
	}
	return &binding, nil
}

func (d *DB) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := d.Bun.NewSelect().
		Model(&order).
		Relation("User").
		Where("o.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, errs.NotFound("order", id)
		}
		return nil, err
	}
	return &order, nil
}

// GetTicketsByOrder returns the tickets of one order with the nested
// flight, route and seat data the document pipeline renders from.
func (d *DB) GetTicketsByOrder(ctx context.Context, orderID int64) ([]*models.Ticket, error) {
	var tickets []*models.Ticket
	err := d.Bun.NewSelect().
		Model(&tickets).
		Relation("FlightSeat").
		Relation("FlightSeat.Seat").
		Relation("FlightSeat.Seat.TicketClass").
		Relation("FlightSeat.Flight").
		Relation("FlightSeat.Flight.Route").
		Relation("FlightSeat.Flight.Route.Source").
		Relation("FlightSeat.Flight.Route.Destination").
		Relation("Order").
		Relation("Order.User").
		Where("ticket.order_id = ?", orderID).
		Order("ticket.id").
		Scan(ctx)
	return tickets, err
}

// GetTicketsByUser returns every ticket across the user's orders, same
// nesting as GetTicketsByOrder.
func (d *DB) GetTicketsByUser(ctx context.Context, userID int64) ([]*models.Ticket, error) {
	var tickets []*models.Ticket
	err := d.Bun.NewSelect().
		Model(&tickets).
		Relation("FlightSeat").
		Relation("FlightSeat.Seat").
		Relation("FlightSeat.Seat.TicketClass").
		Relation("FlightSeat.Flight").
		Relation("FlightSeat.Flight.Route").
		Relation("FlightSeat.Flight.Route.Source").
		Relation("FlightSeat.Flight.Route.Destination").
		Relation("Order").
		Relation("Order.User").
		Join("JOIN orders AS uo ON uo.id = ticket.order_id").
		Where("uo.user_id = ?", userID).
		Order("ticket.id").
		Scan(ctx)
	return tickets, err
}
