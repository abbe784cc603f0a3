package db

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"skylink/internal/database"
	"skylink/internal/errs"
	"skylink/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// GetTicketWithDetails loads everything the PDF renderer needs in one query.
func (d *DB) GetTicketWithDetails(ctx context.Context, ticketID int64) (*models.Ticket, error) {
	var ticket models.Ticket
	err := d.Bun.NewSelect().
		Model(&ticket).
		Relation("FlightSeat").
		Relation("FlightSeat.Seat").
		Relation("FlightSeat.Seat.TicketClass").
		Relation("FlightSeat.Flight").
		Relation("FlightSeat.Flight.Route").
		Relation("FlightSeat.Flight.Route.Source").
		Relation("FlightSeat.Flight.Route.Destination").
		Relation("Order").
		Relation("Order.User").
		Where("ticket.id = ?", ticketID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, errs.NotFound("ticket", ticketID)
		}
		return nil, err
	}
	return &ticket, nil
}

// ListTicketIDsForUser returns the ids of every ticket across the user's
// orders; the delivery loop loads each one with full details.
func (d *DB) ListTicketIDsForUser(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := d.Bun.NewSelect().
		Model((*models.Ticket)(nil)).
		Column("ticket.id").
		Join("JOIN orders AS uo ON uo.id = ticket.order_id").
		Where("uo.user_id = ?", userID).
		Order("ticket.id").
		Scan(ctx, &ids)
	return ids, err
}

func (d *DB) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := d.Bun.NewSelect().Model(&user).Where("id = ?", id).Limit(1).Scan(ctx)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, errs.NotFound("user", id)
		}
		return nil, err
	}
	return &user, nil
}

func (d *DB) ListActiveUsers(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	err := d.Bun.NewSelect().
		Model(&users).
		Where("is_active = ?", true).
		Order("id").
		Scan(ctx)
	return users, err
}

// SetTelegramChatID links a chat to the user so future tickets go straight
// to telegram.
func (d *DB) SetTelegramChatID(ctx context.Context, userID, chatID int64) error {
	res, err := d.Bun.NewUpdate().
		Model((*models.User)(nil)).
		Set("telegram_chat_id = ?", chatID).
		Where("id = ?", userID).
		Exec(ctx)
	if err != nil {
		return err
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return errs.NotFound("user", userID)
	}
	return nil
}

// ---------------- outbox ----------------

func (d *DB) EnqueuePending(ctx context.Context, userID int64, pdfPath string) error {
	pending := &models.PendingTicket{
		UserID:    userID,
		PDFPath:   pdfPath,
		CreatedAt: time.Now(),
	}
	_, err := d.Bun.NewInsert().Model(pending).Exec(ctx)
	return err
}

func (d *DB) ListUndelivered(ctx context.Context) ([]*models.PendingTicket, error) {
	var pending []*models.PendingTicket
	err := d.Bun.NewSelect().
		Model(&pending).
		Relation("User").
		Where("delivered = ?", false).
		Order("pending_ticket.id").
		Scan(ctx)
	return pending, err
}

func (d *DB) ListUndeliveredForUser(ctx context.Context, userID int64) ([]*models.PendingTicket, error) {
	var pending []*models.PendingTicket
	err := d.Bun.NewSelect().
		Model(&pending).
		Where("delivered = ? AND user_id = ?", false, userID).
		Order("id").
		Scan(ctx)
	return pending, err
}

func (d *DB) MarkDelivered(ctx context.Context, id int64) error {
	_, err := d.Bun.NewUpdate().
		Model((*models.PendingTicket)(nil)).
		Set("delivered = ?", true).
		Where("id = ?", id).
		Exec(ctx)
	return err
}
