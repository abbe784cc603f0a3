package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Ticket claims exactly one FlightSeat for one Order. The unique
// constraint on flight_seat_id is what makes a seat "booked".
type Ticket struct {
	bun.BaseModel `bun:"table:tickets"`

	ID           int64     `bun:"id,pk,autoincrement" json:"id"`
	FlightSeatID int64     `bun:"flight_seat_id,notnull,unique" json:"flight_seat_id"`
	OrderID      int64     `bun:"order_id,notnull" json:"order_id"`
	Price        float64   `bun:"price,notnull" json:"price"`
	IssuedAt     time.Time `bun:"issued_at,notnull" json:"issued_at"`

	FlightSeat *FlightSeat `bun:"rel:belongs-to,join:flight_seat_id=id,on_delete:CASCADE" json:"flight_seat,omitempty"`
	Order      *Order      `bun:"rel:belongs-to,join:order_id=id,on_delete:CASCADE" json:"order,omitempty"`
}

// PendingTicket is the delivery outbox: a rendered ticket document waiting
// for the user to link a telegram chat. Drained on link or by the sweeper.
type PendingTicket struct {
	bun.BaseModel `bun:"table:pending_tickets"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID    int64     `bun:"user_id,notnull" json:"user_id"`
	PDFPath   string    `bun:"pdf_path,notnull" json:"pdf_path"`
	Delivered bool      `bun:"delivered,notnull,default:false" json:"delivered"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`

	User *User `bun:"rel:belongs-to,join:user_id=id" json:"-"`
}

// TicketIssuedEvent is the payload published to Kafka after issuance; the
// notification worker consumes it.
type TicketIssuedEvent struct {
	TicketID int64 `json:"ticket_id"`
	OrderID  int64 `json:"order_id"`
	UserID   int64 `json:"user_id"`
	FlightID int64 `json:"flight_id"`
}
