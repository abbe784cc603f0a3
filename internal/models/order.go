package models

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users"`

	ID             int64  `bun:"id,pk,autoincrement" json:"id"`
	Username       string `bun:"username,notnull,unique" json:"username"`
	Email          string `bun:"email,notnull" json:"email"`
	Phone          string `bun:"phone" json:"phone"`
	TelegramChatID int64  `bun:"telegram_chat_id,nullzero" json:"telegram_chat_id,omitempty"`
	IsActive       bool   `bun:"is_active,notnull,default:true" json:"is_active"`
}

// Order groups the tickets one user purchased together. Aliased to o
// because "order" needs quoting in SQL.
type Order struct {
	bun.BaseModel `bun:"table:orders,alias:o"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID    int64     `bun:"user_id,notnull" json:"user_id"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`

	User    *User     `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	Tickets []*Ticket `bun:"rel:has-many,join:id=order_id" json:"tickets,omitempty"`
}

// OrderRequest is the checkout payload: the flight seats the caller wants
// tickets for, priced per seat.
type OrderRequest struct {
	Items []OrderItem `json:"items"`
}

type OrderItem struct {
	FlightSeatID int64   `json:"flight_seat_id"`
	Price        float64 `json:"price"`
}

type OrderResponse struct {
	OrderID   int64   `json:"order_id"`
	UserID    int64   `json:"user_id"`
	TicketIDs []int64 `json:"ticket_ids"`
}
