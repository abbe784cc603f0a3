package models

import (
	"github.com/uptrace/bun"
)

type TicketClass struct {
	bun.BaseModel `bun:"table:ticket_classes"`

	ID   int64  `bun:"id,pk,autoincrement" json:"id"`
	Name string `bun:"name,notnull" json:"name"`
}

type Tariff struct {
	bun.BaseModel `bun:"table:tariffs"`

	ID            int64  `bun:"id,pk,autoincrement" json:"id"`
	Code          string `bun:"code,notnull,unique" json:"code"`
	Name          string `bun:"name,notnull" json:"name"`
	TicketClassID int64  `bun:"ticket_class_id,notnull" json:"ticket_class_id"`

	TicketClass *TicketClass `bun:"rel:belongs-to,join:ticket_class_id=id" json:"ticket_class,omitempty"`
}

// Seat is one physical slot in an airplane cabin. (airplane, row, seat)
// is unique: no two seats share a slot.
type Seat struct {
	bun.BaseModel `bun:"table:seats"`

	ID            int64  `bun:"id,pk,autoincrement" json:"id"`
	AirplaneID    int64  `bun:"airplane_id,notnull,unique:seats_airplane_row_seat_uq" json:"airplane_id"`
	Row           int    `bun:"row,notnull,unique:seats_airplane_row_seat_uq" json:"row"`
	Seat          int    `bun:"seat,notnull,unique:seats_airplane_row_seat_uq" json:"seat"`
	SeatType      string `bun:"seat_type" json:"seat_type"`
	TicketClassID int64  `bun:"ticket_class_id,notnull" json:"ticket_class_id"`

	Airplane    *Airplane    `bun:"rel:belongs-to,join:airplane_id=id,on_delete:CASCADE" json:"airplane,omitempty"`
	TicketClass *TicketClass `bun:"rel:belongs-to,join:ticket_class_id=id" json:"ticket_class,omitempty"`
}

// SeatResponse is the read shape for seats: airplane and ticket class by name.
type SeatResponse struct {
	ID          int64  `json:"id"`
	Airplane    string `json:"airplane"`
	Seat        int    `json:"seat"`
	Row         int    `json:"row"`
	SeatType    string `json:"seat_type"`
	TicketClass string `json:"ticket_class"`
}
