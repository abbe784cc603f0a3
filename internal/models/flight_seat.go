package models

import (
	"github.com/uptrace/bun"
)

// FlightSeat materializes one seat as sellable inventory on one flight.
// (seat_id, flight_id) is unique, and the seat's airplane must match the
// flight's airplane; the count of these rows is the flight's capacity.
type FlightSeat struct {
	bun.BaseModel `bun:"table:flight_seats"`

	ID       int64 `bun:"id,pk,autoincrement" json:"id"`
	SeatID   int64 `bun:"seat_id,notnull,unique:flight_seats_seat_flight_uq" json:"seat_id"`
	FlightID int64 `bun:"flight_id,notnull,unique:flight_seats_seat_flight_uq" json:"flight_id"`

	Seat   *Seat   `bun:"rel:belongs-to,join:seat_id=id,on_delete:CASCADE" json:"seat,omitempty"`
	Flight *Flight `bun:"rel:belongs-to,join:flight_id=id,on_delete:CASCADE" json:"flight,omitempty"`
}
