package models

import (
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

type FlightStatus int

const (
	StatusScheduled FlightStatus = iota + 1
	StatusEnRoute
	StatusDelayed
	StatusCancelled
)

func (s FlightStatus) String() string {
	switch s {
	case StatusScheduled:
		return "SCHEDULED"
	case StatusEnRoute:
		return "EN_ROUTE"
	case StatusDelayed:
		return "DELAYED"
	case StatusCancelled:
		return "CANCELLED"
	default:
		return "UNKNOWN"
	}
}

type Crew struct {
	bun.BaseModel `bun:"table:crews"`

	ID        int64  `bun:"id,pk,autoincrement" json:"id"`
	FirstName string `bun:"first_name,notnull" json:"first_name"`
	LastName  string `bun:"last_name,notnull" json:"last_name"`
}

type Flight struct {
	bun.BaseModel `bun:"table:flights"`

	ID            int64        `bun:"id,pk,autoincrement" json:"id"`
	RouteID       int64        `bun:"route_id,notnull" json:"route_id"`
	AirplaneID    int64        `bun:"airplane_id,notnull" json:"airplane_id"`
	DepartureTime time.Time    `bun:"departure_time,notnull" json:"departure_time"`
	ArrivalTime   time.Time    `bun:"arrival_time,notnull" json:"arrival_time"`
	Status        FlightStatus `bun:"status,notnull" json:"status"`

	Route    *Route    `bun:"rel:belongs-to,join:route_id=id" json:"route,omitempty"`
	Airplane *Airplane `bun:"rel:belongs-to,join:airplane_id=id" json:"airplane,omitempty"`
	Crew     []*Crew   `bun:"m2m:flight_crews,join:Flight=Crew" json:"crew,omitempty"`
}

// FlightCrew joins flights and crews.
type FlightCrew struct {
	bun.BaseModel `bun:"table:flight_crews"`

	FlightID int64   `bun:"flight_id,pk" json:"flight_id"`
	CrewID   int64   `bun:"crew_id,pk" json:"crew_id"`
	Flight   *Flight `bun:"rel:belongs-to,join:flight_id=id,on_delete:CASCADE" json:"-"`
	Crew     *Crew   `bun:"rel:belongs-to,join:crew_id=id,on_delete:CASCADE" json:"-"`
}

// FlightCreateRequest is the scheduling payload.
type FlightCreateRequest struct {
	RouteID       int64        `json:"route_id"`
	AirplaneID    int64        `json:"airplane_id"`
	DepartureTime time.Time    `json:"departure_time"`
	ArrivalTime   time.Time    `json:"arrival_time"`
	Status        FlightStatus `json:"status"`
	CrewIDs       []int64      `json:"crew_ids"`
}

// FlightSeatCreateRequest binds one seat to one flight.
type FlightSeatCreateRequest struct {
	SeatID   int64 `json:"seat_id"`
	FlightID int64 `json:"flight_id"`
}

// FlightAvailability is one aggregated row per flight. AvailableSeats is
// always recomputed from TotalSeats-BookedSeats, never stored.
type FlightAvailability struct {
	FlightID       int64 `bun:"flight_id" json:"flight_id"`
	TotalSeats     int   `bun:"total_seats" json:"total_seats"`
	BookedSeats    int   `bun:"booked_seats" json:"booked_seats"`
	AvailableSeats int   `bun:"available_seats" json:"available_seats"`
}

// FlightResponse is the read shape for flights: route airports and the
// airplane by name, crew inline, status as text and a human duration.
type FlightResponse struct {
	ID                int64               `json:"id"`
	Route             *Route              `json:"route"`
	Airplane          string              `json:"airplane"`
	DepartureTime     time.Time           `json:"departure_time"`
	ArrivalTime       time.Time           `json:"arrival_time"`
	Status            string              `json:"status"`
	Crew              []*Crew             `json:"crew"`
	FormattedDuration string              `json:"formatted_duration"`
	Availability      *FlightAvailability `json:"availability,omitempty"`
}

// FormatDuration renders a flight duration as "6h 30m".
func FormatDuration(departure, arrival time.Time) string {
	d := arrival.Sub(departure)
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", hours, minutes)
}
