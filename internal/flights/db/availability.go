package db

import (
	"context"
	"time"

	"skylink/internal/database"
	"skylink/internal/errs"
	"skylink/internal/models"
)

// Both counts are anchored on flight_seats, the unique mediating relation
// between seat inventory and the flight. Counting through any other join
// path (airplane seats, crew, route) fans out rows and silently corrupts
// the numbers, so each count is a scalar subquery with DISTINCT ids.
const (
	totalSeatsExpr = `(SELECT COUNT(DISTINCT fs.id)
		FROM flight_seats AS fs
		WHERE fs.flight_id = flight.id)`
	bookedSeatsExpr = `(SELECT COUNT(DISTINCT t.id)
		FROM tickets AS t
		JOIN flight_seats AS fs ON fs.id = t.flight_seat_id
		WHERE fs.flight_id = flight.id)`
)

// GetAvailability returns total, booked and available seat counts for one
// flight. Snapshot read: no locking, values may be stale by the time the
// caller acts on them.
func (d *DB) GetAvailability(ctx context.Context, flightID int64) (*models.FlightAvailability, error) {
	var row models.FlightAvailability
	err := d.Bun.NewSelect().
		Model((*models.Flight)(nil)).
		ColumnExpr("flight.id AS flight_id").
		ColumnExpr(totalSeatsExpr + " AS total_seats").
		ColumnExpr(bookedSeatsExpr + " AS booked_seats").
		Where("flight.id = ?", flightID).
		Scan(ctx, &row)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, errs.NotFound("flight", flightID)
		}
		return nil, err
	}
	row.AvailableSeats = row.TotalSeats - row.BookedSeats
	return &row, nil
}

// GetAvailabilityForAll computes the same three counts for every flight
// matching the filters in one batched pass, so list views do not issue one
// query per flight.
func (d *DB) GetAvailabilityForAll(ctx context.Context, routeID int64, from, to time.Time) ([]models.FlightAvailability, error) {
	q := d.Bun.NewSelect().
		Model((*models.Flight)(nil)).
		ColumnExpr("flight.id AS flight_id").
		ColumnExpr(totalSeatsExpr + " AS total_seats").
		ColumnExpr(bookedSeatsExpr + " AS booked_seats").
		Order("flight.id")
	if routeID > 0 {
		q = q.Where("flight.route_id = ?", routeID)
	}
	if !from.IsZero() {
		q = q.Where("flight.departure_time >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("flight.departure_time <= ?", to)
	}

	var rows []models.FlightAvailability
	if err := q.Scan(ctx, &rows); err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].AvailableSeats = rows[i].TotalSeats - rows[i].BookedSeats
	}
	return rows, nil
}
