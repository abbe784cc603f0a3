package db

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"skylink/internal/database"
	"skylink/internal/errs"
	"skylink/internal/models"
)

type DB struct {
	Bun *bun.DB
}

func (d *DB) GetFlightByID(ctx context.Context, id int64) (*models.Flight, error) {
	var flight models.Flight
	err := d.Bun.NewSelect().
		Model(&flight).
		Relation("Route").
		Relation("Route.Source").
		Relation("Route.Destination").
		Relation("Airplane").
		Relation("Crew").
		Where("flight.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, errs.NotFound("flight", id)
		}
		return nil, err
	}
	return &flight, nil
}

func (d *DB) ListFlights(ctx context.Context) ([]*models.Flight, error) {
	var flights []*models.Flight
	err := d.Bun.NewSelect().
		Model(&flights).
		Relation("Route").
		Relation("Route.Source").
		Relation("Route.Destination").
		Relation("Airplane").
		Relation("Crew").
		Order("flight.id").
		Scan(ctx)
	return flights, err
}

func (d *DB) FlightExists(ctx context.Context, id int64) (bool, error) {
	return d.Bun.NewSelect().
		Model((*models.Flight)(nil)).
		Where("id = ?", id).
		Exists(ctx)
}

// CreateFlight inserts the flight, its crew assignments and one FlightSeat
// per seat of the assigned airplane, all in one transaction. The sellable
// inventory is materialized here so availability is defined from the first
// read.
func (d *DB) CreateFlight(ctx context.Context, flight *models.Flight, crewIDs []int64) error {
	return d.Bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(flight).Exec(ctx); err != nil {
			return fmt.Errorf("insert flight: %w", err)
		}

		if len(crewIDs) > 0 {
			links := make([]models.FlightCrew, 0, len(crewIDs))
			for _, crewID := range crewIDs {
				links = append(links, models.FlightCrew{FlightID: flight.ID, CrewID: crewID})
			}
			if _, err := tx.NewInsert().Model(&links).Exec(ctx); err != nil {
				return fmt.Errorf("insert flight crew: %w", err)
			}
		}

		var seats []*models.Seat
		if err := tx.NewSelect().
			Model(&seats).
			Where("airplane_id = ?", flight.AirplaneID).
			Order("row", "seat").
			Scan(ctx); err != nil {
			return fmt.Errorf("load airplane seats: %w", err)
		}
		if len(seats) == 0 {
			return nil
		}

		bindings := make([]models.FlightSeat, 0, len(seats))
		for _, seat := range seats {
			bindings = append(bindings, models.FlightSeat{SeatID: seat.ID, FlightID: flight.ID})
		}
		if _, err := tx.NewInsert().Model(&bindings).Exec(ctx); err != nil {
			return fmt.Errorf("materialize flight seats: %w", err)
		}
		return nil
	})
}

func (d *DB) RouteExists(ctx context.Context, id int64) (bool, error) {
	return d.Bun.NewSelect().
		Model((*models.Route)(nil)).
		Where("id = ?", id).
		Exists(ctx)
}

func (d *DB) AirplaneExists(ctx context.Context, id int64) (bool, error) {
	return d.Bun.NewSelect().
		Model((*models.Airplane)(nil)).
		Where("id = ?", id).
		Exists(ctx)
}

func (d *DB) GetSeatByID(ctx context.Context, id int64) (*models.Seat, error) {
	var seat models.Seat
	err := d.Bun.NewSelect().
		Model(&seat).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, errs.NotFound("seat", id)
		}
		return nil, err
	}
	return &seat, nil
}

// CreateFlightSeat persists a single binding. Airplane consistency is
// checked by the service before this is called; the (seat, flight) unique
// constraint still backstops duplicate bindings here.
func (d *DB) CreateFlightSeat(ctx context.Context, binding *models.FlightSeat) error {
	_, err := d.Bun.NewInsert().Model(binding).Exec(ctx)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return errs.Validation("flight_seat", "seat is already bound to this flight")
		}
		return err
	}
	return nil
}

func (d *DB) GetFlightSeatByID(ctx context.Context, id int64) (*models.FlightSeat, error) {
	var binding models.FlightSeat
	err := d.Bun.NewSelect().
		Model(&binding).
		Relation("Seat").
		Relation("Seat.Airplane").
		Relation("Seat.TicketClass").
		Relation("Flight").
		Relation("Flight.Route").
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

func (d *DB) ListFlightSeats(ctx context.Context, flightID int64) ([]*models.FlightSeat, error) {
	var bindings []*models.FlightSeat
	q := d.Bun.NewSelect().
		Model(&bindings).
		Relation("Seat").
		Relation("Seat.TicketClass").
		Order("flight_seat.id")
	if flightID > 0 {
		q = q.Where("flight_seat.flight_id = ?", flightID)
	}
	err := q.Scan(ctx)
	return bindings, err
}

func (d *DB) ListCrews(ctx context.Context) ([]*models.Crew, error) {
	var crews []*models.Crew
	err := d.Bun.NewSelect().Model(&crews).Order("id").Scan(ctx)
	return crews, err
}

func (d *DB) CreateCrew(ctx context.Context, crew *models.Crew) error {
	_, err := d.Bun.NewInsert().Model(crew).Exec(ctx)
	return err
}

func (d *DB) CrewsExist(ctx context.Context, ids []int64) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	count, err := d.Bun.NewSelect().
		Model((*models.Crew)(nil)).
		Where("id IN (?)", bun.In(ids)).
		Count(ctx)
	if err != nil {
		return false, err
	}
	return count == len(ids), nil
}
