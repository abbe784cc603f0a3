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

// ---------------- airports ----------------

func (d *DB) CreateAirport(ctx context.Context, airport *models.Airport) error {
	_, err := d.Bun.NewInsert().Model(airport).Exec(ctx)
	return err
}

func (d *DB) GetAirportByID(ctx context.Context, id int64) (*models.Airport, error) {
	var airport models.Airport
	err := d.Bun.NewSelect().Model(&airport).Where("id = ?", id).Limit(1).Scan(ctx)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, errs.NotFound("airport", id)
		}
		return nil, err
	}
	return &airport, nil
}

func (d *DB) ListAirports(ctx context.Context) ([]*models.Airport, error) {
	var airports []*models.Airport
	err := d.Bun.NewSelect().Model(&airports).Order("id").Scan(ctx)
	return airports, err
}

func (d *DB) AirportExists(ctx context.Context, id int64) (bool, error) {
	return d.Bun.NewSelect().Model((*models.Airport)(nil)).Where("id = ?", id).Exists(ctx)
}

// ---------------- routes ----------------

func (d *DB) CreateRoute(ctx context.Context, route *models.Route) error {
	_, err := d.Bun.NewInsert().Model(route).Exec(ctx)
	return err
}

func (d *DB) GetRouteByID(ctx context.Context, id int64) (*models.Route, error) {
	var route models.Route
	err := d.Bun.NewSelect().
		Model(&route).
		Relation("Source").
		Relation("Destination").
		Where("route.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, errs.NotFound("route", id)
		}
		return nil, err
	}
	return &route, nil
}

func (d *DB) ListRoutes(ctx context.Context) ([]*models.Route, error) {
	var routes []*models.Route
	err := d.Bun.NewSelect().
		Model(&routes).
		Relation("Source").
		Relation("Destination").
		Order("route.id").
		Scan(ctx)
	return routes, err
}

// ---------------- airplane types ----------------

func (d *DB) CreateAirplaneType(ctx context.Context, airplaneType *models.AirplaneType) error {
	_, err := d.Bun.NewInsert().Model(airplaneType).Exec(ctx)
	return err
}

func (d *DB) GetAirplaneTypeByID(ctx context.Context, id int64) (*models.AirplaneType, error) {
	var airplaneType models.AirplaneType
	err := d.Bun.NewSelect().Model(&airplaneType).Where("id = ?", id).Limit(1).Scan(ctx)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, errs.NotFound("airplane_type", id)
		}
		return nil, err
	}
	return &airplaneType, nil
}

func (d *DB) ListAirplaneTypes(ctx context.Context) ([]*models.AirplaneType, error) {
	var types []*models.AirplaneType
	err := d.Bun.NewSelect().Model(&types).Order("id").Scan(ctx)
	return types, err
}

func (d *DB) AirplaneTypeExists(ctx context.Context, id int64) (bool, error) {
	return d.Bun.NewSelect().Model((*models.AirplaneType)(nil)).Where("id = ?", id).Exists(ctx)
}

// ---------------- airplanes ----------------

func (d *DB) CreateAirplane(ctx context.Context, airplane *models.Airplane) error {
	_, err := d.Bun.NewInsert().Model(airplane).Exec(ctx)
	return err
}

func (d *DB) GetAirplaneByID(ctx context.Context, id int64) (*models.Airplane, error) {
	var airplane models.Airplane
	err := d.Bun.NewSelect().
		Model(&airplane).
		Relation("AirplaneType").
		Where("airplane.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, errs.NotFound("airplane", id)
		}
		return nil, err
	}
	return &airplane, nil
}

func (d *DB) ListAirplanes(ctx context.Context) ([]*models.Airplane, error) {
	var airplanes []*models.Airplane
	err := d.Bun.NewSelect().
		Model(&airplanes).
		Relation("AirplaneType").
		Order("airplane.id").
		Scan(ctx)
	return airplanes, err
}

func (d *DB) AirplaneExists(ctx context.Context, id int64) (bool, error) {
	return d.Bun.NewSelect().Model((*models.Airplane)(nil)).Where("id = ?", id).Exists(ctx)
}

// ---------------- ticket classes ----------------

func (d *DB) CreateTicketClass(ctx context.Context, ticketClass *models.TicketClass) error {
	_, err := d.Bun.NewInsert().Model(ticketClass).Exec(ctx)
	return err
}

func (d *DB) ListTicketClasses(ctx context.Context) ([]*models.TicketClass, error) {
	var classes []*models.TicketClass
	err := d.Bun.NewSelect().Model(&classes).Order("id").Scan(ctx)
	return classes, err
}

func (d *DB) TicketClassExists(ctx context.Context, id int64) (bool, error) {
	return d.Bun.NewSelect().Model((*models.TicketClass)(nil)).Where("id = ?", id).Exists(ctx)
}

// ---------------- tariffs ----------------

func (d *DB) CreateTariff(ctx context.Context, tariff *models.Tariff) error {
	_, err := d.Bun.NewInsert().Model(tariff).Exec(ctx)
	if err != nil && database.IsUniqueViolation(err) {
		return errs.Validation("code", "tariff code already exists")
	}
	return err
}

func (d *DB) ListTariffs(ctx context.Context) ([]*models.Tariff, error) {
	var tariffs []*models.Tariff
	err := d.Bun.NewSelect().
		Model(&tariffs).
		Relation("TicketClass").
		Order("tariff.code").
		Scan(ctx)
	return tariffs, err
}

// ---------------- seats ----------------

func (d *DB) CreateSeat(ctx context.Context, seat *models.Seat) error {
	_, err := d.Bun.NewInsert().Model(seat).Exec(ctx)
	if err != nil && database.IsUniqueViolation(err) {
		return errs.Validation("seat", "seat slot already exists in this airplane")
	}
	return err
}

func (d *DB) GetSeatByID(ctx context.Context, id int64) (*models.Seat, error) {
	var seat models.Seat
	err := d.Bun.NewSelect().
		Model(&seat).
		Relation("Airplane").
		Relation("TicketClass").
		Where("seat.id = ?", id).
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

func (d *DB) ListSeats(ctx context.Context, airplaneID int64) ([]*models.Seat, error) {
	var seats []*models.Seat
	q := d.Bun.NewSelect().
		Model(&seats).
		Relation("Airplane").
		Relation("TicketClass").
		Order("seat.airplane_id", "seat.row", "seat.seat")
	if airplaneID > 0 {
		q = q.Where("seat.airplane_id = ?", airplaneID)
	}
	err := q.Scan(ctx)
	return seats, err
}
