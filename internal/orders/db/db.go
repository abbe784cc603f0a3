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

func (d *DB) CreateOrder(ctx context.Context, order *models.Order) error {
	_, err := d.Bun.NewInsert().Model(order).Exec(ctx)
	return err
}

func (d *DB) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := d.Bun.NewSelect().
		Model(&order).
		Relation("User").
		Relation("Tickets").
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

func (d *DB) ListOrders(ctx context.Context) ([]*models.Order, error) {
	var orders []*models.Order
	err := d.Bun.NewSelect().
		Model(&orders).
		Relation("User").
		Relation("Tickets").
		Order("o.id").
		Scan(ctx)
	return orders, err
}

func (d *DB) ListOrdersByUser(ctx context.Context, userID int64) ([]*models.Order, error) {
	var orders []*models.Order
	err := d.Bun.NewSelect().
		Model(&orders).
		Relation("Tickets").
		Where("o.user_id = ?", userID).
		Order("o.id").
		Scan(ctx)
	return orders, err
}

func (d *DB) UserExists(ctx context.Context, id int64) (bool, error) {
	return d.Bun.NewSelect().
		Model((*models.User)(nil)).
		Where("id = ?", id).
		Exists(ctx)
}

func (d *DB) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := d.Bun.NewSelect().
		Model(&user).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, errs.NotFound("user", id)
		}
		return nil, err
	}
	return &user, nil
}
