package models

import (
	"github.com/uptrace/bun"
)

type AirplaneType struct {
	bun.BaseModel `bun:"table:airplane_types"`

	ID   int64  `bun:"id,pk,autoincrement" json:"id"`
	Name string `bun:"name,notnull" json:"name"`
}

type Airplane struct {
	bun.BaseModel `bun:"table:airplanes"`

	ID             int64  `bun:"id,pk,autoincrement" json:"id"`
	Name           string `bun:"name,notnull" json:"name"`
	AirplaneTypeID int64  `bun:"airplane_type_id,notnull" json:"airplane_type_id"`

	AirplaneType *AirplaneType `bun:"rel:belongs-to,join:airplane_type_id=id" json:"airplane_type,omitempty"`
	Seats        []*Seat       `bun:"rel:has-many,join:id=airplane_id" json:"seats,omitempty"`
}
