package models

import (
	"github.com/uptrace/bun"
)

type Airport struct {
	bun.BaseModel `bun:"table:airports"`

	ID             int64   `bun:"id,pk,autoincrement" json:"id"`
	Name           string  `bun:"name,notnull" json:"name"`
	ClosestBigCity string  `bun:"closest_big_city" json:"closest_big_city"`
	AirportCode    string  `bun:"airport_code" json:"airport_code"`
	Coordinates    float64 `bun:"geographical_coordinates" json:"geographical_coordinates"`
}

type Route struct {
	bun.BaseModel `bun:"table:routes"`

	ID            int64  `bun:"id,pk,autoincrement" json:"id"`
	SourceID      int64  `bun:"source_id,notnull" json:"source_id"`
	DestinationID int64  `bun:"destination_id,notnull" json:"destination_id"`
	Distance      int    `bun:"distance" json:"distance"`
	CodeRoute     string `bun:"code_route" json:"code_route"`

	Source      *Airport `bun:"rel:belongs-to,join:source_id=id" json:"source,omitempty"`
	Destination *Airport `bun:"rel:belongs-to,join:destination_id=id" json:"destination,omitempty"`
}
