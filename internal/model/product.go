package model

import "time"

type Product struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ProductFields carries the fitment and pricing attributes attached to a
// product. Years are pointers so an absent row or column reads as missing
// rather than zero; prices and rating default to 0 when absent.
type ProductFields struct {
	ProductID       int64    `db:"product_id"`
	YearStart       *int     `db:"year_start"`
	YearEnd         *int     `db:"year_end"`
	TowbarPrice     *float64 `db:"towbar_price"`
	ElectricalPrice *float64 `db:"electrical_price"`
	RatingKg        *float64 `db:"rating_kg"`
}

// YearRange is derived per request by scanning a model's products; it is
// never stored.
type YearRange struct {
	Display   string `json:"display"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
	ProductID int64  `json:"product_id"`
}
