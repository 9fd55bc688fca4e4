package dto

type TermDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type YearRangeDTO struct {
	Display   string `json:"display"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
	ProductID int64  `json:"product_id"`
}

// ProductSummary is the aggregated record the modal renders after full
// resolution. Field names are the legacy wire names the widget script expects.
type ProductSummary struct {
	ProductID         int64    `json:"product_id"`
	ProductName       string   `json:"product_name"`
	BrandName         string   `json:"brand_name"`
	ModelName         string   `json:"model_name"`
	YearRange         string   `json:"year_range"`
	CarImages         []string `json:"car_images"`
	CarImage          string   `json:"car_image"`
	TowbarPrice       float64  `json:"towbar_price"`
	ElectricalPrice   float64  `json:"electrical_price"`
	TotalPrice        float64  `json:"total_price"`
	TotalPriceDisplay string   `json:"total_price_display"`
	RatingKg          float64  `json:"rating_kg"`
	TowbarImage       string   `json:"towbar_image"`
	ProductURL        string   `json:"product_url"`
}
