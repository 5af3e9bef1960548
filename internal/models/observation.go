package models

import "time"

// PriceObservation is one append-only price fact for a
// (set, variant, retailer) tuple.
type PriceObservation struct {
	ID          uint      `json:"-" gorm:"primaryKey"`
	SetNumber   string    `json:"set_number" gorm:"column:set_number;index:idx_obs_tuple;not null"`
	Variant     int       `json:"variant" gorm:"column:variant;index:idx_obs_tuple;default:0"`
	RetailerKey string    `json:"retailer_key" gorm:"column:retailer_key;index:idx_obs_tuple;not null"`
	ObservedAt  time.Time `json:"observed_at" gorm:"column:observed_at;index;not null"`
	PriceGBP    *float64  `json:"price_gbp" gorm:"column:price_gbp"`
	StockState  *string   `json:"stock_state" gorm:"column:stock_state"`
}

func (PriceObservation) TableName() string { return "set_retailer_observation" }
