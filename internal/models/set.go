package models

import "time"

// Set is one catalog entry. (SetNumber, Variant) is unique; re-releases of
// the same catalog number get distinct variants, with 0 as the default.
type Set struct {
	ID            uint      `json:"-" gorm:"primaryKey"`
	SetNumber     string    `json:"set_number" gorm:"column:set_number;uniqueIndex:idx_sets_number_variant;not null"`
	Variant       int       `json:"variant" gorm:"column:variant;uniqueIndex:idx_sets_number_variant;default:0"`
	Title         string    `json:"title" gorm:"column:name"`
	Pieces        *int      `json:"pieces" gorm:"column:pieces"`
	ReleaseYear   *int      `json:"release_year" gorm:"column:release_year"`
	Theme         *string   `json:"theme" gorm:"column:theme;index"`
	RRPGBP        *float64  `json:"rrp_gbp" gorm:"column:rrp_gbp"`
	ImageThumbURL *string   `json:"image_thumb_url" gorm:"column:image_thumb_url"`
	ImageBoxURL   *string   `json:"image_box_url" gorm:"column:image_box_url"`
	ImageHeroURL  *string   `json:"image_hero_url" gorm:"column:image_hero_url"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"column:updated_at;index"`
}

func (Set) TableName() string { return "sets" }
