package models

// StockState is the normalized availability of a retailer offer.
type StockState string

const (
	StockInStock    StockState = "in_stock"
	StockOutOfStock StockState = "out_of_stock"
	StockPreorder   StockState = "preorder"
	StockUnknown    StockState = "unknown"
)

// NormalizeStockState maps any raw value onto the enum, collapsing
// unrecognized states to unknown.
func NormalizeStockState(raw string) StockState {
	switch StockState(raw) {
	case StockInStock, StockOutOfStock, StockPreorder:
		return StockState(raw)
	default:
		return StockUnknown
	}
}

type Retailer struct {
	ID          uint    `json:"-" gorm:"primaryKey"`
	RetailerKey string  `json:"retailer_key" gorm:"column:retailer_key;uniqueIndex;not null"`
	DisplayName *string `json:"display_name" gorm:"column:display_name"`
}

func (Retailer) TableName() string { return "retailers" }

// RetailerOffer is the current listing of a set at one retailer.
type RetailerOffer struct {
	ID          uint     `json:"-" gorm:"primaryKey"`
	SetNumber   string   `json:"set_number" gorm:"column:set_number;uniqueIndex:idx_current_tuple;not null"`
	Variant     int      `json:"variant" gorm:"column:variant;uniqueIndex:idx_current_tuple;default:0"`
	RetailerKey string   `json:"retailer_key" gorm:"column:retailer_key;uniqueIndex:idx_current_tuple;not null"`
	PriceGBP    *float64 `json:"price_gbp" gorm:"column:price_gbp"`
	StockState  string   `json:"stock_state" gorm:"column:stock_state"`
	ProductURL  *string  `json:"product_url" gorm:"column:product_url"`
}

func (RetailerOffer) TableName() string { return "set_retailer_current" }
