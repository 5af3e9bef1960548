package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/auto72auto/wisebricks/internal/catalog"
	"github.com/auto72auto/wisebricks/internal/logger"
	"github.com/auto72auto/wisebricks/internal/models"
	"github.com/auto72auto/wisebricks/internal/pricing"
)

type gormStore struct {
	db  *gorm.DB
	log *logger.Logger
}

func New(db *gorm.DB, baseLog *logger.Logger) Store {
	return &gormStore{db: db, log: baseLog.With("component", "store")}
}

const setColumns = `
	s.set_number,
	s.name as title,
	s.pieces,
	s.release_year,
	s.theme,
	s.rrp_gbp,
	s.image_thumb_url,
	s.image_box_url,
	s.image_hero_url,
	s.variant`

func (s *gormStore) SetByNumber(ctx context.Context, setNumber string) (catalog.SetView, error) {
	var rows []map[string]interface{}
	err := s.db.WithContext(ctx).Raw(`
		select `+setColumns+`
		from sets s
		where s.set_number = ?
		order by s.variant asc
		limit 1
	`, setNumber).Scan(&rows).Error
	if err != nil {
		return catalog.SetView{}, fmt.Errorf("set lookup failed: %w", err)
	}
	if len(rows) == 0 {
		return catalog.SetView{}, ErrNotFound
	}
	return catalog.NormalizeRow(rows[0]), nil
}

type offerRow struct {
	RetailerKey string   `gorm:"column:retailer_key"`
	Retailer    string   `gorm:"column:retailer"`
	ProductURL  *string  `gorm:"column:product_url"`
	PriceGBP    *float64 `gorm:"column:price_gbp"`
	StockState  *string  `gorm:"column:stock_state"`
	RRPGBP      *float64 `gorm:"column:rrp_gbp"`
}

func (s *gormStore) CurrentOffers(ctx context.Context, setNumber string, variant int) ([]models.OfferView, error) {
	var rows []offerRow
	err := s.db.WithContext(ctx).Raw(`
		select
			c.retailer_key,
			coalesce(r.display_name, c.retailer_key) as retailer,
			c.product_url,
			c.price_gbp,
			c.stock_state,
			s.rrp_gbp
		from set_retailer_current c
		join sets s
			on s.set_number = c.set_number
			and s.variant = c.variant
		left join retailers r
			on r.retailer_key = c.retailer_key
		where c.set_number = ? and c.variant = ?
		order by retailer asc
	`, setNumber, variant).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("current offers query failed: %w", err)
	}

	offers := make([]models.OfferView, 0, len(rows))
	for _, r := range rows {
		state := ""
		if r.StockState != nil {
			state = *r.StockState
		}
		offers = append(offers, models.OfferView{
			RetailerKey: r.RetailerKey,
			Retailer:    r.Retailer,
			ProductURL:  r.ProductURL,
			PriceGBP:    r.PriceGBP,
			StockState:  models.NormalizeStockState(state),
			PctVsRRP:    pricing.PctVsRRP(r.PriceGBP, r.RRPGBP),
		})
	}
	return offers, nil
}

func (s *gormStore) Observations(ctx context.Context, setNumber string, variant int) ([]models.PriceObservation, error) {
	var obs []models.PriceObservation
	err := s.db.WithContext(ctx).
		Where("set_number = ? and variant = ? and price_gbp is not null", setNumber, variant).
		Order("observed_at asc").
		Find(&obs).Error
	if err != nil {
		return nil, fmt.Errorf("observations query failed: %w", err)
	}
	return obs, nil
}

func (s *gormStore) PrecedingPrice(ctx context.Context, setNumber string, variant int, retailerKey string) (*float64, error) {
	var rows []struct {
		PriceGBP *float64 `gorm:"column:price_gbp"`
	}
	err := s.db.WithContext(ctx).Raw(`
		select o.price_gbp
		from set_retailer_observation o
		where o.set_number = ?
			and o.variant = ?
			and o.retailer_key = ?
			and o.price_gbp is not null
		order by o.observed_at desc
		offset 1
		limit 1
	`, setNumber, variant, retailerKey).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("preceding observation query failed: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].PriceGBP, nil
}

type candidateRow struct {
	SetNumber           string     `gorm:"column:set_number"`
	Title               string     `gorm:"column:title"`
	Theme               *string    `gorm:"column:theme"`
	ReleaseYear         *int       `gorm:"column:release_year"`
	Pieces              *int       `gorm:"column:pieces"`
	RRPGBP              *float64   `gorm:"column:rrp_gbp"`
	BestCurrentPriceGBP *float64   `gorm:"column:best_current_price_gbp"`
	BestPriceRetailer   *string    `gorm:"column:best_price_retailer"`
	LatestObservedAt    *time.Time `gorm:"column:latest_observed_at"`
	Last7dAvgPriceGBP   *float64   `gorm:"column:last_7d_avg_price_gbp"`
}

func (s *gormStore) ComparableCandidates(ctx context.Context, excludeSetNumber string, theme *string, minRRP, maxRRP *float64) ([]models.ComparableCandidate, error) {
	query := `
		select
			s.set_number,
			s.name as title,
			s.theme,
			s.release_year,
			s.pieces,
			s.rrp_gbp,
			cheapest.price_gbp as best_current_price_gbp,
			cheapest.retailer as best_price_retailer,
			obs.latest_observed_at,
			obs.last_7d_avg_price_gbp
		from sets s
		left join lateral (
			select
				c.price_gbp,
				coalesce(r.display_name, c.retailer_key) as retailer
			from set_retailer_current c
			left join retailers r
				on r.retailer_key = c.retailer_key
			where c.set_number = s.set_number
				and c.variant = s.variant
				and c.price_gbp is not null
			order by c.price_gbp asc
			limit 1
		) cheapest on true
		left join lateral (
			select
				max(o.observed_at) as latest_observed_at,
				round((avg(o.price_gbp) filter (
					where o.observed_at >= now() - interval '7 day'
				))::numeric, 2) as last_7d_avg_price_gbp
			from set_retailer_observation o
			where o.set_number = s.set_number
				and o.variant = s.variant
				and o.price_gbp is not null
		) obs on true
		where s.set_number <> ?`
	args := []interface{}{excludeSetNumber}

	if theme != nil {
		query += " and s.theme = ?"
		args = append(args, *theme)
	}
	if minRRP != nil && maxRRP != nil {
		query += " and s.rrp_gbp is not null and s.rrp_gbp between ? and ?"
		args = append(args, *minRRP, *maxRRP)
	}

	var rows []candidateRow
	if err := s.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("comparable candidates query failed: %w", err)
	}

	cands := make([]models.ComparableCandidate, 0, len(rows))
	for _, r := range rows {
		title := strings.TrimSpace(r.Title)
		if title == "" {
			title = "Untitled set"
		}
		cands = append(cands, models.ComparableCandidate{
			SetNumber:           r.SetNumber,
			Title:               title,
			Theme:               r.Theme,
			ReleaseYear:         r.ReleaseYear,
			Pieces:              r.Pieces,
			RRPGBP:              r.RRPGBP,
			BestCurrentPriceGBP: r.BestCurrentPriceGBP,
			BestPriceRetailer:   r.BestPriceRetailer,
			BestPricePctVsRRP:   pricing.PctVsRRP(r.BestCurrentPriceGBP, r.RRPGBP),
			LatestObservedAt:    r.LatestObservedAt,
			Last7dAvgPriceGBP:   r.Last7dAvgPriceGBP,
		})
	}
	return cands, nil
}

func (s *gormStore) SearchSets(ctx context.Context, query string, themes []string) ([]catalog.SetView, error) {
	sql := `select ` + setColumns + ` from sets s`
	var conds []string
	var args []interface{}

	if q := strings.TrimSpace(query); q != "" {
		like := "%" + q + "%"
		conds = append(conds, `(s.set_number ilike ? or s.name ilike ? or coalesce(s.theme, '') ilike ?)`)
		args = append(args, like, like, like)
	}
	if len(themes) > 0 {
		conds = append(conds, `coalesce(nullif(trim(s.theme), ''), 'Unknown') in ?`)
		args = append(args, themes)
	}
	if len(conds) > 0 {
		sql += " where " + strings.Join(conds, " and ")
	}
	sql += " order by s.set_number asc, s.variant asc"

	var rows []map[string]interface{}
	if err := s.db.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("set search query failed: %w", err)
	}

	results := make([]catalog.SetView, 0, len(rows))
	for _, row := range rows {
		results = append(results, catalog.NormalizeRow(row))
	}
	return results, nil
}

type currentOfferRow struct {
	SetNumber   string   `gorm:"column:set_number"`
	Variant     int      `gorm:"column:variant"`
	RetailerKey string   `gorm:"column:retailer_key"`
	Title       string   `gorm:"column:title"`
	Retailer    *string  `gorm:"column:retailer"`
	PriceGBP    *float64 `gorm:"column:price_gbp"`
}

func (s *gormStore) CurrentPricedOffers(ctx context.Context) ([]models.CurrentOffer, error) {
	var rows []currentOfferRow
	err := s.db.WithContext(ctx).Raw(`
		select
			c.set_number,
			c.variant,
			c.retailer_key,
			s.name as title,
			r.display_name as retailer,
			c.price_gbp
		from set_retailer_current c
		join sets s
			on s.set_number = c.set_number
			and s.variant = c.variant
		left join retailers r
			on r.retailer_key = c.retailer_key
		where c.price_gbp is not null
		order by c.set_number asc, c.variant asc, c.retailer_key asc
	`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("current priced offers query failed: %w", err)
	}

	offers := make([]models.CurrentOffer, 0, len(rows))
	for _, r := range rows {
		offers = append(offers, models.CurrentOffer{
			SetNumber:   r.SetNumber,
			Variant:     r.Variant,
			RetailerKey: r.RetailerKey,
			Title:       r.Title,
			Retailer:    r.Retailer,
			PriceGBP:    r.PriceGBP,
		})
	}
	return offers, nil
}

func (s *gormStore) RecentlyUpdatedSets(ctx context.Context, limit int) ([]models.DropRow, error) {
	var rows []struct {
		SetNumber string   `gorm:"column:set_number"`
		Title     string   `gorm:"column:title"`
		NowPrice  *float64 `gorm:"column:now_price"`
	}
	err := s.db.WithContext(ctx).Raw(`
		select
			s.set_number,
			s.name as title,
			s.rrp_gbp as now_price
		from sets s
		where s.rrp_gbp is not null
		order by s.updated_at desc, s.set_number asc
		limit ?
	`, limit).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("recently updated sets query failed: %w", err)
	}

	out := make([]models.DropRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.DropRow{
			SetNumber: r.SetNumber,
			Title:     r.Title,
			NowPrice:  r.NowPrice,
		})
	}
	return out, nil
}

func (s *gormStore) ThemeSummaries(ctx context.Context, limit int) ([]models.ThemeSummary, error) {
	var rows []struct {
		Theme      string   `gorm:"column:theme"`
		SetCount   int      `gorm:"column:set_count"`
		FirstYear  *int     `gorm:"column:first_year"`
		LatestYear *int     `gorm:"column:latest_year"`
		AvgPieces  *float64 `gorm:"column:avg_pieces"`
	}
	err := s.db.WithContext(ctx).Raw(`
		select
			coalesce(nullif(trim(theme), ''), 'Unknown') as theme,
			count(*)::int as set_count,
			min(release_year) as first_year,
			max(release_year) as latest_year,
			round(avg(pieces)::numeric, 1) as avg_pieces
		from sets
		group by coalesce(nullif(trim(theme), ''), 'Unknown')
		order by set_count desc, theme asc
		limit ?
	`, limit).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("theme summary query failed: %w", err)
	}

	out := make([]models.ThemeSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.ThemeSummary{
			Theme:      r.Theme,
			SetCount:   r.SetCount,
			FirstYear:  r.FirstYear,
			LatestYear: r.LatestYear,
			AvgPieces:  r.AvgPieces,
		})
	}
	return out, nil
}
