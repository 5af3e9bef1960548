package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/auto72auto/wisebricks/internal/catalog"
	"github.com/auto72auto/wisebricks/internal/logger"
	"github.com/auto72auto/wisebricks/internal/models"
	"github.com/auto72auto/wisebricks/internal/store"
)

func fp(v float64) *float64 { return &v }
func sp(v string) *string   { return &v }

type fakeStore struct {
	sets map[string]catalog.SetView

	offers    []models.OfferView
	offersErr error

	observations []models.PriceObservation
	obsErr       error

	candidates []models.ComparableCandidate
	candErr    error

	searchResults []catalog.SetView
	searchErr     error

	currentOffers []models.CurrentOffer
	currentErr    error

	prev    map[string]*float64
	prevErr error

	recent    []models.DropRow
	recentErr error

	themes    []models.ThemeSummary
	themesErr error
}

func (f *fakeStore) SetByNumber(_ context.Context, setNumber string) (catalog.SetView, error) {
	if s, ok := f.sets[setNumber]; ok {
		return s, nil
	}
	return catalog.SetView{}, store.ErrNotFound
}

func (f *fakeStore) CurrentOffers(context.Context, string, int) ([]models.OfferView, error) {
	return f.offers, f.offersErr
}

func (f *fakeStore) Observations(context.Context, string, int) ([]models.PriceObservation, error) {
	return f.observations, f.obsErr
}

func (f *fakeStore) PrecedingPrice(_ context.Context, setNumber string, _ int, retailerKey string) (*float64, error) {
	if f.prevErr != nil {
		return nil, f.prevErr
	}
	return f.prev[setNumber+"/"+retailerKey], nil
}

func (f *fakeStore) ComparableCandidates(context.Context, string, *string, *float64, *float64) ([]models.ComparableCandidate, error) {
	return f.candidates, f.candErr
}

func (f *fakeStore) SearchSets(context.Context, string, []string) ([]catalog.SetView, error) {
	return f.searchResults, f.searchErr
}

func (f *fakeStore) CurrentPricedOffers(context.Context) ([]models.CurrentOffer, error) {
	return f.currentOffers, f.currentErr
}

func (f *fakeStore) RecentlyUpdatedSets(context.Context, int) ([]models.DropRow, error) {
	return f.recent, f.recentErr
}

func (f *fakeStore) ThemeSummaries(context.Context, int) ([]models.ThemeSummary, error) {
	return f.themes, f.themesErr
}

func newTestRouter(fs *fakeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupRoutes(r.Group("/api/v1"), fs, logger.NewNop())
	return r
}

func doGet(t *testing.T, r *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)

	var body map[string]interface{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid JSON response: %v: %s", err, w.Body.String())
		}
	}
	return w, body
}

func knownSet() catalog.SetView {
	return catalog.SetView{
		SetNumber: "75300", Title: "Imperial TIE Fighter",
		Theme: sp("Space"), RRPGBP: fp(89.99), Variant: 0,
	}
}

func TestGetSetReviewRequiresSetParam(t *testing.T) {
	r := newTestRouter(&fakeStore{sets: map[string]catalog.SetView{}})
	w, body := doGet(t, r, "/api/v1/sets/review")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", w.Code)
	}
	if body["error"] != "set query parameter is required" {
		t.Fatalf("unexpected error message: %v", body["error"])
	}
}

func TestGetSetReviewUnknownSet(t *testing.T) {
	r := newTestRouter(&fakeStore{sets: map[string]catalog.SetView{}})
	w, body := doGet(t, r, "/api/v1/sets/review?set=404404")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", w.Code)
	}
	if body["error"] != "Set not found" {
		t.Fatalf("unexpected error message: %v", body["error"])
	}
}

func TestGetSetReviewEmptyHistoryIsOK(t *testing.T) {
	fs := &fakeStore{sets: map[string]catalog.SetView{"75300": knownSet()}}
	r := newTestRouter(fs)
	w, body := doGet(t, r, "/api/v1/sets/review?set=75300")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want 200", w.Code)
	}

	history := body["history"].(map[string]interface{})
	if history["mode"] != "ok" {
		t.Fatalf("zero observations must still be mode ok, got %v", history["mode"])
	}
	if points := history["points"].([]interface{}); len(points) != 0 {
		t.Fatalf("expected empty points, got %d", len(points))
	}
}

func TestGetSetReviewHistoryFailureIsIsolated(t *testing.T) {
	fs := &fakeStore{
		sets:   map[string]catalog.SetView{"75300": knownSet()},
		obsErr: errors.New("relation does not exist"),
		candidates: []models.ComparableCandidate{
			{SetNumber: "75301", Title: "TIE Bomber", RRPGBP: fp(92)},
		},
	}
	r := newTestRouter(fs)
	w, body := doGet(t, r, "/api/v1/sets/review?set=75300")
	if w.Code != http.StatusOK {
		t.Fatalf("history failure must not fail the response, status=%d", w.Code)
	}

	history := body["history"].(map[string]interface{})
	if history["mode"] != "unavailable" {
		t.Fatalf("history mode=%v, want unavailable", history["mode"])
	}
	comparables := body["comparables"].(map[string]interface{})
	if comparables["mode"] != "ok" {
		t.Fatalf("comparables must be unaffected, mode=%v", comparables["mode"])
	}
	if results := comparables["results"].([]interface{}); len(results) != 1 {
		t.Fatalf("expected 1 comparable, got %d", len(results))
	}
}

func TestGetSetReviewParamClamping(t *testing.T) {
	fs := &fakeStore{sets: map[string]catalog.SetView{"75300": knownSet()}}
	r := newTestRouter(fs)
	_, body := doGet(t, r, "/api/v1/sets/review?set=75300&history_weeks=9999&comparables_limit=50")

	history := body["history"].(map[string]interface{})
	if history["weeks_requested"].(float64) != 104 {
		t.Fatalf("history_weeks not clamped: %v", history["weeks_requested"])
	}
	comparables := body["comparables"].(map[string]interface{})
	if comparables["limit"].(float64) != 20 {
		t.Fatalf("comparables_limit not clamped: %v", comparables["limit"])
	}
}

func TestGetSetReviewSnapshot(t *testing.T) {
	fs := &fakeStore{
		sets: map[string]catalog.SetView{"75300": knownSet()},
		offers: []models.OfferView{
			{RetailerKey: "a", Retailer: "A", PriceGBP: fp(95), StockState: models.StockInStock},
			{RetailerKey: "b", Retailer: "B", PriceGBP: fp(85), StockState: models.StockInStock},
			{RetailerKey: "c", Retailer: "C", PriceGBP: nil, StockState: models.StockUnknown},
		},
	}
	r := newTestRouter(fs)
	_, body := doGet(t, r, "/api/v1/sets/review?set=75300")

	snapshot := body["snapshot"].(map[string]interface{})
	if snapshot["retailer_count"].(float64) != 3 {
		t.Fatalf("retailer_count=%v", snapshot["retailer_count"])
	}
	if snapshot["lowest_current_price_gbp"].(float64) != 85 {
		t.Fatalf("lowest=%v", snapshot["lowest_current_price_gbp"])
	}
	if snapshot["highest_current_price_gbp"].(float64) != 95 {
		t.Fatalf("highest=%v", snapshot["highest_current_price_gbp"])
	}
	if snapshot["latest_observation_at"] != nil {
		t.Fatalf("no history means null latest observation, got %v", snapshot["latest_observation_at"])
	}
}

func TestGetSetProductURLFilter(t *testing.T) {
	fs := &fakeStore{
		sets: map[string]catalog.SetView{"75300": knownSet()},
		offers: []models.OfferView{
			{RetailerKey: "a", Retailer: "A", ProductURL: sp("https://example.com/a"), PriceGBP: fp(95)},
			{RetailerKey: "b", Retailer: "B", ProductURL: sp("  "), PriceGBP: fp(85)},
			{RetailerKey: "c", Retailer: "C", ProductURL: nil, PriceGBP: fp(80)},
		},
	}
	r := newTestRouter(fs)
	w, body := doGet(t, r, "/api/v1/sets/75300")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	retailers := body["retailers"].([]interface{})
	if len(retailers) != 1 {
		t.Fatalf("only linkable offers belong here, got %d", len(retailers))
	}
}

func TestGetSetNotFound(t *testing.T) {
	r := newTestRouter(&fakeStore{sets: map[string]catalog.SetView{}})
	w, _ := doGet(t, r, "/api/v1/sets/404404")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", w.Code)
	}
}

func TestSearchSetsEchoAndCounts(t *testing.T) {
	fs := &fakeStore{searchResults: []catalog.SetView{
		{SetNumber: "1", Title: "A", RRPGBP: fp(10)},
		{SetNumber: "2", Title: "B", RRPGBP: fp(30)},
		{SetNumber: "3", Title: "C", RRPGBP: nil},
	}}
	r := newTestRouter(fs)
	w, body := doGet(t, r, "/api/v1/sets?limit=2&offset=0&themes=City,Space&sort_by=price&sort_dir=desc")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}

	if body["total_count"].(float64) != 3 {
		t.Fatalf("total_count=%v, want 3", body["total_count"])
	}
	if body["count"].(float64) != 2 {
		t.Fatalf("count=%v, want 2", body["count"])
	}
	if body["sort_by"] != "price" || body["sort_dir"] != "desc" {
		t.Fatalf("sort echo wrong: %v %v", body["sort_by"], body["sort_dir"])
	}
	themes := body["themes"].([]interface{})
	if len(themes) != 2 || themes[0] != "City" || themes[1] != "Space" {
		t.Fatalf("themes echo wrong: %v", themes)
	}

	// price desc with nulls last: 30, then 10.
	results := body["results"].([]interface{})
	first := results[0].(map[string]interface{})
	if first["set_number"] != "2" {
		t.Fatalf("expected highest priced first, got %v", first["set_number"])
	}
}

func TestSearchSetsBucketFilter(t *testing.T) {
	fs := &fakeStore{searchResults: []catalog.SetView{
		{SetNumber: "1", Title: "A", RRPGBP: fp(10)},
		{SetNumber: "2", Title: "B", RRPGBP: fp(300)},
		{SetNumber: "3", Title: "C", RRPGBP: nil},
	}}
	r := newTestRouter(fs)

	_, body := doGet(t, r, "/api/v1/sets?price_buckets=under_25,no_price")
	if body["total_count"].(float64) != 2 {
		t.Fatalf("bucket filter wrong, total=%v", body["total_count"])
	}

	// A selection with only unknown keys matches nothing rather than
	// silently matching everything.
	_, body = doGet(t, r, "/api/v1/sets?price_buckets=bogus")
	if body["total_count"].(float64) != 0 {
		t.Fatalf("unknown bucket keys should match nothing, total=%v", body["total_count"])
	}
}

func TestSearchSetsInvalidSortResets(t *testing.T) {
	r := newTestRouter(&fakeStore{})
	_, body := doGet(t, r, "/api/v1/sets?sort_by=evil&sort_dir=sideways")
	if body["sort_by"] != "set_number" || body["sort_dir"] != "asc" {
		t.Fatalf("sort params not reset: %v %v", body["sort_by"], body["sort_dir"])
	}
}

func TestGetPriceDropsObservedMode(t *testing.T) {
	fs := &fakeStore{
		currentOffers: []models.CurrentOffer{
			{SetNumber: "100", RetailerKey: "a", Title: "Set 100", Retailer: sp("A"), PriceGBP: fp(90)},
		},
		prev: map[string]*float64{"100/a": fp(100)},
	}
	r := newTestRouter(fs)
	w, body := doGet(t, r, "/api/v1/price-drops")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if body["mode"] != "observed_price_drops" {
		t.Fatalf("mode=%v", body["mode"])
	}
	rows := body["rows"].([]interface{})
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0].(map[string]interface{})
	if row["change_pct"].(float64) != -10.0 {
		t.Fatalf("change_pct=%v", row["change_pct"])
	}
}

func TestGetPriceDropsZeroDropsStaysPrimary(t *testing.T) {
	fs := &fakeStore{
		currentOffers: []models.CurrentOffer{
			{SetNumber: "100", RetailerKey: "a", Title: "Set 100", PriceGBP: fp(110)},
		},
		prev:   map[string]*float64{"100/a": fp(100)},
		recent: []models.DropRow{{SetNumber: "1", Title: "X"}},
	}
	r := newTestRouter(fs)
	_, body := doGet(t, r, "/api/v1/price-drops")
	if body["mode"] != "observed_price_drops" {
		t.Fatalf("zero drops must not trigger the fallback, mode=%v", body["mode"])
	}
	if rows := body["rows"].([]interface{}); len(rows) != 0 {
		t.Fatalf("expected empty rows, got %d", len(rows))
	}
}

func TestGetPriceDropsFallbackMode(t *testing.T) {
	fs := &fakeStore{
		currentErr: errors.New("relation does not exist"),
		recent: []models.DropRow{
			{SetNumber: "100", Title: "Set 100", NowPrice: fp(49.99)},
		},
	}
	r := newTestRouter(fs)
	w, body := doGet(t, r, "/api/v1/price-drops")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if body["mode"] != "sets_rrp_fallback" {
		t.Fatalf("mode=%v", body["mode"])
	}
	row := body["rows"].([]interface{})[0].(map[string]interface{})
	if row["prev_price"] != nil || row["change_pct"] != nil {
		t.Fatalf("fallback rows carry null prev/change, got %v %v", row["prev_price"], row["change_pct"])
	}
}

func TestGetPriceDropsFallbackFailureIsFatal(t *testing.T) {
	fs := &fakeStore{
		currentErr: errors.New("down"),
		recentErr:  errors.New("also down"),
	}
	r := newTestRouter(fs)
	w, body := doGet(t, r, "/api/v1/price-drops")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d, want 500", w.Code)
	}
	if body["error"] != "Failed to load price drops" {
		t.Fatalf("error=%v", body["error"])
	}
	if body["detail"] == nil {
		t.Fatal("fatal errors carry detail")
	}
}

func TestListThemes(t *testing.T) {
	fs := &fakeStore{themes: []models.ThemeSummary{
		{Theme: "City", SetCount: 120},
		{Theme: "Unknown", SetCount: 4},
	}}
	r := newTestRouter(fs)
	w, body := doGet(t, r, "/api/v1/themes")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	themes := body["themes"].([]interface{})
	if len(themes) != 2 {
		t.Fatalf("expected 2 themes, got %d", len(themes))
	}
}

func TestExportSetsContentType(t *testing.T) {
	fs := &fakeStore{searchResults: []catalog.SetView{
		{SetNumber: "1", Title: "A", RRPGBP: fp(10)},
	}}
	r := newTestRouter(fs)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/export/sets.xlsx", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Fatalf("content type=%q", ct)
	}
	if w.Body.Len() == 0 {
		t.Fatal("empty workbook body")
	}
}
