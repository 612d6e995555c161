package filter

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"Reposition/pkg/repoapi"
)

func mustTime(t *testing.T, s string) repoapi.Time {
	t.Helper()
	tm, err := repoapi.ParseTime(s)
	if err != nil {
		t.Fatalf("ParseTime(%q) error = %v", s, err)
	}
	return repoapi.NewTime(tm)
}

func ids(offers []repoapi.Offer) []int64 {
	res := make([]int64, 0, len(offers))
	for _, o := range offers {
		res = append(res, o.ID)
	}
	return res
}

func localDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// openOptions returns options letting every offer with an ETA in 2024 through
func openOptions() Options {
	return Options{
		MaxTEUPrice:      DefaultMaxTEUPrice,
		MaxFEUPrice:      DefaultMaxFEUPrice,
		ShowSale:         true,
		ShowSlotSwap:     true,
		ShowWithoutPrice: true,
		ETADates:         [2]time.Time{localDate(2023, 12, 31), localDate(2023, 12, 31)},
		ETAValues:        [2]int{0, MaxETAOffset},
	}
}

func TestApplyExample(t *testing.T) {
	offers := []repoapi.Offer{
		{ID: 1, PriceTEU: 100, PriceFEU: 200, ForSale: true, ForSwap: false, ETAAt: mustTime(t, "2024-03-10")},
		{ID: 2, PriceTEU: 2000, PriceFEU: 2000, ForSale: false, ForSwap: true, ETAAt: mustTime(t, "2024-06-01")},
	}
	opts := Options{
		ShowSale:         true,
		ShowSlotSwap:     false,
		ShowWithoutPrice: true,
		MaxTEUPrice:      1000,
		MaxFEUPrice:      1600,
		ETADates:         [2]time.Time{localDate(2024, 1, 1), localDate(2024, 1, 1)},
		ETAValues:        [2]int{0, 182},
	}
	if diff := cmp.Diff([]int64{1}, ids(Apply(offers, opts))); diff != "" {
		t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyOfferOptions(t *testing.T) {
	offers := []repoapi.Offer{
		{ID: 1, ForSale: true, ETAAt: mustTime(t, "2024-03-10T12:00")},
		{ID: 2, ForSwap: true, ETAAt: mustTime(t, "2024-03-10T12:00")},
		{ID: 3, ForSale: true, ForSwap: true, ETAAt: mustTime(t, "2024-03-10T12:00")},
		{ID: 4, ETAAt: mustTime(t, "2024-03-10T12:00")},
	}
	tests := []struct {
		name       string
		sale, swap bool
		want       []int64
	}{
		{"both shown admits every offer", true, true, []int64{1, 2, 3, 4}},
		{"sale only", true, false, []int64{1, 3}},
		{"swap only", false, true, []int64{2, 3}},
		{"none shown admits nothing", false, false, []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := openOptions()
			opts.ShowSale, opts.ShowSlotSwap = tt.sale, tt.swap
			if diff := cmp.Diff(tt.want, ids(Apply(offers, opts))); diff != "" {
				t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyPrices(t *testing.T) {
	eta := mustTime(t, "2024-03-10T12:00")
	offers := []repoapi.Offer{
		{ID: 1, PriceTEU: 50, PriceFEU: 5000, ETAAt: eta},   // TEU under cap
		{ID: 2, PriceTEU: 5000, PriceFEU: 100, ETAAt: eta},  // FEU under cap
		{ID: 3, PriceTEU: 5000, PriceFEU: 5000, ETAAt: eta}, // neither
		{ID: 4, PriceTEU: 0, PriceFEU: 100, ETAAt: eta},     // no TEU price
	}

	opts := openOptions()
	if diff := cmp.Diff([]int64{1, 2, 4}, ids(Apply(offers, opts))); diff != "" {
		t.Errorf("Apply() with prices shown mismatch (-want +got):\n%s", diff)
	}

	opts.ShowWithoutPrice = false
	if diff := cmp.Diff([]int64{1, 2}, ids(Apply(offers, opts))); diff != "" {
		t.Errorf("Apply() without unpriced offers mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyCompanies(t *testing.T) {
	eta := mustTime(t, "2024-03-10T12:00")
	offers := []repoapi.Offer{
		{ID: 1, CompanyName: "MSC", ETAAt: eta},
		{ID: 2, CompanyName: "Maersk", ETAAt: eta},
		{ID: 3, ETAAt: eta},
	}
	opts := openOptions()
	if diff := cmp.Diff([]int64{1, 2, 3}, ids(Apply(offers, opts))); diff != "" {
		t.Errorf("Apply() with no selection mismatch (-want +got):\n%s", diff)
	}
	opts.SelectedCompanies = []string{"Maersk"}
	if diff := cmp.Diff([]int64{2}, ids(Apply(offers, opts))); diff != "" {
		t.Errorf("Apply() with selection mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyETAWindowExcludesBounds(t *testing.T) {
	opts := openOptions()
	opts.ETADates = [2]time.Time{localDate(2024, 3, 1), localDate(2024, 3, 1)}
	opts.ETAValues = [2]int{0, 9}
	start, end := opts.ETAWindow()
	if want := localDate(2024, 3, 1); !start.Equal(want) {
		t.Fatalf("window start = %v, want %v", start, want)
	}
	if want := localDate(2024, 3, 11).Add(-time.Millisecond); !end.Equal(want) {
		t.Fatalf("window end = %v, want %v", end, want)
	}

	offers := []repoapi.Offer{
		{ID: 1, ETAAt: repoapi.NewTime(start)},
		{ID: 2, ETAAt: repoapi.NewTime(start.Add(time.Millisecond))},
		{ID: 3, ETAAt: repoapi.NewTime(end.Add(-time.Millisecond))},
		{ID: 4, ETAAt: repoapi.NewTime(end)},
		{ID: 5}, // no ETA
	}
	if diff := cmp.Diff([]int64{2, 3}, ids(Apply(offers, opts))); diff != "" {
		t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyDoesNotMutate(t *testing.T) {
	offers := []repoapi.Offer{
		{ID: 1, ForSwap: true, ETAAt: mustTime(t, "2024-03-10T12:00")},
		{ID: 2, ForSale: true, ETAAt: mustTime(t, "2024-03-10T12:00")},
	}
	opts := openOptions()
	opts.ShowSlotSwap = false
	_ = Apply(offers, opts)
	if diff := cmp.Diff([]int64{1, 2}, ids(offers)); diff != "" {
		t.Errorf("input modified (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		values [2]int
		valid  bool
	}{
		{[2]int{0, 182}, true},
		{[2]int{10, 10}, true},
		{[2]int{-1, 10}, false},
		{[2]int{11, 10}, false},
		{[2]int{0, 183}, false},
	}
	for _, tt := range tests {
		opts := openOptions()
		opts.ETAValues = tt.values
		err := opts.Validate()
		if tt.valid && err != nil {
			t.Errorf("Validate(%v) error = %v", tt.values, err)
		}
		if !tt.valid && !errors.Is(err, ErrInvalidETAValues) {
			t.Errorf("Validate(%v) error = %v, want %v", tt.values, err, ErrInvalidETAValues)
		}
	}
}

func TestInitial(t *testing.T) {
	offers := []repoapi.Offer{
		{ID: 1, PriceTEU: 300, PriceFEU: 500, ETAAt: mustTime(t, "2024-03-20T08:00")},
		{ID: 2, PriceTEU: 2500, PriceFEU: 400, ETAAt: mustTime(t, "2024-03-05T20:00")},
		{ID: 3, PriceTEU: 700, PriceFEU: 3000, ETAAt: mustTime(t, "2024-04-01T01:00")},
	}
	got, ok := Initial(offers, []string{"MSC"})
	if !ok {
		t.Fatal("Initial() ok = false")
	}
	if got.MinTEUPrice != 300 || got.MinFEUPrice != 400 {
		t.Errorf("min prices = %v/%v, want 300/400", got.MinTEUPrice, got.MinFEUPrice)
	}
	if got.MaxTEUPrice != 1000 || got.MaxFEUPrice != 1600 {
		t.Errorf("max prices = %v/%v, want the fixed caps", got.MaxTEUPrice, got.MaxFEUPrice)
	}
	if !got.ETADates[0].Equal(offers[1].ETAAt.Time) || !got.ETADates[1].Equal(offers[2].ETAAt.Time) {
		t.Errorf("ETA dates = %v, want the earliest and latest ETA", got.ETADates)
	}
	if got.DaysRange != 27 {
		t.Errorf("DaysRange = %d, want 27", got.DaysRange)
	}
	if got.ETAValues != [2]int{0, MaxETAOffset} {
		t.Errorf("ETAValues = %v", got.ETAValues)
	}
	if !got.ShowSale || !got.ShowSlotSwap || !got.ShowWithoutPrice || got.EmptiesWantToCarry != AllCompanies {
		t.Errorf("toggles not all on: %+v", got)
	}
	if diff := cmp.Diff([]string{"MSC"}, got.SelectedCompanies); diff != "" {
		t.Errorf("SelectedCompanies mismatch (-want +got):\n%s", diff)
	}

	if _, ok = Initial(nil, nil); ok {
		t.Error("Initial() of no offers ok = true")
	}
}

func TestSort(t *testing.T) {
	offers := []repoapi.Offer{
		{ID: 1, PriceTEU: 300, ETDAt: mustTime(t, "2024-03-03"), OriginTerminal: &repoapi.Terminal{PortName: "Valencia"}},
		{ID: 2, PriceTEU: 100, ETDAt: mustTime(t, "2024-03-01"), OriginTerminal: &repoapi.Terminal{PortName: "Barcelona"}},
		{ID: 3, PriceTEU: 300, ETDAt: mustTime(t, "2024-03-02"), OriginTerminal: &repoapi.Terminal{PortName: "Algeciras"}},
		{ID: 4, PriceTEU: 200, ETDAt: mustTime(t, "2024-03-04")},
	}
	tests := []struct {
		field SortField
		want  []int64
	}{
		{SortPriceTEU, []int64{2, 4, 1, 3}},
		{SortETD, []int64{2, 3, 1, 4}},
		{SortOriginPort, []int64{4, 3, 2, 1}},
	}
	for _, tt := range tests {
		t.Run(string(tt.field), func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ids(Sort(offers, tt.field))); diff != "" {
				t.Errorf("Sort() mismatch (-want +got):\n%s", diff)
			}
		})
	}
	if diff := cmp.Diff([]int64{1, 2, 3, 4}, ids(offers)); diff != "" {
		t.Errorf("input modified (-want +got):\n%s", diff)
	}
}

func TestParseSortField(t *testing.T) {
	tests := map[string]SortField{
		"price_teu":                      SortPriceTEU,
		"FEU":                            SortPriceFEU,
		"eta_at":                         SortETA,
		"origin_terminal.port_name":      SortOriginPort,
		"destination_terminal.port_name": SortDestinationPort,
	}
	for in, want := range tests {
		got, err := ParseSortField(in)
		if err != nil || got != want {
			t.Errorf("ParseSortField(%q) = %q, %v, want %q", in, got, err, want)
		}
	}
	if _, err := ParseSortField("company"); !errors.Is(err, ErrUnknownSortField) {
		t.Errorf("ParseSortField(company) error = %v, want %v", err, ErrUnknownSortField)
	}
}
