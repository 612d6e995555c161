package filter

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"Reposition/pkg/repoapi"
)

func sampleResults(t *testing.T) repoapi.OfferPartition {
	return repoapi.OfferPartition{
		New: []repoapi.Offer{
			{ID: 5, PriceTEU: 400, PriceFEU: 700, ForSale: true, CompanyName: "MSC", ETAAt: mustTime(t, "2024-04-02T10:00:00Z")},
		},
		Current: []repoapi.Offer{
			{ID: 1, PriceTEU: 900, PriceFEU: 1500, ForSwap: true, CompanyName: "Maersk", ETAAt: mustTime(t, "2024-03-15T10:00:00Z")},
			{ID: 2, PriceTEU: 150, PriceFEU: 250, ForSale: true, ForSwap: true, CompanyName: "MSC", ETAAt: mustTime(t, "2024-05-20T10:00:00Z")},
			{ID: 3, PriceTEU: 600, PriceFEU: 0, ForSale: true, CompanyName: "CMA CGM", ETAAt: mustTime(t, "2024-03-01T10:00:00Z")},
		},
	}
}

func newLoadedSearch(t *testing.T) *Search {
	s := NewSearch(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	s.SetCompanies([]string{"CMA CGM", "Maersk", "MSC"})
	s.Load(sampleResults(t))
	return s
}

func TestSearchLoad(t *testing.T) {
	s := newLoadedSearch(t)
	if !s.ShowNew() {
		t.Error("ShowNew() = false after load")
	}
	got := s.Displayed()
	if diff := cmp.Diff([]int64{5}, ids(got.New)); diff != "" {
		t.Errorf("new offers mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int64{1, 2, 3}, ids(got.Current)); diff != "" {
		t.Errorf("current offers mismatch (-want +got):\n%s", diff)
	}

	opts := s.Options()
	if opts.MinTEUPrice != 150 || opts.MinFEUPrice != 0 {
		t.Errorf("min prices = %v/%v, want 150/0", opts.MinTEUPrice, opts.MinFEUPrice)
	}
	if diff := cmp.Diff([]string{"CMA CGM", "Maersk", "MSC"}, opts.SelectedCompanies); diff != "" {
		t.Errorf("SelectedCompanies mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchResetRestoresInitial(t *testing.T) {
	s := newLoadedSearch(t)
	initial := s.InitialOptions()

	opts := s.Options()
	opts.ShowSale = false
	opts.SelectedCompanies = []string{"Maersk"}
	opts.ETAValues = [2]int{10, 20}
	if err := s.Update(opts); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if diff := cmp.Diff([]int64{1}, ids(s.Visible())); diff != "" {
		t.Errorf("Visible() after update mismatch (-want +got):\n%s", diff)
	}

	s.Reset()
	restored := s.Options()
	if diff := cmp.Diff(initial.SelectedCompanies, restored.SelectedCompanies); diff != "" {
		t.Errorf("SelectedCompanies not restored (-want +got):\n%s", diff)
	}
	if restored.ShowSale != initial.ShowSale || restored.ETAValues != initial.ETAValues ||
		!restored.ETADates[0].Equal(initial.ETADates[0]) || restored.MaxTEUPrice != initial.MaxTEUPrice {
		t.Errorf("Options() after reset = %+v, want %+v", restored, initial)
	}

	all := s.Results().All()
	if diff := cmp.Diff(ids(all), ids(s.Visible())); diff != "" {
		t.Errorf("Visible() after reset mismatch (-want +got):\n%s", diff)
	}
	// the restored options let the whole result set through
	if diff := cmp.Diff(ids(all), ids(Apply(all, restored))); diff != "" {
		t.Errorf("Apply() with restored options mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchUpdateHidesNew(t *testing.T) {
	s := newLoadedSearch(t)
	opts := s.Options()
	opts.ShowSlotSwap = false
	if err := s.Update(opts); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if s.ShowNew() {
		t.Error("ShowNew() = true after changing filters")
	}
	got := s.Displayed()
	if len(got.New) != 0 {
		t.Errorf("Displayed() kept %d new offers apart", len(got.New))
	}
	if diff := cmp.Diff([]int64{5, 2, 3}, ids(got.Current)); diff != "" {
		t.Errorf("Displayed() mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchUpdateRejectsInvalid(t *testing.T) {
	s := newLoadedSearch(t)
	opts := s.Options()
	opts.ETAValues = [2]int{30, 10}
	if err := s.Update(opts); err == nil {
		t.Fatal("Update() error = nil")
	}
	if !s.ShowNew() || s.Options().ETAValues != [2]int{0, MaxETAOffset} {
		t.Error("invalid options were put in effect")
	}
}

func TestSearchSortCollapsesPartition(t *testing.T) {
	s := newLoadedSearch(t)
	s.SortBy(SortPriceTEU)
	if s.ShowNew() {
		t.Error("ShowNew() = true after sorting")
	}
	if s.SortField() != SortPriceTEU {
		t.Errorf("SortField() = %q", s.SortField())
	}
	got := s.Displayed()
	if len(got.New) != 0 {
		t.Errorf("Displayed() kept %d new offers apart", len(got.New))
	}
	if diff := cmp.Diff([]int64{2, 5, 3, 1}, ids(got.Current)); diff != "" {
		t.Errorf("sorted offers mismatch (-want +got):\n%s", diff)
	}

	s.SortBy(SortETA)
	if diff := cmp.Diff([]int64{3, 1, 5, 2}, ids(s.Visible())); diff != "" {
		t.Errorf("re-sorted offers mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchSelectCompanies(t *testing.T) {
	s := newLoadedSearch(t)
	opts := s.Options()
	opts.SelectedCompanies = []string{"MSC"}
	if err := s.Update(opts); err != nil {
		t.Fatal(err)
	}
	if err := s.SelectCompanies(SelectedCompany); err != nil {
		t.Fatalf("SelectCompanies() error = %v", err)
	}
	got := s.Options()
	if got.EmptiesWantToCarry != SelectedCompany {
		t.Errorf("EmptiesWantToCarry = %q", got.EmptiesWantToCarry)
	}
	if diff := cmp.Diff([]string{"CMA CGM", "Maersk", "MSC"}, got.SelectedCompanies); diff != "" {
		t.Errorf("SelectedCompanies mismatch (-want +got):\n%s", diff)
	}
	if err := s.SelectCompanies("someCompanies"); err == nil {
		t.Error("SelectCompanies() accepted an unknown mode")
	}
}

func TestSearchEmptyResults(t *testing.T) {
	now := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	s := NewSearch(now)
	s.Load(repoapi.OfferPartition{})
	if len(s.Visible()) != 0 {
		t.Errorf("Visible() = %v", ids(s.Visible()))
	}
	// defaults stay in effect
	if got := s.Options().ETADates[0]; !got.Equal(now) {
		t.Errorf("ETADates[0] = %v, want %v", got, now)
	}
}
