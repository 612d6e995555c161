package filter

import (
	"sync"
	"time"

	"Reposition/pkg/repoapi"
)

// Search holds the state of an offer search: its result set, the filter options and how the results are shown
// Right after loading, the results are shown split into new and current offers; changing the filters or
// sorting shows a single flat list instead.
type Search struct {
	mu        sync.RWMutex
	companies []string
	results   repoapi.OfferPartition
	offers    []repoapi.Offer // filtered and possibly sorted
	options   Options
	initial   Options
	showNew   bool
	sortField SortField
}

// NewSearch creates an empty Search with the default options
func NewSearch(now time.Time) *Search {
	opts := Default(now)
	return &Search{
		options: opts,
		initial: opts.Clone(),
	}
}

// SetCompanies sets the names of all shipping lines, selecting all of them
func (s *Search) SetCompanies(names []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companies = append([]string(nil), names...)
	s.options.SelectedCompanies = append([]string(nil), names...)
	if s.results.Len() > 0 {
		s.computeInitial()
		s.offers = Apply(s.results.All(), s.options)
	}
}

// Companies returns the names of all shipping lines
func (s *Search) Companies() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.companies...)
}

// Load replaces the result set, computing its initial options
func (s *Search) Load(results repoapi.OfferPartition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = repoapi.OfferPartition{
		New:     append([]repoapi.Offer(nil), results.New...),
		Current: append([]repoapi.Offer(nil), results.Current...),
	}
	s.showNew = true
	s.sortField = ""
	s.offers = s.results.All()
	if s.computeInitial() {
		s.offers = Apply(s.results.All(), s.options)
	}
}

// computeInitial computes the initial options of the result set and puts them in effect
func (s *Search) computeInitial() bool {
	initial, ok := Initial(s.results.All(), s.options.SelectedCompanies)
	if !ok {
		return false
	}
	s.initial = initial
	s.options = initial.Clone()
	return true
}

// Update puts the given options in effect, re-filtering the result set
func (s *Search) Update(opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.options = opts.Clone()
	s.offers = Apply(s.results.All(), s.options)
	s.showNew = false
	s.sortField = ""
	return nil
}

// SelectCompanies changes the company selection mode, which selects all shipping lines again
func (s *Search) SelectCompanies(mode string) error {
	s.mu.RLock()
	opts := s.options.Clone()
	opts.EmptiesWantToCarry = mode
	opts.SelectedCompanies = append([]string(nil), s.companies...)
	s.mu.RUnlock()
	return s.Update(opts)
}

// Reset restores the initial options and the whole unfiltered result set
func (s *Search) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.options = s.initial.Clone()
	s.offers = s.results.All()
	s.sortField = ""
}

// SortBy sorts the shown offers by the given field, as a single list
func (s *Search) SortBy(field SortField) {
	s.mu.Lock()
	defer s.mu.Unlock()
	shown := s.offers
	if s.showNew {
		shown = s.results.All()
	}
	s.offers = Sort(shown, field)
	s.showNew = false
	s.sortField = field
}

// Options returns the options in effect
func (s *Search) Options() Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.options.Clone()
}

// InitialOptions returns the options computed from the result set
func (s *Search) InitialOptions() Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initial.Clone()
}

// Visible returns the filtered, possibly sorted offers
func (s *Search) Visible() []repoapi.Offer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]repoapi.Offer(nil), s.offers...)
}

// Displayed returns the offers as they're shown: the result set split into new and current offers when
// ShowNew, otherwise the visible offers as current ones
func (s *Search) Displayed() repoapi.OfferPartition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.showNew {
		return repoapi.OfferPartition{
			New:     append([]repoapi.Offer(nil), s.results.New...),
			Current: append([]repoapi.Offer(nil), s.results.Current...),
		}
	}
	return repoapi.OfferPartition{Current: append([]repoapi.Offer(nil), s.offers...)}
}

// ShowNew reports whether the new offers are shown apart
func (s *Search) ShowNew() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.showNew
}

// SortField returns the field the offers are sorted by, empty if unsorted
func (s *Search) SortField() SortField {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortField
}

// Results returns the unfiltered result set
func (s *Search) Results() repoapi.OfferPartition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.results
}
