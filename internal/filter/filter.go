package filter

import (
	"math"
	"time"

	"Reposition/pkg/repoapi"
)

// predicate reports whether an offer passes one of the filter conditions
type predicate func(o repoapi.Offer) bool

// predicates returns the conditions an offer must all pass under the given options
func predicates(opts Options) []predicate {
	start, end := opts.ETAWindow()
	companies := make(map[string]bool, len(opts.SelectedCompanies))
	for _, name := range opts.SelectedCompanies {
		companies[name] = true
	}

	return []predicate{
		// offer options: with a single toggle on the offer must have the matching option, with none on nothing passes
		func(o repoapi.Offer) bool {
			switch {
			case opts.ShowSale && opts.ShowSlotSwap:
				return true
			case opts.ShowSlotSwap:
				return o.ForSwap
			case opts.ShowSale:
				return o.ForSale
			}
			return false
		},
		// price visibility
		func(o repoapi.Offer) bool {
			return opts.ShowWithoutPrice || (o.PriceTEU > 0 && o.PriceFEU > 0)
		},
		// company
		func(o repoapi.Offer) bool {
			return len(companies) == 0 || companies[o.CompanyName]
		},
		// max price, either cap satisfied is enough
		func(o repoapi.Offer) bool {
			return o.PriceFEU <= opts.MaxFEUPrice || o.PriceTEU <= opts.MaxTEUPrice
		},
		// ETA window, bounds excluded
		func(o repoapi.Offer) bool {
			return !o.ETAAt.IsZero() && o.ETAAt.Before(end) && o.ETAAt.After(start)
		},
	}
}

// Apply returns the offers passing all the conditions of the given options, in their original order
func Apply(offers []repoapi.Offer, opts Options) []repoapi.Offer {
	preds := predicates(opts)
	res := make([]repoapi.Offer, 0, len(offers))
offers:
	for _, o := range offers {
		for _, pass := range preds {
			if !pass(o) {
				continue offers
			}
		}
		res = append(res, o)
	}
	return res
}

// Initial computes the initial options of a result set: its lowest prices and ETA range, with everything shown
// selected companies are kept as given; ok is false when there are no offers to compute from
func Initial(offers []repoapi.Offer, selectedCompanies []string) (opts Options, ok bool) {
	if len(offers) == 0 {
		return Options{}, false
	}

	minTEU, minFEU := math.Inf(1), math.Inf(1)
	var minETA, maxETA time.Time
	for _, o := range offers {
		minTEU = math.Min(minTEU, o.PriceTEU)
		minFEU = math.Min(minFEU, o.PriceFEU)
		if o.ETAAt.IsZero() {
			continue
		}
		if minETA.IsZero() || o.ETAAt.Before(minETA) {
			minETA = o.ETAAt.Time
		}
		if maxETA.IsZero() || o.ETAAt.After(maxETA) {
			maxETA = o.ETAAt.Time
		}
	}

	return Options{
		MinTEUPrice:        minTEU,
		MaxTEUPrice:        DefaultMaxTEUPrice,
		MinFEUPrice:        minFEU,
		MaxFEUPrice:        DefaultMaxFEUPrice,
		ShowSale:           true,
		ShowSlotSwap:       true,
		ShowWithoutPrice:   true,
		EmptiesWantToCarry: AllCompanies,
		SelectedCompanies:  append([]string(nil), selectedCompanies...),
		ETADates:           [2]time.Time{minETA, maxETA},
		ETAValues:          [2]int{0, MaxETAOffset},
		DaysRange:          calendarDays(maxETA, minETA),
	}, true
}
