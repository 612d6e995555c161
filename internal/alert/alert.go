// Package alert builds search alerts out of an offer search and its filter options.
package alert

import (
	"time"

	"github.com/pkg/errors"

	"Reposition/internal/filter"
	"Reposition/pkg/repoapi"
)

// errors
var (
	ErrNoOrigin        = errors.New("alert: origin not selected")
	ErrNoDestination   = errors.New("alert: destination not selected")
	ErrNoLoadingWindow = errors.New("alert: loading dates not selected")
	ErrLoadingWindow   = errors.New("alert: latest loading date before earliest loading date")
)

// Params represents the search a search alert is created from
type Params struct {
	Origin      repoapi.Selection
	Destination repoapi.Selection
	ELD         time.Time // earliest loading date
	LLD         time.Time // latest loading date
	Options     filter.Options
	// EmailNotification enables email notifications of the alert's new offers, nil means enabled
	EmailNotification *bool
}

// Build builds the payload creating a search alert for the given search
func Build(p Params) (repoapi.SearchAlertRequest, error) {
	switch {
	case p.Origin.ID == 0:
		return repoapi.SearchAlertRequest{}, ErrNoOrigin
	case p.Destination.ID == 0:
		return repoapi.SearchAlertRequest{}, ErrNoDestination
	case p.ELD.IsZero() || p.LLD.IsZero():
		return repoapi.SearchAlertRequest{}, ErrNoLoadingWindow
	case p.LLD.Before(p.ELD):
		return repoapi.SearchAlertRequest{}, ErrLoadingWindow
	}
	if err := p.Options.Validate(); err != nil {
		return repoapi.SearchAlertRequest{}, err
	}

	email := true
	if p.EmailNotification != nil {
		email = *p.EmailNotification
	}
	minETA, maxETA := p.Options.ETAWindow()

	return repoapi.SearchAlertRequest{
		OriginableID:      p.Origin.ID,
		OriginableType:    p.Origin.Type,
		DestinationID:     p.Destination.ID,
		DestinationType:   p.Destination.Type,
		StartLoadingOn:    repoapi.NewTime(p.ELD),
		EndLoadingOn:      repoapi.NewTime(p.LLD),
		ForSale:           p.Options.ShowSale,
		ForSwap:           p.Options.ShowSlotSwap,
		MaxPriceTEU:       p.Options.MaxTEUPrice,
		MaxPriceFEU:       p.Options.MaxFEUPrice,
		NoPrice:           p.Options.ShowWithoutPrice,
		MinETAAt:          repoapi.NewTime(minETA),
		MaxETAAt:          repoapi.NewTime(maxETA),
		WhitelistLines:    append(repoapi.WhitelistLines(nil), p.Options.SelectedCompanies...),
		NotificationEmail: email,
	}, nil
}

// OptionsLabel describes the offer options a search alert or an offer has
func OptionsLabel(forSale, forSwap bool) string {
	switch {
	case forSale && forSwap:
		return "Offer for Sale and Slot Swap"
	case forSale:
		return "Offer for Sale"
	case forSwap:
		return "Offer for Slot Swap"
	}
	return "No options"
}
