package form

import (
	"time"

	"github.com/pkg/errors"

	"Reposition/internal/filter"
	"Reposition/pkg/repoapi"
)

// errors
var (
	ErrUnknownStop = errors.New("form: terminal is not a stop of the service")
	ErrStopOrder   = errors.New("form: port of discharge must come after the port of loading")
)

// OfferDetails represents the optional fields of the offer form
type OfferDetails struct {
	TEUVisible     bool
	ForSale        bool
	ForSwap        bool
	PriceTEU       float64
	PriceFEU       float64
	CompanyVisible bool

	EmptiesWantToCarry string   // filter.AllCompanies or filter.SelectedCompany
	Companies          []string // all the shipping lines
	SelectedCompanies  []string
}

// stop finds the stop of the service calling at the given terminal
func stop(service repoapi.LineService, terminalID int64) (repoapi.LineServiceStop, error) {
	for _, s := range service.LineServiceStops {
		if s.Terminal.ID == terminalID {
			return s, nil
		}
	}
	return repoapi.LineServiceStop{}, errors.Wrapf(ErrUnknownStop, "terminal %d, service %s", terminalID, service.ServiceCode)
}

// BuildOffer builds the payload publishing the offer of a validated form
// the arrival date is the loading date plus the days the service takes between both stops
func BuildOffer(f Offer, service repoapi.LineService, d OfferDetails) (repoapi.OfferRequest, error) {
	if err := Validate(f); err != nil {
		return repoapi.OfferRequest{}, err
	}
	loading, err := stop(service, f.LoadingTerminalID)
	if err != nil {
		return repoapi.OfferRequest{}, err
	}
	discharge, err := stop(service, f.DischargeTerminalID)
	if err != nil {
		return repoapi.OfferRequest{}, err
	}
	if discharge.Position <= loading.Position {
		return repoapi.OfferRequest{}, ErrStopOrder
	}

	transitDays := int(discharge.ETAAt.Sub(loading.ETDAt.Time) / (24 * time.Hour))
	owners := d.SelectedCompanies
	if d.EmptiesWantToCarry == filter.AllCompanies {
		owners = d.Companies
	}

	return repoapi.OfferRequest{
		OriginTerminalID:      loading.Terminal.ID,
		DestinationTerminalID: discharge.Terminal.ID,
		ServiceCode:           service.ServiceCode,
		ETDAt:                 repoapi.NewTime(*f.LoadingDate),
		ETAAt:                 repoapi.NewTime(f.LoadingDate.AddDate(0, 0, transitDays)),
		NbTEU:                 f.AvailableTEU,
		TEUVisible:            d.TEUVisible,
		ForSale:               d.ForSale,
		ForSwap:               d.ForSwap,
		PriceTEU:              d.PriceTEU,
		PriceFEU:              d.PriceFEU,
		WhitelistOwners:       append([]string{}, owners...),
		ExpiryOfferAt:         repoapi.NewTime(*f.OpenUntil),
		ContactEmail:          f.ContactEmail,
		CompanyVisible:        d.CompanyVisible,
	}, nil
}
