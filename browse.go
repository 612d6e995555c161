package main

import (
	"context"
	"flag"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"Reposition/internal/alert"
	"Reposition/internal/filter"
	"Reposition/internal/form"
	"Reposition/pkg/repoapi"
)

var timeNow = time.Now

// filterFlags represents the filter flags of a search, unset flags leave the options computed from the results
type filterFlags struct {
	maxTEU, maxFEU                  float64
	hideSale, hideSwap, hideNoPrice bool
	selection                       string
	companies                       []string
	companiesFlag                   *listValue
	eta                             string
	sortBy                          string
	reset                           bool
}

func (f *filterFlags) register(fs *flag.FlagSet) {
	f.companiesFlag = &listValue{list: &f.companies}
	fs.Float64Var(&f.maxTEU, "max-teu", -1, "highest TEU price")
	fs.Float64Var(&f.maxFEU, "max-feu", -1, "highest FEU price")
	fs.BoolVar(&f.hideSale, "hide-sale", false, "hide the offers for sale")
	fs.BoolVar(&f.hideSwap, "hide-swap", false, "hide the offers for slot swap")
	fs.BoolVar(&f.hideNoPrice, "hide-no-price", false, "hide the offers without a price")
	fs.StringVar(&f.selection, "selection", "", "shipping line selection: "+filter.AllCompanies+" or "+filter.SelectedCompany)
	fs.Var(f.companiesFlag, "companies", "comma-separated shipping lines to show")
	fs.StringVar(&f.eta, "eta", "", "ETA window as START,END days after the earliest arrival, e.g. 0,30")
	fs.StringVar(&f.sortBy, "sort", "", "sort by price_teu, price_feu, etd_at, eta_at, origin_port or destination_port")
	fs.BoolVar(&f.reset, "reset", false, "reset the filters, showing all the results")
}

// changed reports whether any filter option besides the company selection mode was set
func (f *filterFlags) changed() bool {
	return f.maxTEU >= 0 || f.maxFEU >= 0 || f.hideSale || f.hideSwap || f.hideNoPrice ||
		f.companiesFlag.set || f.eta != ""
}

// options applies the flags on top of the given options
func (f *filterFlags) options(opts filter.Options) (filter.Options, error) {
	if f.maxTEU >= 0 {
		opts.MaxTEUPrice = f.maxTEU
	}
	if f.maxFEU >= 0 {
		opts.MaxFEUPrice = f.maxFEU
	}
	opts.ShowSale = opts.ShowSale && !f.hideSale
	opts.ShowSlotSwap = opts.ShowSlotSwap && !f.hideSwap
	opts.ShowWithoutPrice = opts.ShowWithoutPrice && !f.hideNoPrice
	if f.companiesFlag.set {
		opts.SelectedCompanies = f.companies
	}
	if f.eta != "" {
		var err error
		if opts.ETAValues, err = parseETAValues(f.eta); err != nil {
			return opts, err
		}
	}
	return opts, opts.Validate()
}

func parseETAValues(s string) (values [2]int, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return values, filter.ErrInvalidETAValues
	}
	for i, part := range parts {
		if values[i], err = strconv.Atoi(strings.TrimSpace(part)); err != nil {
			return values, filter.ErrInvalidETAValues
		}
	}
	return values, nil
}

// apply applies the flags to a loaded search
func (f *filterFlags) apply(s *filter.Search) error {
	// changing the selection mode selects all the shipping lines again
	if f.selection != "" {
		if err := s.SelectCompanies(f.selection); err != nil {
			return invalidInput(err)
		}
	}
	if f.changed() {
		opts, err := f.options(s.Options())
		if err != nil {
			return invalidInput(err)
		}
		if err = s.Update(opts); err != nil {
			return invalidInput(err)
		}
	}
	if f.reset {
		s.Reset()
	}
	if f.sortBy != "" {
		field, err := filter.ParseSortField(f.sortBy)
		if err != nil {
			return invalidInput(err)
		}
		s.SortBy(field)
	}
	return nil
}

// showSearch prints a loaded search
func (a *app) showSearch(s *filter.Search) {
	a.renderer.SearchResults(s.Displayed(), s.ShowNew())
	var sortedBy string
	if field := s.SortField(); field != "" {
		sortedBy = field.Label()
	}
	a.renderer.FilterSummary(s.Displayed().Len(), s.Results().Len(), sortedBy)
}

// newSearch creates a search knowing all the shipping lines
func (a *app) newSearch(ctx context.Context) (*filter.Search, error) {
	s := filter.NewSearch(timeNow())
	names, err := a.api.GetCompanyNames(ctx)
	if err != nil {
		return nil, err
	}
	s.SetCompanies(names)
	return s, nil
}

func (a *app) browse(ctx context.Context, args []string) error {
	fs := newFlagSet("browse", "")
	var (
		q           repoapi.OfferQuery
		alertID     int64
		createAlert bool
		noEmail     bool
		filters     filterFlags
	)
	fs.Var(selectionValue{&q.Origin}, "from", "origin as TYPE:ID, e.g. Port:9 (see the locations command)")
	fs.Var(selectionValue{&q.Destination}, "to", "destination as TYPE:ID")
	fs.Var(dateValue{&q.ELD}, "eld", "earliest loading date (YYYY-MM-DD)")
	fs.Var(dateValue{&q.LLD}, "lld", "latest loading date (YYYY-MM-DD)")
	fs.Int64Var(&alertID, "alert", 0, "browse the offers of a search alert instead")
	fs.BoolVar(&createAlert, "create-alert", false, "save the search and its filters as a search alert")
	fs.BoolVar(&noEmail, "no-email", false, "don't email the new offers of the created search alert")
	filters.register(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if alertID == 0 && (q.Origin.ID == 0 || q.Destination.ID == 0) {
		// nothing to search yet, the saved searches are the starting points
		return a.alerts(ctx, nil)
	}

	s, err := a.newSearch(ctx)
	if err != nil {
		return err
	}
	var results repoapi.OfferPartition
	if alertID != 0 {
		results, err = a.api.GetSearchAlertOffers(ctx, alertID)
	} else {
		if q.ELD.IsZero() {
			q.ELD = timeNow()
		}
		if q.LLD.IsZero() {
			q.LLD = q.ELD.AddDate(0, 0, 30)
		}
		results, err = a.api.SearchOffers(ctx, q)
	}
	if err != nil {
		return err
	}
	s.Load(results)
	if err = filters.apply(s); err != nil {
		return err
	}
	a.showSearch(s)

	if !createAlert {
		return nil
	}
	if alertID != 0 {
		return invalidInput(errors.New("the offers of a search alert can't be saved as another alert"))
	}
	email := !noEmail
	req, err := alert.Build(alert.Params{
		Origin:            q.Origin,
		Destination:       q.Destination,
		ELD:               q.ELD,
		LLD:               q.LLD,
		Options:           s.Options(),
		EmailNotification: &email,
	})
	if err != nil {
		return invalidInput(err)
	}
	if _, err = a.api.CreateSearchAlert(ctx, req); err != nil {
		return err
	}
	a.renderer.Message("%s", a.renderer.Locale().AlertCreatedMessage)
	return nil
}

func (a *app) alertOffers(ctx context.Context, args []string) error {
	fs := newFlagSet("alert-offers", "ALERT_ID")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	id, err := idArg(fs, 0)
	if err != nil {
		return err
	}
	return a.browse(ctx, []string{"-alert", strconv.FormatInt(id, 10)})
}

// offerFlags represents the fields of the offer form
type offerFlags struct {
	form          form.Offer
	details       form.OfferDetails
	loadingDate   time.Time
	openUntil     time.Time
	companiesFlag *listValue
}

// register registers the flags, defaulting to the given offer's fields
func (f *offerFlags) register(fs *flag.FlagSet, o repoapi.Offer, serviceID int64) {
	f.loadingDate = o.ETDAt.Time
	f.openUntil = o.ExpiryOfferAt.Time
	f.details.SelectedCompanies = append([]string(nil), o.WhitelistOwners...)
	f.companiesFlag = &listValue{list: &f.details.SelectedCompanies}
	var loadingID, dischargeID int64
	if o.OriginTerminal != nil {
		loadingID = o.OriginTerminal.ID
	}
	if o.DestinationTerminal != nil {
		dischargeID = o.DestinationTerminal.ID
	}

	fs.Int64Var(&f.form.ServiceID, "service", serviceID, "ID of the line service (see the services command)")
	fs.Int64Var(&f.form.LoadingTerminalID, "loading", loadingID, "terminal ID of the port of loading")
	fs.Var(dateValue{&f.loadingDate}, "loading-date", "date of loading (YYYY-MM-DD)")
	fs.Int64Var(&f.form.DischargeTerminalID, "discharge", dischargeID, "terminal ID of the port of discharge")
	fs.IntVar(&f.form.AvailableTEU, "teu", o.NbTEU, "available TEUs")
	fs.BoolVar(&f.details.TEUVisible, "teu-visible", o.TEUVisible, "show the available TEUs")
	fs.StringVar(&f.form.ContactEmail, "email", o.ContactEmail, "contact email")
	fs.Var(dateValue{&f.openUntil}, "open-until", "date the offer expires (YYYY-MM-DD)")
	fs.BoolVar(&f.details.ForSale, "sale", o.ForSale, "offer for sale")
	fs.BoolVar(&f.details.ForSwap, "swap", o.ForSwap, "offer for slot swap")
	fs.Float64Var(&f.details.PriceTEU, "price-teu", o.PriceTEU, "price per TEU in US$")
	fs.Float64Var(&f.details.PriceFEU, "price-feu", o.PriceFEU, "price per FEU in US$")
	fs.BoolVar(&f.details.CompanyVisible, "company-visible", o.CompanyVisible, "show your company")
	fs.Var(f.companiesFlag, "companies", "comma-separated shipping lines whose empties you want to carry, all if empty")
}

// offerRequest validates the parsed flags and builds the offer payload
func (a *app) offerRequest(ctx context.Context, f *offerFlags) (repoapi.OfferRequest, error) {
	if !f.loadingDate.IsZero() {
		f.form.LoadingDate = &f.loadingDate
	}
	if !f.openUntil.IsZero() {
		f.form.OpenUntil = &f.openUntil
	}
	if err := form.Validate(f.form); err != nil {
		return repoapi.OfferRequest{}, err
	}

	f.details.EmptiesWantToCarry = filter.SelectedCompany
	if len(f.details.SelectedCompanies) == 0 {
		f.details.EmptiesWantToCarry = filter.AllCompanies
		names, err := a.api.GetCompanyNames(ctx)
		if err != nil {
			return repoapi.OfferRequest{}, err
		}
		f.details.Companies = names
	}

	service, err := a.api.GetLineService(ctx, f.form.ServiceID)
	if err != nil {
		if repoapi.IsNotFound(err) {
			return repoapi.OfferRequest{}, invalidInput(errors.Errorf("line service %d not found", f.form.ServiceID))
		}
		return repoapi.OfferRequest{}, err
	}
	req, err := form.BuildOffer(f.form, service, f.details)
	if errors.Is(err, form.ErrUnknownStop) || errors.Is(err, form.ErrStopOrder) {
		return req, invalidInput(err)
	}
	return req, err
}

func (a *app) createOffer(ctx context.Context, args []string) error {
	fs := newFlagSet("create-offer", "")
	profile, _ := a.auth.Profile()
	var f offerFlags
	f.register(fs, repoapi.Offer{ContactEmail: profile.Email, ForSale: true}, 0)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	req, err := a.offerRequest(ctx, &f)
	if err != nil {
		return err
	}
	offer, err := a.api.CreateOffer(ctx, req)
	if err != nil {
		return err
	}
	a.renderer.Message(a.renderer.Locale().OfferCreatedMessage, offer.ID)
	return a.myOffers(ctx, []string{"-highlight", strconv.FormatInt(offer.ID, 10)})
}

func (a *app) editOffer(ctx context.Context, args []string) error {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return invalidInput(errors.New("usage: edit-offer OFFER_ID [flags]"))
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return invalidInput(errors.Errorf("invalid ID %q", args[0]))
	}
	offer, err := a.api.GetOffer(ctx, id)
	if err != nil {
		if repoapi.IsNotFound(err) {
			return invalidInput(errors.Errorf("offer %d not found", id))
		}
		return err
	}
	serviceID, err := a.serviceID(ctx, offer.ServiceCode)
	if err != nil {
		return err
	}

	fs := newFlagSet("edit-offer", "")
	var f offerFlags
	f.register(fs, offer, serviceID)
	if err = parseFlags(fs, args[1:]); err != nil {
		return err
	}
	req, err := a.offerRequest(ctx, &f)
	if err != nil {
		return err
	}
	if _, err = a.api.UpdateOffer(ctx, id, req); err != nil {
		return err
	}
	a.renderer.Message(a.renderer.Locale().OfferUpdatedMessage, id)
	return a.myOffers(ctx, []string{"-highlight", strconv.FormatInt(id, 10)})
}

// serviceID finds the ID of the line service with the given code, 0 if there's none
func (a *app) serviceID(ctx context.Context, code string) (int64, error) {
	services, err := a.api.GetLineServices(ctx)
	if err != nil {
		return 0, err
	}
	for _, s := range services {
		if s.ServiceCode == code {
			return s.ID, nil
		}
	}
	return 0, nil
}
