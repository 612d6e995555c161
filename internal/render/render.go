package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"Reposition/internal/alert"
	"Reposition/internal/locale"
	"Reposition/pkg/repoapi"
)

// Renderer prints pages to a writer
type Renderer struct {
	w   io.Writer
	loc *locale.Locale
	now func() time.Time
}

// New creates a Renderer writing to w in the given locale
func New(w io.Writer, loc *locale.Locale) *Renderer {
	return &Renderer{w: w, loc: loc, now: time.Now}
}

// Locale returns the Renderer's locale
func (r *Renderer) Locale() *locale.Locale {
	return r.loc
}

// Message prints a line formatted with the given locale string
func (r *Renderer) Message(format string, a ...interface{}) {
	fmt.Fprintf(r.w, format+"\n", a...)
}

func (r *Renderer) table() *tabwriter.Writer {
	return tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
}

// SearchResults prints the offers found by a search, apart from the new ones if showNew
func (r *Renderer) SearchResults(p repoapi.OfferPartition, showNew bool) {
	if p.Len() == 0 {
		r.Message("%s", r.loc.NoOffersMessage)
		return
	}
	if !showNew {
		r.Offers(p.All(), true)
		return
	}
	if len(p.New) > 0 {
		r.Message("%s", r.loc.NewOffersHeader)
		r.Offers(p.New, true)
		fmt.Fprintf(r.w, "\n%s\n%s\n\n", r.loc.AllCaughtUpTitle, r.loc.AllCaughtUpSubtitle)
	}
	r.Offers(p.Current, true)
}

// Offers prints a list of offers, as seen by a searcher if browse, otherwise as seen by their publisher
func (r *Renderer) Offers(offers []repoapi.Offer, browse bool) {
	if len(offers) == 0 {
		return
	}
	now := r.now()
	tw := r.table()
	if browse {
		fmt.Fprintln(tw, "ID\tORIGIN\tDESTINATION\tEST. DEPARTURE\tEST. ARRIVAL\tSHIPPING LINE\tTEUs\tPRICE\tEXPIRES")
	} else {
		fmt.Fprintln(tw, "ID\tORIGIN\tDESTINATION\tSERVICE\tEST. DEPARTURE\tEST. ARRIVAL\tCOMPANIES\tTEUs\tOFFER OPTIONS\tPRICE\tEXPIRES")
	}
	for _, o := range offers {
		teus := ""
		if o.TEUVisible {
			teus = strconv.Itoa(o.NbTEU)
		}
		if browse {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				o.ID,
				Terminal(o.OriginTerminal),
				Terminal(o.DestinationTerminal),
				FormatDate(o.ETDAt.Time),
				FormatDate(o.ETAAt.Time),
				Company(o, r.loc),
				teus,
				Prices(o, r.loc),
				TimeLeft(o.ExpiryOfferAt.Time, now, r.loc))
			continue
		}
		companies := r.loc.UndisclosedLabel
		if len(o.WhitelistOwners) > 0 {
			companies = fmt.Sprintf("%d selected", len(o.WhitelistOwners))
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			o.ID,
			Terminal(o.OriginTerminal),
			Terminal(o.DestinationTerminal),
			o.ServiceCode,
			FormatDate(o.ETDAt.Time),
			FormatDate(o.ETAAt.Time),
			companies,
			teus,
			OfferOptions(o.ForSale, o.ForSwap),
			Prices(o, r.loc),
			TimeLeft(o.ExpiryOfferAt.Time, now, r.loc))
	}
	_ = tw.Flush()
}

// MyOffers prints the user's own offers under the given title, the highlighted one first
func (r *Renderer) MyOffers(title string, highlighted *repoapi.Offer, rest []repoapi.Offer) {
	r.Message("%s", title)
	if highlighted != nil {
		r.Offers([]repoapi.Offer{*highlighted}, false)
		fmt.Fprintln(r.w)
	}
	if len(rest) == 0 && highlighted == nil {
		r.Message("%s", r.loc.NoOffersMessage)
		return
	}
	r.Offers(rest, false)
}

// Alerts prints a list of search alerts
func (r *Renderer) Alerts(alerts []repoapi.SearchAlert) {
	if len(alerts) == 0 {
		r.Message("%s", r.loc.NoAlertsMessage)
		return
	}
	tw := r.table()
	fmt.Fprintln(tw, "ID\tORIGIN\tDESTINATION\tLOADING DATES\tARRIVAL DATES\tSHIPPING LINES\tOFFER OPTIONS\tMAX PRICE\tEMAIL")
	for _, a := range alerts {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s - %s\t%s - %s\t%s\t%s\t%s\t%t\n",
			a.ID,
			Location(a.Origin),
			Location(a.Destination),
			FormatDate(a.StartLoadingOn.Time), FormatDate(a.EndLoadingOn.Time),
			FormatDate(a.MinETAAt.Time), FormatDate(a.MaxETAAt.Time),
			ShippingLines(a.WhitelistLines, r.loc),
			alert.OptionsLabel(a.ForSale, a.ForSwap),
			MaxPrices(a, r.loc),
			a.NotificationEmail)
	}
	_ = tw.Flush()
}

// Profile prints a user's profile and their company's members
func (r *Renderer) Profile(p repoapi.Profile) {
	tw := r.table()
	fmt.Fprintf(tw, "Name\t%s\n", p.FullName())
	fmt.Fprintf(tw, "Email\t%s\n", p.Email)
	fmt.Fprintf(tw, "Role\t%s\n", p.Role)
	if p.MobilePhone != "" {
		fmt.Fprintf(tw, "Mobile phone\t%s\n", p.MobilePhone)
	}
	if p.Company != nil {
		fmt.Fprintf(tw, "Company\t%s\n", p.Company.Name)
		for _, u := range p.Company.Users {
			if u.ID == p.ID {
				continue
			}
			fmt.Fprintf(tw, "\t%s <%s>\n", u.FullName(), u.Email)
		}
	}
	_ = tw.Flush()
}

// Companies prints a list of shipping lines
func (r *Renderer) Companies(companies []repoapi.Company) {
	tw := r.table()
	fmt.Fprintln(tw, "ID\tNAME")
	for _, c := range companies {
		fmt.Fprintf(tw, "%d\t%s\n", c.ID, c.Name)
	}
	_ = tw.Flush()
}

// Services prints a list of line services, with their stops
func (r *Renderer) Services(services []repoapi.LineService) {
	tw := r.table()
	fmt.Fprintln(tw, "ID\tSERVICE\tSTOPS")
	for _, s := range services {
		stops := make([]string, 0, len(s.LineServiceStops))
		for _, stop := range s.LineServiceStops {
			stops = append(stops, fmt.Sprintf("%d. %s", stop.Position, Terminal(&stop.Terminal)))
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", s.ID, s.ServiceCode, strings.Join(stops, ", "))
	}
	_ = tw.Flush()
}

// Locations prints location search results with the identifiers to search by
func (r *Renderer) Locations(locations []repoapi.Location) {
	tw := r.table()
	fmt.Fprintln(tw, "TYPE\tID\tLOCATION")
	for _, l := range locations {
		sel, err := l.Selection()
		if err != nil {
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\n", sel.Type, sel.ID, sel.Label)
	}
	_ = tw.Flush()
}

// FilterSummary prints how many of the results are shown, and how they are sorted
func (r *Renderer) FilterSummary(shown, total int, sortedBy string) {
	if sortedBy != "" {
		fmt.Fprintf(r.w, "%d/%d offers, sorted by %s\n", shown, total, sortedBy)
		return
	}
	fmt.Fprintf(r.w, "%d/%d offers\n", shown, total)
}
