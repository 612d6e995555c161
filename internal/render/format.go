// Package render prints the client's pages as plain text.
package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"Reposition/internal/locale"
	"Reposition/pkg/repoapi"
)

const dateLayout = "2 Jan 2006"

// FormatDate formats a date like `5 Mar 2024`, the zero time as an empty string
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// TimeLeft describes the time left until an offer expires
func TimeLeft(expiry, now time.Time, loc *locale.Locale) string {
	if expiry.IsZero() {
		return loc.ExpiredLabel
	}
	left := expiry.Sub(now)
	hours := int(left / time.Hour)
	days := int(left / (24 * time.Hour))
	switch {
	case left < 0:
		return loc.ExpiredLabel
	case days > 0:
		return fmt.Sprintf(loc.DaysLeftFormat, days)
	}
	return fmt.Sprintf(loc.HoursLeftFormat, hours)
}

// Number formats a number with the locale's decimal separator and no trailing zeros
func Number(v float64, loc *locale.Locale) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if loc.DecimalSeparator != '.' {
		s = strings.Replace(s, ".", string(loc.DecimalSeparator), 1)
	}
	return s
}

// Price formats an offer price like `US$ 100/TEU`, empty when there's no price
func Price(v float64, unit string, loc *locale.Locale) string {
	if v == 0 {
		return ""
	}
	return fmt.Sprintf("US$ %s/%s", Number(v, loc), unit)
}

// Prices formats both prices of an offer
func Prices(o repoapi.Offer, loc *locale.Locale) string {
	var prices []string
	if p := Price(o.PriceTEU, "TEU", loc); p != "" {
		prices = append(prices, p)
	}
	if p := Price(o.PriceFEU, "FEU", loc); p != "" {
		prices = append(prices, p)
	}
	if len(prices) == 0 {
		return loc.NoPriceLabel
	}
	return strings.Join(prices, " ")
}

// MaxPrices formats the price caps of a search alert like `1000/TEU • 1600/FEU`
func MaxPrices(a repoapi.SearchAlert, loc *locale.Locale) string {
	return Number(a.MaxPriceTEU, loc) + "/TEU • " + Number(a.MaxPriceFEU, loc) + "/FEU"
}

// OfferOptions lists the options an offer has, like `Sale • Slot Swap`
func OfferOptions(forSale, forSwap bool) string {
	var options []string
	if forSale {
		options = append(options, "Sale")
	}
	if forSwap {
		options = append(options, "Slot Swap")
	}
	return strings.Join(options, " • ")
}

// ShippingLines lists the first two shipping lines, counting the rest
func ShippingLines(lines []string, loc *locale.Locale) string {
	if len(lines) == 0 {
		return loc.UndisclosedLabel
	}
	if len(lines) <= 2 {
		return strings.Join(lines, ", ")
	}
	return fmt.Sprintf("%s (+%d)", strings.Join(lines[:2], ", "), len(lines)-2)
}

// Terminal formats a terminal like `Barcelona (BEST)`
func Terminal(t *repoapi.Terminal) string {
	if t == nil {
		return ""
	}
	if t.Name == "" {
		return t.PortName
	}
	return fmt.Sprintf("%s (%s)", t.PortName, t.Name)
}

// Location formats an alert's origin or destination
func Location(l *repoapi.Location) string {
	if l == nil {
		return ""
	}
	return l.Label()
}

// Company returns the name of an offer's shipping line
func Company(o repoapi.Offer, loc *locale.Locale) string {
	if o.CompanyName == "" {
		return loc.UndisclosedLabel
	}
	return o.CompanyName
}
