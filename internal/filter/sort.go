package filter

import (
	"sort"
	"strings"

	"github.com/pkg/errors"

	"Reposition/pkg/repoapi"
)

// SortField represents an offer field the results can be sorted by
type SortField string

// sort fields
const (
	SortPriceTEU        SortField = "price_teu"
	SortPriceFEU        SortField = "price_feu"
	SortETD             SortField = "etd_at"
	SortETA             SortField = "eta_at"
	SortOriginPort      SortField = "origin_port"
	SortDestinationPort SortField = "destination_port"
)

// ErrUnknownSortField is returned when parsing an unknown sort field
var ErrUnknownSortField = errors.New("filter: unknown sort field")

// SortFields lists the sort fields in menu order
var SortFields = []SortField{SortPriceTEU, SortPriceFEU, SortETD, SortETA, SortOriginPort, SortDestinationPort}

var sortLabels = map[SortField]string{
	SortPriceTEU:        "TEU Price",
	SortPriceFEU:        "FEU Price",
	SortETD:             "Est. Departure",
	SortETA:             "Est. Arrival",
	SortOriginPort:      "Origin Port Name",
	SortDestinationPort: "Destination Port Name",
}

// Label returns the field's display name
func (f SortField) Label() string {
	return sortLabels[f]
}

// ParseSortField parses a sort field name, the nested field paths of the port names are accepted too
func ParseSortField(s string) (SortField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "price_teu", "teu":
		return SortPriceTEU, nil
	case "price_feu", "feu":
		return SortPriceFEU, nil
	case "etd_at", "etd":
		return SortETD, nil
	case "eta_at", "eta":
		return SortETA, nil
	case "origin_port", "origin_terminal", "origin_terminal.port_name":
		return SortOriginPort, nil
	case "destination_port", "destination_terminal", "destination_terminal.port_name":
		return SortDestinationPort, nil
	}
	return "", errors.Wrapf(ErrUnknownSortField, "%q", s)
}

// less returns the field's ascending comparator
func (f SortField) less() func(a, b repoapi.Offer) bool {
	switch f {
	case SortPriceTEU:
		return func(a, b repoapi.Offer) bool { return a.PriceTEU < b.PriceTEU }
	case SortPriceFEU:
		return func(a, b repoapi.Offer) bool { return a.PriceFEU < b.PriceFEU }
	case SortETD:
		return func(a, b repoapi.Offer) bool { return a.ETDAt.Before(b.ETDAt.Time) }
	case SortETA:
		return func(a, b repoapi.Offer) bool { return a.ETAAt.Before(b.ETAAt.Time) }
	case SortOriginPort:
		return func(a, b repoapi.Offer) bool { return portName(a.OriginTerminal) < portName(b.OriginTerminal) }
	case SortDestinationPort:
		return func(a, b repoapi.Offer) bool {
			return portName(a.DestinationTerminal) < portName(b.DestinationTerminal)
		}
	}
	return nil
}

func portName(t *repoapi.Terminal) string {
	if t == nil {
		return ""
	}
	return t.PortName
}

// Sort returns a copy of the offers sorted ascending by the given field, equal offers keeping their order
func Sort(offers []repoapi.Offer, field SortField) []repoapi.Offer {
	sorted := append([]repoapi.Offer(nil), offers...)
	less := field.less()
	if less == nil {
		return sorted
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	return sorted
}
