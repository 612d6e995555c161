package filter

import (
	"time"

	"github.com/pkg/errors"

	"Reposition/pkg/repoapi"
)

// View represents a view of the user's own offers
type View string

// views
const (
	ViewActive  View = "active"
	ViewTeam    View = "team"
	ViewExpired View = "expired"
	ViewDeleted View = "deleted"
)

// ErrUnknownView is returned when parsing an unknown view
var ErrUnknownView = errors.New("filter: unknown offers view")

// ParseView parses a view name, empty meaning ViewActive
func ParseView(s string) (View, error) {
	switch v := View(s); v {
	case "":
		return ViewActive, nil
	case ViewActive, ViewTeam, ViewExpired, ViewDeleted:
		return v, nil
	}
	return "", errors.Wrapf(ErrUnknownView, "%q", s)
}

// includes reports whether the view shows the given offer
func (v View) includes(o repoapi.Offer, now time.Time) bool {
	future := o.ExpiryOfferAt.After(now)
	deleted := o.Deleted()
	switch v {
	case ViewActive:
		return !deleted && future
	case ViewTeam:
		return !deleted || future
	case ViewExpired:
		return !future && !deleted
	case ViewDeleted:
		return deleted && future
	}
	return false
}

// MyOffers returns the offer with the highlighted ID (e.g. one just published) apart from the rest, and the
// rest of the offers the given view shows
func MyOffers(offers []repoapi.Offer, view View, highlightID int64, now time.Time) (highlighted *repoapi.Offer, rest []repoapi.Offer) {
	rest = make([]repoapi.Offer, 0, len(offers))
	for i := range offers {
		o := offers[i]
		if highlightID != 0 && o.ID == highlightID {
			highlighted = &o
			continue
		}
		if view.includes(o, now) {
			rest = append(rest, o)
		}
	}
	return
}
