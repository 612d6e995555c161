// Package route guards the client's pages: which page a user ends up on depends on whether they're signed in
// and on their role.
package route

import (
	"strings"

	"Reposition/pkg/repoapi"
)

// paths
const (
	Landing      = "/"
	CreateOffer  = "/create-offer"
	MyOffers     = "/my-offers"
	BrowseOffers = "/browse-offers"
	SearchAlerts = "/search-alerts"
	EditOffer    = "/edit-offer"
	Profile      = "/profile"
)

var restricted = map[string]bool{
	CreateOffer:  true,
	MyOffers:     true,
	BrowseOffers: true,
	SearchAlerts: true,
	EditOffer:    true,
	Profile:      true,
}

// Viewer represents the user visiting a page
type Viewer interface {
	Authorized() bool
	Role() string
}

// Home returns the default page of the given role
func Home(role string) string {
	if role == repoapi.RoleCapacity {
		return MyOffers
	}
	return BrowseOffers
}

// Resolve returns the page the viewer ends up on when visiting the given path, and whether they were redirected
func Resolve(path string, v Viewer) (target string, redirected bool) {
	path = normalize(path)
	if !v.Authorized() {
		return Landing, path != Landing
	}
	if restricted[path] {
		return path, false
	}
	return Home(v.Role()), true
}

// normalize strips the query string and trailing slashes
func normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimRight(path, "/")
	if path == "" {
		return Landing
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}
