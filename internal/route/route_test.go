package route

import (
	"testing"

	"Reposition/pkg/repoapi"
)

type viewer struct {
	authorized bool
	role       string
}

func (v viewer) Authorized() bool { return v.authorized }
func (v viewer) Role() string     { return v.role }

func TestResolve(t *testing.T) {
	anonymous := viewer{}
	capacity := viewer{true, repoapi.RoleCapacity}
	equipment := viewer{true, repoapi.RoleEquipment}

	tests := []struct {
		name           string
		path           string
		viewer         Viewer
		wantTarget     string
		wantRedirected bool
	}{
		{"anonymous on landing", "/", anonymous, Landing, false},
		{"anonymous on restricted page", "/my-offers", anonymous, Landing, true},
		{"capacity on landing", "/", capacity, MyOffers, true},
		{"equipment on landing", "", equipment, BrowseOffers, true},
		{"equipment on restricted page", "/search-alerts?id=3", equipment, SearchAlerts, false},
		{"capacity on other role's home", "/browse-offers/", capacity, BrowseOffers, false},
		{"unknown page", "/nowhere", capacity, MyOffers, true},
		{"unloaded profile", "/", viewer{authorized: true}, BrowseOffers, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, redirected := Resolve(tt.path, tt.viewer)
			if target != tt.wantTarget || redirected != tt.wantRedirected {
				t.Errorf("Resolve(%q) = %q, %v, want %q, %v", tt.path, target, redirected, tt.wantTarget, tt.wantRedirected)
			}
		})
	}
}
