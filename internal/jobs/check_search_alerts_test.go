package jobs

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"

	"Reposition/internal/session"
	"Reposition/pkg/repoapi"
)

type fakeAPI struct {
	alerts     []repoapi.SearchAlert
	partitions map[int64]repoapi.OfferPartition
	errs       map[int64]error
	calls      []int64
}

func (f *fakeAPI) GetSearchAlerts(context.Context) ([]repoapi.SearchAlert, error) {
	return f.alerts, nil
}

func (f *fakeAPI) GetSearchAlertOffers(_ context.Context, ID int64) (repoapi.OfferPartition, error) {
	f.calls = append(f.calls, ID)
	if err := f.errs[ID]; err != nil {
		return repoapi.OfferPartition{}, err
	}
	return f.partitions[ID], nil
}

type signedIn bool

func (s signedIn) Exist() bool { return bool(s) }

type denyLimiter map[int64]bool

func (d denyLimiter) AlertCheckAllowed(_ context.Context, alertID int64) bool {
	return !d[alertID]
}

type recordingNotifier struct {
	notified map[int64][]int64
}

func (r *recordingNotifier) Notify(_ context.Context, a repoapi.SearchAlert, offers []repoapi.Offer) error {
	for _, o := range offers {
		r.notified[a.ID] = append(r.notified[a.ID], o.ID)
	}
	return nil
}

func offers(ids ...int64) []repoapi.Offer {
	result := make([]repoapi.Offer, len(ids))
	for i, id := range ids {
		result[i] = repoapi.Offer{ID: id}
	}
	return result
}

func newTestChecker(api *fakeAPI, limiter Limiter) (*Checker, *recordingNotifier, *session.MemoryStorage) {
	n := &recordingNotifier{notified: map[int64][]int64{}}
	storage := session.NewMemoryStorage()
	return NewChecker(api, signedIn(true), storage, "repo", limiter, n), n, storage
}

func TestCheckSearchAlertsFirstRunOnlyRecords(t *testing.T) {
	api := &fakeAPI{
		alerts: []repoapi.SearchAlert{{ID: 1}},
		partitions: map[int64]repoapi.OfferPartition{
			1: {New: offers(5, 7), Current: offers(3)},
		},
	}
	c, n, storage := newTestChecker(api, denyLimiter{})
	ctx := context.Background()

	c.CheckSearchAlerts(ctx)
	if len(n.notified) != 0 {
		t.Errorf("first run notified %v", n.notified)
	}
	if v, _ := storage.Get(ctx, "repo:lastOffer:1"); v != "7" {
		t.Errorf("recorded last offer = %q, want 7", v)
	}

	api.partitions[1] = repoapi.OfferPartition{New: offers(9, 7, 8), Current: offers(5, 3)}
	c.CheckSearchAlerts(ctx)
	if diff := cmp.Diff(map[int64][]int64{1: {9, 8}}, n.notified); diff != "" {
		t.Errorf("notified mismatch (-want +got):\n%s", diff)
	}
	if v, _ := storage.Get(ctx, "repo:lastOffer:1"); v != "9" {
		t.Errorf("recorded last offer = %q, want 9", v)
	}

	// nothing newer
	c.CheckSearchAlerts(ctx)
	if diff := cmp.Diff(map[int64][]int64{1: {9, 8}}, n.notified); diff != "" {
		t.Errorf("notified again (-want +got):\n%s", diff)
	}
}

func TestCheckSearchAlertsSkipsLimited(t *testing.T) {
	api := &fakeAPI{
		alerts: []repoapi.SearchAlert{{ID: 1}, {ID: 2}},
		partitions: map[int64]repoapi.OfferPartition{
			1: {New: offers(4)},
			2: {New: offers(6)},
		},
	}
	c, _, _ := newTestChecker(api, denyLimiter{1: true})
	c.CheckSearchAlerts(context.Background())
	if diff := cmp.Diff([]int64{2}, api.calls); diff != "" {
		t.Errorf("checked alerts mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckSearchAlertsStopsOnAuthError(t *testing.T) {
	api := &fakeAPI{
		alerts: []repoapi.SearchAlert{{ID: 1}, {ID: 2}, {ID: 3}},
		errs: map[int64]error{
			1: &repoapi.APIError{StatusCode: http.StatusInternalServerError},
			2: &repoapi.APIError{StatusCode: http.StatusUnauthorized},
		},
	}
	c, _, _ := newTestChecker(api, denyLimiter{})
	c.CheckSearchAlerts(context.Background())
	if diff := cmp.Diff([]int64{1, 2}, api.calls); diff != "" {
		t.Errorf("checked alerts mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckSearchAlertsNeedsSession(t *testing.T) {
	api := &fakeAPI{alerts: []repoapi.SearchAlert{{ID: 1}}}
	n := &recordingNotifier{notified: map[int64][]int64{}}
	c := NewChecker(api, signedIn(false), session.NewMemoryStorage(), "", denyLimiter{}, n)
	c.CheckSearchAlerts(context.Background())
	if len(api.calls) != 0 {
		t.Errorf("checked alerts %v without a session", api.calls)
	}
}
