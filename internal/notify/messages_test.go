package notify

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/go-cmp/cmp"
	tb "gopkg.in/telebot.v3"

	"Reposition/internal/locale"
	"Reposition/pkg/repoapi"
)

var testAlert = repoapi.SearchAlert{
	ID:          3,
	Origin:      &repoapi.Location{Type: "Port", Region: &repoapi.Area{ID: 1, Name: "Europe"}, Port: &repoapi.Area{ID: 9, Name: "Valencia"}},
	Destination: &repoapi.Location{Type: "Port", Port: &repoapi.Area{ID: 12, Name: "Shanghai"}},
}

func testOffer(id int64) repoapi.Offer {
	return repoapi.Offer{
		ID:                  id,
		OriginTerminal:      &repoapi.Terminal{PortName: "Valencia", Name: "CSP"},
		DestinationTerminal: &repoapi.Terminal{PortName: "Shanghai"},
		ETDAt:               repoapi.NewTime(time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)),
		ETAAt:               repoapi.NewTime(time.Date(2024, 4, 2, 10, 0, 0, 0, time.UTC)),
		CompanyName:         "H&M Lines",
		PriceTEU:            900,
	}
}

func TestAlertOffersMessage_String(t *testing.T) {
	m := NewAlertOffersMessage(testAlert, []repoapi.Offer{testOffer(1)}, locale.Get("en"))
	want := "<b>1 new offers</b> for your search alert <i>Europe &gt; Valencia → Shanghai</i>:\n\n" +
		"• <b>Valencia (CSP) → Shanghai</b>\n5 Mar 2024 - 2 Apr 2024  H&amp;M Lines\nUS$ 900/TEU"
	if got := m.String(); got != want {
		t.Error(cmp.Diff(want, got))
	}
}

func TestSplitAlertOffers(t *testing.T) {
	loc := locale.Get("en")
	if got := SplitAlertOffers(testAlert, nil, loc); got != nil {
		t.Errorf("SplitAlertOffers(nil) = %v, want nil", got)
	}

	offers := make([]repoapi.Offer, 100)
	for i := range offers {
		offers[i] = testOffer(int64(i + 1))
	}
	messages := SplitAlertOffers(testAlert, offers, loc)
	if len(messages) < 2 {
		t.Fatalf("got %d messages, want the offers split", len(messages))
	}
	var ids []int64
	for _, m := range messages {
		text := m.String()
		if n := len([]rune(text)); n > maxMessageLength {
			t.Errorf("message of %d runes is too long", n)
		}
		if !strings.HasPrefix(text, "<b>100 new offers</b>") {
			t.Errorf("message header = %q", text[:40])
		}
		for _, o := range m.Offers {
			ids = append(ids, o.ID)
		}
	}
	want := make([]int64, 100)
	for i := range want {
		want[i] = int64(i + 1)
	}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("offers mismatch (-want +got):\n%s", diff)
	}
}

type fakeSender struct {
	errs []error
	sent []string
}

func (f *fakeSender) Send(_ tb.Recipient, what interface{}, _ ...interface{}) (*tb.Message, error) {
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	f.sent = append(f.sent, what.(string))
	return &tb.Message{}, nil
}

func newTestNotifier(s sender) *TelegramNotifier {
	n := newTelegramNotifier(s, 42, locale.Get("en"))
	n.backoff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	return n
}

func TestTelegramNotifierRetries(t *testing.T) {
	s := &fakeSender{errs: []error{tb.ErrInternal, tb.ErrInternal}}
	if err := newTestNotifier(s).Notify(context.Background(), testAlert, []repoapi.Offer{testOffer(1)}); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}
	if len(s.sent) != 1 {
		t.Errorf("sent %d messages, want 1", len(s.sent))
	}
}

func TestTelegramNotifierGivesUp(t *testing.T) {
	s := &fakeSender{errs: []error{tb.ErrBlockedByUser}}
	if err := newTestNotifier(s).Notify(context.Background(), testAlert, []repoapi.Offer{testOffer(1)}); err == nil {
		t.Fatal("Notify() succeeded, want an error")
	}
	if len(s.sent) != 0 {
		t.Errorf("sent %d messages after a permanent error", len(s.sent))
	}

	s = &fakeSender{errs: []error{tb.ErrInternal, tb.ErrInternal, tb.ErrInternal, tb.ErrInternal}}
	if err := newTestNotifier(s).Notify(context.Background(), testAlert, []repoapi.Offer{testOffer(1)}); err == nil {
		t.Fatal("Notify() succeeded after exhausting the retries")
	}
}
