package notify

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"Reposition/internal/locale"
	"Reposition/internal/render"
	"Reposition/pkg/repoapi"
)

// maxMessageLength is Telegram's limit for a message text
const maxMessageLength = 4096

// AlertOffersMessage represents a message listing new offers of a search alert
type AlertOffersMessage struct {
	Alert  repoapi.SearchAlert
	Offers []repoapi.Offer
	total  int
	loc    *locale.Locale
}

// NewAlertOffersMessage creates a message listing all the given offers
func NewAlertOffersMessage(a repoapi.SearchAlert, offers []repoapi.Offer, loc *locale.Locale) AlertOffersMessage {
	return AlertOffersMessage{Alert: a, Offers: offers, total: len(offers), loc: loc}
}

// AlertLabel names a search alert by its route, like `Europe > Valencia → Asia > Shanghai`
func AlertLabel(a repoapi.SearchAlert) string {
	return render.Location(a.Origin) + " → " + render.Location(a.Destination)
}

func (m AlertOffersMessage) header(total int) string {
	return fmt.Sprintf(m.loc.AlertOffersMessageHeader, total, html.EscapeString(AlertLabel(m.Alert)))
}

// offerEntry formats an offer as a message entry
func offerEntry(o repoapi.Offer, loc *locale.Locale) string {
	return fmt.Sprintf("• <b>%s → %s</b>\n%s - %s  %s\n%s",
		html.EscapeString(render.Terminal(o.OriginTerminal)),
		html.EscapeString(render.Terminal(o.DestinationTerminal)),
		render.FormatDate(o.ETDAt.Time),
		render.FormatDate(o.ETAAt.Time),
		html.EscapeString(render.Company(o, loc)),
		html.EscapeString(render.Prices(o, loc)))
}

// String formats an AlertOffersMessage to a proper string ready to be sent by bot
func (m AlertOffersMessage) String() string {
	var sb strings.Builder
	sb.WriteString(m.header(m.total))
	for _, o := range m.Offers {
		sb.WriteString("\n\n")
		sb.WriteString(offerEntry(o, m.loc))
	}
	return sb.String()
}

// SplitAlertOffers formats the offers of an alert into messages short enough to be sent by bot
// every message carries the same header counting all the offers
func SplitAlertOffers(a repoapi.SearchAlert, offers []repoapi.Offer, loc *locale.Locale) []AlertOffersMessage {
	if len(offers) == 0 {
		return nil
	}
	base := AlertOffersMessage{Alert: a, total: len(offers), loc: loc}
	headerLength := utf8.RuneCountInString(base.header(len(offers)))

	var messages []AlertOffersMessage
	current := base
	length := headerLength
	for _, o := range offers {
		entryLength := utf8.RuneCountInString(offerEntry(o, loc)) + 2
		if len(current.Offers) > 0 && length+entryLength > maxMessageLength {
			messages = append(messages, current)
			current = base
			length = headerLength
		}
		current.Offers = append(current.Offers, o)
		length += entryLength
	}
	return append(messages, current)
}
