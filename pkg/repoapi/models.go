package repoapi

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// user roles
const (
	RoleCapacity  = "capacity"  // publishes slot offers
	RoleEquipment = "equipment" // searches slot offers
)

// Profile represents a user's profile
// Endpoint: /users/profile
type Profile struct {
	ID          int64           `json:"id"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Email       string          `json:"email"`
	Role        string          `json:"role"`
	Company     *ProfileCompany `json:"company,omitempty"`
	MobilePhone string          `json:"mobile_phone"`
}

// FullName returns `${firstName} ${lastName}`
func (p Profile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// ProfileCompany represents the company a Profile belongs to
type ProfileCompany struct {
	Name  string    `json:"name"`
	Users []Profile `json:"users"`
}

// Credentials represents a sign-in response: the session tokens plus the signed-in user's profile
// Endpoint: /users/sign_in
type Credentials struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Profile
}

// Company represents a shipping line
// Endpoint: /companies/
type Company struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Terminal represents a port terminal
type Terminal struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	PortName string `json:"port_name"`
}

// Offer represents a slot offer
// Endpoints: /offers, /offers/my/, /offers/:id
type Offer struct {
	ID                  int64     `json:"id"`
	OriginTerminal      *Terminal `json:"origin_terminal,omitempty"`
	DestinationTerminal *Terminal `json:"destination_terminal,omitempty"`
	ServiceCode         string    `json:"service_code"`
	ETDAt               Time      `json:"etd_at"`
	ETAAt               Time      `json:"eta_at"`
	NbTEU               int       `json:"nb_teu"`
	TEUVisible          bool      `json:"teu_visible"`
	ForSale             bool      `json:"for_sale"`
	ForSwap             bool      `json:"for_swap"`
	PriceTEU            float64   `json:"price_teu"`
	PriceFEU            float64   `json:"price_feu"`
	WhitelistOwners     []string  `json:"whitelist_owners"`
	ExpiryOfferAt       Time      `json:"expiry_offer_at"`
	ContactEmail        string    `json:"contact_email"`
	CompanyVisible      bool      `json:"company_visible"`
	CompanyName         string    `json:"company_name"`
	DeletedAt           *Time     `json:"deleted_at,omitempty"`
}

// Deleted reports whether the offer has been deleted on server
func (o Offer) Deleted() bool {
	return o.DeletedAt != nil && !o.DeletedAt.IsZero()
}

// OfferPartition represents an offer search result, split into offers new to the user and the rest
// Endpoints: /offers?..., /search_alerts/:id/offers
type OfferPartition struct {
	New     []Offer `json:"new"`
	Current []Offer `json:"current"`
}

// All returns the new offers followed by the current ones, in a fresh slice
func (p OfferPartition) All() []Offer {
	all := make([]Offer, 0, len(p.New)+len(p.Current))
	all = append(all, p.New...)
	return append(all, p.Current...)
}

// Len returns the number of offers in both partitions
func (p OfferPartition) Len() int {
	return len(p.New) + len(p.Current)
}

// OfferRequest represents the payload for creating or updating an offer
type OfferRequest struct {
	ID                    int64    `json:"id,omitempty"`
	OriginTerminalID      int64    `json:"origin_terminal_id"`
	DestinationTerminalID int64    `json:"destination_terminal_id"`
	ServiceCode           string   `json:"service_code"`
	ETDAt                 Time     `json:"etd_at"`
	ETAAt                 Time     `json:"eta_at"`
	NbTEU                 int      `json:"nb_teu"`
	TEUVisible            bool     `json:"teu_visible"`
	ForSale               bool     `json:"for_sale"`
	ForSwap               bool     `json:"for_swap"`
	PriceTEU              float64  `json:"price_teu"`
	PriceFEU              float64  `json:"price_feu"`
	WhitelistOwners       []string `json:"whitelist_owners"`
	ExpiryOfferAt         Time     `json:"expiry_offer_at"`
	ContactEmail          string   `json:"contact_email"`
	CompanyVisible        bool     `json:"company_visible"`
}

// Inquiry represents a request for a slot offer sent to its publisher
// Endpoint: /inquiries/
type Inquiry struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Quantity int    `json:"quantity"`
	OfferID  int64  `json:"offer_id"`
}

// Undisclosed is sent instead of a list of shipping lines when none has been selected
const Undisclosed = "Undisclosed"

// WhitelistLines represents the shipping lines a search alert is restricted to
// an empty list is encoded as the string "Undisclosed", and decoded back to an empty list
type WhitelistLines []string

// MarshalJSON implements the json.Marshaler interface for WhitelistLines type
func (w WhitelistLines) MarshalJSON() ([]byte, error) {
	if len(w) == 0 {
		return json.Marshal(Undisclosed)
	}
	return json.Marshal([]string(w))
}

// UnmarshalJSON implements the json.Unmarshaler interface for WhitelistLines type
func (w *WhitelistLines) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*w = nil
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" || s == Undisclosed {
			*w = nil
		} else {
			*w = WhitelistLines{s}
		}
		return nil
	}

	var lines []string
	if err := json.Unmarshal(b, &lines); err != nil {
		return err
	}
	*w = lines
	return nil
}

// Undisclosed reports whether no shipping line has been selected
func (w WhitelistLines) Undisclosed() bool {
	return len(w) == 0
}

// SearchAlert represents a saved search
// Endpoints: /search_alerts/, /search_alerts/:id
type SearchAlert struct {
	ID                int64          `json:"id"`
	Origin            *Location      `json:"origin,omitempty"`
	Destination       *Location      `json:"destination,omitempty"`
	StartLoadingOn    Time           `json:"start_loading_on"`
	EndLoadingOn      Time           `json:"end_loading_on"`
	ForSale           bool           `json:"for_sale"`
	ForSwap           bool           `json:"for_swap"`
	MaxPriceTEU       float64        `json:"max_price_teu"`
	MaxPriceFEU       float64        `json:"max_price_feu"`
	NoPrice           bool           `json:"no_price"`
	MinETAAt          Time           `json:"min_eta_at"`
	MaxETAAt          Time           `json:"max_eta_at"`
	WhitelistLines    WhitelistLines `json:"whitelist_lines"`
	NotificationEmail bool           `json:"notification_email"`
}

// SearchAlertRequest represents the payload for creating a search alert
type SearchAlertRequest struct {
	OriginableID      int64          `json:"originable_id"`
	OriginableType    string         `json:"originable_type"`
	DestinationID     int64          `json:"destination_id"`
	DestinationType   string         `json:"destination_type"`
	StartLoadingOn    Time           `json:"start_loading_on"`
	EndLoadingOn      Time           `json:"end_loading_on"`
	ForSale           bool           `json:"for_sale"`
	ForSwap           bool           `json:"for_swap"`
	MaxPriceTEU       float64        `json:"max_price_teu"`
	MaxPriceFEU       float64        `json:"max_price_feu"`
	NoPrice           bool           `json:"no_price"`
	MinETAAt          Time           `json:"min_eta_at"`
	MaxETAAt          Time           `json:"max_eta_at"`
	WhitelistLines    WhitelistLines `json:"whitelist_lines"`
	NotificationEmail bool           `json:"notification_email"`
}

// Area represents a named geographic area of a Location
type Area struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Location represents a location search result, from the broadest area to the most specific one
// Endpoint: /locations?kw=
type Location struct {
	Type     string `json:"type"`
	Region   *Area  `json:"region,omitempty"`
	Country  *Area  `json:"country,omitempty"`
	Port     *Area  `json:"port,omitempty"`
	Terminal *Area  `json:"terminal,omitempty"`
}

// areas returns the Location's areas from the broadest to the most specific one
func (l Location) areas() []*Area {
	return []*Area{l.Region, l.Country, l.Port, l.Terminal}
}

// Label returns the Location's area names joined from the broadest to the most specific one
func (l Location) Label() string {
	var names []string
	for _, a := range l.areas() {
		if a != nil {
			names = append(names, a.Name)
		}
	}
	return strings.Join(names, " > ")
}

// Selection returns the Location's most specific area as an origin or destination of a search
func (l Location) Selection() (Selection, error) {
	areas := l.areas()
	for i := len(areas) - 1; i >= 0; i-- {
		if a := areas[i]; a != nil && a.ID != 0 {
			return Selection{
				ID:            a.ID,
				Type:          l.Type,
				Label:         l.Label(),
				SelectedLabel: a.Name,
			}, nil
		}
	}
	return Selection{}, ErrInvalidLocation
}

// Selection represents a selected origin or destination of an offer search
type Selection struct {
	ID            int64
	Type          string
	Label         string
	SelectedLabel string
}

// LineService represents a shipping line service
// Endpoints: /line_services/, /line_services/:id/
type LineService struct {
	ID               int64             `json:"id"`
	ServiceCode      string            `json:"service_code"`
	LineServiceStops []LineServiceStop `json:"line_service_stops,omitempty"`
}

// LineServiceStop represents a port call of a LineService
type LineServiceStop struct {
	Position int      `json:"position"`
	ETDAt    Time     `json:"etd_at"`
	ETAAt    Time     `json:"eta_at"`
	Terminal Terminal `json:"terminal"`
}

// Stop returns the stop at the given position
func (s LineService) Stop(position int) (LineServiceStop, bool) {
	for _, stop := range s.LineServiceStops {
		if stop.Position == position {
			return stop, true
		}
	}
	return LineServiceStop{}, false
}

// Time represents the ISO 8601 date and date-time values in API JSONs
type Time struct {
	time.Time
}

// layouts accepted when parsing, tried in order; the ones without offset are read in local time
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// isoLayout matches the format browsers produce with Date.prototype.toISOString
const isoLayout = "2006-01-02T15:04:05.000Z"

// ParseTime parses an ISO 8601 date or date-time string
// date-only and offset-less values are interpreted in local time
func ParseTime(s string) (time.Time, error) {
	var err error
	for i, layout := range timeLayouts {
		var t time.Time
		if i == 0 {
			t, err = time.Parse(layout, s)
		} else {
			t, err = time.ParseInLocation(layout, s, time.Local)
		}
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// NewTime wraps the given time.Time
func NewTime(t time.Time) Time {
	return Time{t}
}

// ISO formats the time like toISOString does: UTC with millisecond precision
func (t Time) ISO() string {
	return t.UTC().Format(isoLayout)
}

// UnmarshalJSON implements the json.Unmarshaler interface for Time type
// null and empty strings are decoded to the zero time
func (t *Time) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), "\"")
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}

	var err error
	t.Time, err = ParseTime(s)
	return err
}

// MarshalJSON implements the json.Marshaler interface for Time type
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.ISO())
}
