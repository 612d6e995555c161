// Package locale holds the user-facing strings of the client in each supported language.
package locale

// Locale represents a locale (group of translations)
type Locale struct {
	GreetingMessage           string
	NotSignedInMessage        string
	LoginSucceededMessage     string
	LogoutSucceededMessage    string
	SessionExpiredMessage     string
	InternalErrorMessage      string
	PasswordChangedMessage    string
	InquirySentMessage        string
	InquiryRateLimitedMessage string
	OfferCreatedMessage       string
	OfferUpdatedMessage       string
	OfferDeletedMessage       string
	AlertCreatedMessage       string
	AlertDeletedMessage       string
	NoOffersMessage           string
	NoAlertsMessage           string
	AllCaughtUpTitle          string
	AllCaughtUpSubtitle       string
	NewOffersHeader           string
	MyOffersTitle             string
	MyTeamOffersTitle         string
	MyExpiredOffersTitle      string
	MyDeletedOffersTitle      string
	ExpiredLabel              string
	DaysLeftFormat            string
	HoursLeftFormat           string
	NoPriceLabel              string
	UndisclosedLabel          string
	AlertOffersMessageHeader  string
	DecimalSeparator          rune
}

var defaultLocale = &en

// Get returns a Locale by the given language code
func Get(languageCode string) *Locale {
	switch languageCode {
	case "ca":
		return &ca
	case "es":
		return &es
	case "en":
		return &en
	default:
		return defaultLocale
	}
}
