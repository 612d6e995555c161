package repoapi

import (
	"time"

	"github.com/pkg/errors"
)

// DefaultBaseURL is used when no base URL is configured
const DefaultBaseURL = "https://api.reposition.it/api/v1/"

// endpoint paths, relative to the base URL
const (
	profilePath            = "users/profile"
	signInPath             = "users/sign_in"
	refreshTokenPath       = "tokens/refresh"
	updatePasswordPath     = "passwords/update_with_password"
	offersPath             = "offers"
	myOffersPath           = "offers/my/"
	createOfferPath        = "offers/"
	offerPathTemplate      = "offers/%d"
	inquiriesPath          = "inquiries/"
	searchAlertsPath       = "search_alerts/"
	searchAlertPathTmpl    = "search_alerts/%d"
	searchAlertOffersTmpl  = "search_alerts/%d/offers"
	companiesPath          = "companies/"
	lineServicesPath       = "line_services/"
	lineServicePathTmpl    = "line_services/%d/"
	locationsPath          = "locations"
	locationsKeywordParam  = "kw"
	startLoadingOnParam    = "start_loading_on"
	endLoadingOnParam      = "end_loading_on"
	originParamTemplate    = "origin_%s_id"
	destinationParamTmpl   = "destination_%s_id"
	requestIDHeader        = "X-Request-Id"
	jsonMimeType           = "application/json"
	defaultRequestTimeout  = 30 * time.Second
	defaultRefreshDebounce = 500 * time.Millisecond
)

// AuthTokenHeader is the header carrying the access token on every request made with a session
const AuthTokenHeader = "Auth-Token"

// errors
var (
	ErrRefreshFailed   = errors.New("repoapi: token refresh failed")
	ErrNoRefreshToken  = errors.New("repoapi: no refresh token")
	ErrMissingTokens   = errors.New("repoapi: sign-in response without tokens")
	ErrInvalidLocation = errors.New("repoapi: location has no identifiable area")
	ErrEmptyKeyword    = errors.New("repoapi: empty location keyword")

	errNotReplayable = errors.New("repoapi: request body cannot be replayed")
)
