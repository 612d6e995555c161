package locale

var en = Locale{
	GreetingMessage:           "Hello, %s!",
	NotSignedInMessage:        "You are not signed in, please use the login command first.",
	LoginSucceededMessage:     "Signed in as %s.",
	LogoutSucceededMessage:    "You have been logged out.",
	SessionExpiredMessage:     "Your session has expired, please log in again.",
	InternalErrorMessage:      "Something went wrong",
	PasswordChangedMessage:    "Password changed successfully",
	InquirySentMessage:        "Inquiries created successfully",
	InquiryRateLimitedMessage: "Too many inquiries for this offer, please try again in a minute.",
	OfferCreatedMessage:       "Offer %d published.",
	OfferUpdatedMessage:       "Offer %d updated.",
	OfferDeletedMessage:       "Offer %d deleted.",
	AlertCreatedMessage:       "Search Alert created successfully",
	AlertDeletedMessage:       "Search Alert deleted successfully",
	NoOffersMessage:           "Don't see what you're looking for? No offers match your search.",
	NoAlertsMessage:           "You have no search alerts.",
	AllCaughtUpTitle:          "You’re all caught up!",
	AllCaughtUpSubtitle:       "You’ve seen all the newest offers available for your search alert!",
	NewOffersHeader:           "New offers",
	MyOffersTitle:             "My offers",
	MyTeamOffersTitle:         "My team offers",
	MyExpiredOffersTitle:      "My expired offers",
	MyDeletedOffersTitle:      "My deleted offers",
	ExpiredLabel:              "expired",
	DaysLeftFormat:            "%d days left",
	HoursLeftFormat:           "%d hrs left",
	NoPriceLabel:              "no price",
	UndisclosedLabel:          "Undisclosed",
	AlertOffersMessageHeader:  "<b>%d new offers</b> for your search alert <i>%s</i>:",
	DecimalSeparator:          '.',
}
