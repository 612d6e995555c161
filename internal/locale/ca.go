package locale

var ca = Locale{
	GreetingMessage:           "Hola, %s!",
	NotSignedInMessage:        "No has iniciat sessió, fes servir primer l'ordre login.",
	LoginSucceededMessage:     "Sessió iniciada com a %s.",
	LogoutSucceededMessage:    "Has tancat la sessió.",
	SessionExpiredMessage:     "La teva sessió ha caducat, torna a iniciar sessió.",
	InternalErrorMessage:      "Alguna cosa ha anat malament",
	PasswordChangedMessage:    "Contrasenya canviada correctament",
	InquirySentMessage:        "Sol·licitud enviada correctament",
	InquiryRateLimitedMessage: "Massa sol·licituds per a aquesta oferta, torna-ho a provar d'aquí a un minut.",
	OfferCreatedMessage:       "Oferta %d publicada.",
	OfferUpdatedMessage:       "Oferta %d actualitzada.",
	OfferDeletedMessage:       "Oferta %d eliminada.",
	AlertCreatedMessage:       "Alerta de cerca creada correctament",
	AlertDeletedMessage:       "Alerta de cerca eliminada correctament",
	NoOffersMessage:           "No trobes el que busques? Cap oferta coincideix amb la teva cerca.",
	NoAlertsMessage:           "No tens alertes de cerca.",
	AllCaughtUpTitle:          "Estàs al dia!",
	AllCaughtUpSubtitle:       "Ja has vist totes les ofertes noves de la teva alerta de cerca!",
	NewOffersHeader:           "Ofertes noves",
	MyOffersTitle:             "Les meves ofertes",
	MyTeamOffersTitle:         "Ofertes del meu equip",
	MyExpiredOffersTitle:      "Les meves ofertes caducades",
	MyDeletedOffersTitle:      "Les meves ofertes eliminades",
	ExpiredLabel:              "caducada",
	DaysLeftFormat:            "queden %d dies",
	HoursLeftFormat:           "queden %d h",
	NoPriceLabel:              "sense preu",
	UndisclosedLabel:          "No revelat",
	AlertOffersMessageHeader:  "<b>%d ofertes noves</b> per a la teva alerta de cerca <i>%s</i>:",
	DecimalSeparator:          ',',
}
