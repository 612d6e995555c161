package locale

var es = Locale{
	GreetingMessage:           "¡Hola, %s!",
	NotSignedInMessage:        "No has iniciado sesión, usa primero el comando login.",
	LoginSucceededMessage:     "Sesión iniciada como %s.",
	LogoutSucceededMessage:    "Has cerrado la sesión.",
	SessionExpiredMessage:     "Tu sesión ha caducado, vuelve a iniciar sesión.",
	InternalErrorMessage:      "Algo ha ido mal",
	PasswordChangedMessage:    "Contraseña cambiada correctamente",
	InquirySentMessage:        "Solicitud enviada correctamente",
	InquiryRateLimitedMessage: "Demasiadas solicitudes para esta oferta, inténtalo de nuevo en un minuto.",
	OfferCreatedMessage:       "Oferta %d publicada.",
	OfferUpdatedMessage:       "Oferta %d actualizada.",
	OfferDeletedMessage:       "Oferta %d eliminada.",
	AlertCreatedMessage:       "Alerta de búsqueda creada correctamente",
	AlertDeletedMessage:       "Alerta de búsqueda eliminada correctamente",
	NoOffersMessage:           "¿No encuentras lo que buscas? Ninguna oferta coincide con tu búsqueda.",
	NoAlertsMessage:           "No tienes alertas de búsqueda.",
	AllCaughtUpTitle:          "¡Estás al día!",
	AllCaughtUpSubtitle:       "¡Ya has visto todas las ofertas nuevas de tu alerta de búsqueda!",
	NewOffersHeader:           "Ofertas nuevas",
	MyOffersTitle:             "Mis ofertas",
	MyTeamOffersTitle:         "Ofertas de mi equipo",
	MyExpiredOffersTitle:      "Mis ofertas caducadas",
	MyDeletedOffersTitle:      "Mis ofertas eliminadas",
	ExpiredLabel:              "caducada",
	DaysLeftFormat:            "quedan %d días",
	HoursLeftFormat:           "quedan %d h",
	NoPriceLabel:              "sin precio",
	UndisclosedLabel:          "No revelado",
	AlertOffersMessageHeader:  "<b>%d ofertas nuevas</b> para tu alerta de búsqueda <i>%s</i>:",
	DecimalSeparator:          ',',
}
