package i18n

// Keys for messages produced by the API itself.
const (
	KeyPurchaseSuccess     = "credits.purchaseSuccess"
	KeyInsufficientCredits = "credits.insufficient"
	KeyOrderSuccess        = "order.success"
	KeyGenericError        = "errors.generic"
	KeyForbidden           = "errors.forbidden"
	KeyProfileUpdated      = "profile.updated"
)

var defaults = map[string]map[Locale]string{
	KeyPurchaseSuccess: {
		FR: "{credits} crédits ont été ajoutés à votre compte",
		DE: "{credits} Credits wurden Ihrem Konto gutgeschrieben",
		IT: "{credits} crediti sono stati aggiunti al tuo conto",
		EN: "{credits} credits have been added to your account",
	},
	KeyInsufficientCredits: {
		FR: "Crédits insuffisants",
		DE: "Ungenügendes Guthaben",
		IT: "Crediti insufficienti",
		EN: "Insufficient credits",
	},
	KeyOrderSuccess: {
		FR: "Commande enregistrée",
		DE: "Bestellung erfasst",
		IT: "Ordine registrato",
		EN: "Order placed",
	},
	KeyGenericError: {
		FR: "Une erreur est survenue",
		DE: "Ein Fehler ist aufgetreten",
		IT: "Si è verificato un errore",
		EN: "An error occurred",
	},
	KeyForbidden: {
		FR: "Accès réservé aux administrateurs",
		DE: "Zugriff nur für Administratoren",
		IT: "Accesso riservato agli amministratori",
		EN: "Administrators only",
	},
	KeyProfileUpdated: {
		FR: "Profil mis à jour",
		DE: "Profil aktualisiert",
		IT: "Profilo aggiornato",
		EN: "Profile updated",
	},
}

// Static serves the built-in messages. Unknown keys resolve to the key itself.
type Static struct{}

func (Static) T(locale Locale, key string, vars map[string]string) string {
	return Interpolate(Lookup(locale, key), vars)
}

// Lookup returns the built-in text for key without interpolation.
func Lookup(locale Locale, key string) string {
	msgs, ok := defaults[key]
	if !ok {
		return key
	}
	if text := msgs[locale]; text != "" {
		return text
	}
	return msgs[Default]
}
