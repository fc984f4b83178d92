package instaback

// DefaultLocale is the message catalog used when Options.Locale is empty or
// unknown.
const DefaultLocale = "he"

type catalog struct {
	offline     string
	serverError string
}

var catalogs = map[string]catalog{
	"he": {
		offline:     "אין חיבור לאינטרנט. בדקו את החיבור ונסו שוב.",
		serverError: "בעיה בתקשורת עם השרת. נסו שוב בעוד מספר רגעים.",
	},
	"en": {
		offline:     "You appear to be offline. Check your connection and try again.",
		serverError: "There was a problem communicating with the server. Please try again shortly.",
	},
}

func catalogFor(locale string) catalog {
	if c, ok := catalogs[locale]; ok {
		return c
	}
	return catalogs[DefaultLocale]
}
