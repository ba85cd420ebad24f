package ui

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. English text doubles as the key.
const (
	MsgNoQuery     = "No query given."
	MsgNoMatches   = "No Pokémon found!"
	MsgSearching   = "Searching..."
	MsgFound       = "Found %d Pokémon!"
	MsgFailed      = "Search failed!"
	MsgLoading     = "Loading Pokémon list..."
	MsgTitle       = "Pokémon"
	MsgPlaceholder = "Search Pokémon..."
	MsgTypes       = "Types:"
	MsgStats       = "Stats:"
	MsgPhysical    = "Height and weight:"
	MsgHeightWt    = "Height: %d, Weight: %d"
	MsgBase        = "Base: %d"
	MsgEffort      = "Effort: %d"
	MsgClose       = "Close"
	MsgReload      = "Reload page"
	MsgErrorTitle  = "An error occurred :("
	MsgErrorIntro  = "Details below:"
	MsgStartupFail = "Could not load the Pokémon list!"
	MsgBusy        = "A search is already running."
)

var supported = []language.Tag{language.English, language.Polish}

var polish = map[string]string{
	MsgNoQuery:     "Nie podano zapytania.",
	MsgNoMatches:   "Nie znaleziono żadnych pokemonów!",
	MsgSearching:   "Szukam...",
	MsgFound:       "Znaleziono %d Pokemonów!",
	MsgFailed:      "Nie udało się wykonać wyszukiwania!",
	MsgLoading:     "Ładowanie listy Pokemonów...",
	MsgTitle:       "Pokemony",
	MsgPlaceholder: "Wyszukaj Pokemony...",
	MsgTypes:       "Typy:",
	MsgStats:       "Statystyki:",
	MsgPhysical:    "Wzrost i waga:",
	MsgHeightWt:    "Wzrost: %d, Waga: %d",
	MsgBase:        "Base: %d",
	MsgEffort:      "Effort: %d",
	MsgClose:       "Zamknij",
	MsgReload:      "Odśwież stronę",
	MsgErrorTitle:  "Wystąpił błąd :(",
	MsgErrorIntro:  "Szczegóły znajdziesz poniżej:",
	MsgStartupFail: "Nie udało się załadować listy Pokemonów!",
	MsgBusy:        "Wyszukiwanie już trwa.",
}

var messages = buildCatalog()

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, text := range polish {
		_ = b.SetString(language.Polish, key, text)
		_ = b.SetString(language.English, key, key)
	}
	return b
}

// Localizer formats user-facing text in one language
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// NewLocalizer picks the closest supported language for lang ("en", "pl", "pl-PL", ...).
// Unknown or empty values fall back to English.
func NewLocalizer(lang string) *Localizer {
	tag := language.English
	if requested, err := language.Parse(lang); err == nil {
		_, i, conf := language.NewMatcher(supported).Match(requested)
		if conf != language.No {
			tag = supported[i]
		}
	}
	return &Localizer{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(messages)),
	}
}

// Tag returns the selected language
func (l *Localizer) Tag() language.Tag {
	return l.tag
}

// T formats the message for key with args
func (l *Localizer) T(key string, args ...any) string {
	return l.printer.Sprintf(key, args...)
}
