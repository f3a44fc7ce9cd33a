package timeutil

import (
	"time"

	"golang.org/x/text/language"
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// LoadLocation returns the named location, or UTC when the name is empty or unknown.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

var (
	supportedLocales = []language.Tag{
		language.MustParse("sv-SE"),
		language.AmericanEnglish,
		language.BritishEnglish,
		language.German,
		language.Finnish,
	}
	localeLayouts = []string{
		"2006-01-02 15:04:05",
		"1/2/2006, 3:04:05 PM",
		"02/01/2006, 15:04:05",
		"2.1.2006, 15:04:05",
		"2.1.2006 klo 15.04.05",
	}
	localeMatcher = language.NewMatcher(supportedLocales)
)

// Stamper renders timestamps for human-facing status lines in a locale and zone.
type Stamper struct {
	layout string
	loc    *time.Location
}

// NewStamper resolves the closest supported locale; unknown locales fall back to Swedish.
func NewStamper(locale, timezone string) Stamper {
	return Stamper{layout: LayoutFor(locale), loc: LoadLocation(timezone)}
}

// LayoutFor returns the time layout for the best matching supported locale.
func LayoutFor(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return localeLayouts[0]
	}
	_, idx, conf := localeMatcher.Match(tag)
	if conf == language.No {
		return localeLayouts[0]
	}
	return localeLayouts[idx]
}

// Format renders t in the stamper's zone and layout.
func (s Stamper) Format(t time.Time) string {
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.layout == "" {
		s.layout = localeLayouts[0]
	}
	return t.In(s.loc).Format(s.layout)
}

// Location exposes the configured zone.
func (s Stamper) Location() *time.Location {
	if s.loc == nil {
		return time.UTC
	}
	return s.loc
}
