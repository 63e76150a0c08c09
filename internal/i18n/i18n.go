// Package i18n holds the user-facing strings in every supported language.
package i18n

import (
	"errors"
	"strings"

	"github.com/sadopc/daytally/internal/tracker"
	"github.com/sadopc/daytally/internal/validate"
)

type Lang string

const (
	PtBR Lang = "pt-BR"
	EnUS Lang = "en-US"
	Es   Lang = "es"
)

// Fallback is used for keys missing from a catalog.
const Fallback = EnUS

// Supported lists the languages in the order the settings view offers them.
var Supported = []Lang{PtBR, EnUS, Es}

var names = map[Lang]string{
	PtBR: "Português (Brasil)",
	EnUS: "English (US)",
	Es:   "Español",
}

// Name is the language's own name for itself.
func (l Lang) Name() string {
	if n, ok := names[l]; ok {
		return n
	}
	return string(l)
}

// Parse returns the supported language matching s exactly.
func Parse(s string) (Lang, bool) {
	for _, l := range Supported {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}

// Detect picks a language from a locale string such as $LANG ("en_US.UTF-8").
// Unknown locales get pt-BR.
func Detect(locale string) Lang {
	locale, _, _ = strings.Cut(locale, ".")
	locale = strings.ReplaceAll(locale, "_", "-")
	if l, ok := Parse(locale); ok {
		return l
	}
	short, _, _ := strings.Cut(strings.ToLower(locale), "-")
	switch short {
	case "en":
		return EnUS
	case "es":
		return Es
	}
	return PtBR
}

// T returns the message for key in lang.
func T(lang Lang, key Key) string {
	if msg, ok := catalogs[lang][key]; ok {
		return msg
	}
	if msg, ok := catalogs[Fallback][key]; ok {
		return msg
	}
	return string(key)
}

// Error translates a validation rejection. Other errors pass through as-is.
func Error(lang Lang, err error) string {
	switch {
	case errors.Is(err, validate.ErrStartAfterEnd):
		return T(lang, StartBeforeEnd)
	case errors.Is(err, validate.ErrStartInFuture):
		return T(lang, StartNotInFuture)
	case errors.Is(err, validate.ErrBadClock):
		return T(lang, BadClock)
	case errors.Is(err, tracker.ErrOpenNotLast):
		return T(lang, OpenNotLast)
	case errors.Is(err, validate.ErrGoalEmpty),
		errors.Is(err, validate.ErrGoalNegative),
		errors.Is(err, validate.ErrMinutesRange),
		errors.Is(err, validate.ErrNotANumber):
		return T(lang, InvalidGoal)
	}
	return err.Error()
}
