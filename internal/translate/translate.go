// Package translate formats user facing messages for the locale of the
// current user.
package translate

import (
	"github.com/jeandeaual/go-locale"
	"golang.org/x/text/message"
)

var printer = newPrinter()

func newPrinter() *message.Printer {
	locales, err := locale.GetLocales()
	if err != nil || len(locales) == 0 {
		locales = []string{"en-US"}
	}

	return message.NewPrinter(message.MatchLanguage(locales...))
}

// From formats an en-US Sprintf format string for the user's locale.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
