package render

import (
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return color.New(color.FgYellow).Sprintf("⚠️  %s", message)
}

// FormatError formats an error message with the error icon
func FormatError(message string) string {
	return color.New(color.FgRed).Sprintf("❌ %s", capitalize(message))
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}

// capitalize upper-cases the first letter, which may be multi-byte
func capitalize(message string) string {
	r, size := utf8.DecodeRuneInString(message)
	if r == utf8.RuneError {
		return message
	}
	return cases.Upper(language.Und).String(string(r)) + message[size:]
}

// documentLabel names an output document by its extension
func documentLabel(extension string) string {
	switch extension {
	case ".md":
		return "Markdown"
	case ".json":
		return "JSON"
	default:
		return strings.TrimPrefix(extension, ".")
	}
}
