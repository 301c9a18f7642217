package entities

import "fmt"

// Language is a translatable locale, independent of the project and
// component hierarchy.
type Language struct {
	Code      string // BCP 47 style code (e.g. "cs", "pt_BR")
	Name      string // English name (e.g. "Czech")
	Direction string // "ltr" or "rtl"
}

// Validate checks that the language is well formed.
func (l *Language) Validate() error {
	if l.Code == "" {
		return fmt.Errorf("language code is required")
	}
	if l.Name == "" {
		return fmt.Errorf("language name is required")
	}
	if l.Direction != "" && l.Direction != "ltr" && l.Direction != "rtl" {
		return fmt.Errorf("language direction must be ltr or rtl, got %q", l.Direction)
	}
	return nil
}
