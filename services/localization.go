package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"shin-college/models"
)

// Locale ist die Anzeigesprache. Japanisch ist die Quellsprache des Korpus,
// Portugiesisch die Übersetzung.
type Locale string

const (
	LocalePT Locale = "pt"
	LocaleJP Locale = "jp"
)

// ErrInvalidLocale wird für unbekannte Sprachcodes zurückgegeben.
var ErrInvalidLocale = errors.New("invalid locale")

// ParseLocale prüft einen Sprachcode; ein leerer Wert ergibt den Fallback.
func ParseLocale(value string, fallback Locale) (Locale, error) {
	switch Locale(strings.ToLower(strings.TrimSpace(value))) {
	case "":
		return fallback, nil
	case LocalePT:
		return LocalePT, nil
	case LocaleJP:
		return LocaleJP, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidLocale, value)
}

// Localizable wird von allen Korpus-Entitäten implementiert.
type Localizable interface {
	LocalizedField(fieldBase string) (source, localized string)
}

// ResolveText wählt den Anzeigetext eines zweisprachigen Feldes.
// Für die Übersetzung gilt: leer oder nur Leerzeichen fällt auf das Original zurück.
func ResolveText(entity Localizable, fieldBase string, locale Locale) string {
	source, localized := entity.LocalizedField(fieldBase)
	if locale == LocalePT && strings.TrimSpace(localized) != "" {
		return localized
	}
	return source
}

// Bandnamen liegen im Korpus bereits auf Portugiesisch vor.
var volumeReverseMap = map[string]string{
	"1. Seção de Busca do Caminho":  "1.求道編",
	"2. Seção de Pontos Essenciais": "2.要義編",
	"3. Seção da Fé":                "3.信仰編",
	"4. Outros":                     "4.その他",
	"5. Seção da Salvação":          "5.救世編",
}

// ResolveVolumeDisplayName bildet gespeicherte Bandnamen für Japanisch zurück ab.
func ResolveVolumeDisplayName(name string, locale Locale) string {
	if locale == LocaleJP {
		if jp, ok := volumeReverseMap[name]; ok {
			return jp
		}
	}
	return name
}

var volumeNumberPrefix = regexp.MustCompile(`^\d+\.`)

// FormatVolumeName entfernt die Bandnummer ("1. X" -> "X").
func FormatVolumeName(name string) string {
	return strings.TrimSpace(volumeNumberPrefix.ReplaceAllString(name, ""))
}

// VolumeLabel ist die Bezeichnung eines Bandes in Listen.
func VolumeLabel(v models.Volume, locale Locale) string {
	if locale == LocalePT {
		if strings.TrimSpace(v.NameLocalized) != "" {
			return v.NameLocalized
		}
		return v.Name
	}
	return ResolveVolumeDisplayName(v.Name, locale)
}

// IsFullyTranslated verlangt eine Übersetzung für jede Publikation.
func IsFullyTranslated(pubs []models.Publication) bool {
	if len(pubs) == 0 {
		return false
	}
	for _, p := range pubs {
		if !p.IsTranslated() {
			return false
		}
	}
	return true
}

// HasAnyTranslation reicht eine einzige übersetzte Publikation.
func HasAnyTranslation(pubs []models.Publication) bool {
	for _, p := range pubs {
		if p.IsTranslated() {
			return true
		}
	}
	return false
}

// HasThemeTranslation prüft übersetzte Titelnamen oder Inhalte.
func HasThemeTranslation(theme models.Theme) bool {
	for _, t := range theme.Titles {
		if t.NameLocalized != "" && t.NameLocalized != t.Name {
			return true
		}
		if HasAnyTranslation(t.Publications) {
			return true
		}
	}
	return false
}

func HasVolumeTranslation(volume models.Volume) bool {
	for _, th := range volume.Themes {
		if HasThemeTranslation(th) {
			return true
		}
	}
	return false
}

// DisplayTitle bestimmt den Titel für Listen. Auf Portugiesisch wird nur
// dann übersetzt angezeigt, wenn der Inhalt zumindest teilweise übersetzt ist.
func DisplayTitle(g models.GroupedTitle, locale Locale) string {
	if locale != LocalePT || !HasAnyTranslation(g.Publications) {
		return g.Name
	}
	if strings.TrimSpace(g.NameLocalized) != "" {
		return g.NameLocalized
	}
	for _, p := range g.Publications {
		if strings.TrimSpace(p.HeadingLocalized) != "" {
			return p.HeadingLocalized
		}
	}
	return g.Name
}

// PublicationHeading liefert die Überschrift einer Publikation; leer, wenn keine existiert.
func PublicationHeading(p models.Publication, locale Locale) string {
	if h := ResolveText(p, "heading", locale); strings.TrimSpace(h) != "" {
		return h
	}
	return p.Header
}
