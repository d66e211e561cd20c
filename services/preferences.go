package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"shin-college/models"
)

// Schriftgrößen in aufsteigender Reihenfolge.
var fontSizes = []string{"small", "medium", "large", "x-large"}

const DefaultFontSize = "medium"

// ErrInvalidFontSize wird für unbekannte Größen oder Aktionen zurückgegeben.
var ErrInvalidFontSize = errors.New("invalid font size")

// StepFontSize wendet increase, decrease oder reset an. Am Rand bleibt die Größe stehen.
func StepFontSize(current, action string) (string, error) {
	idx := -1
	for i, s := range fontSizes {
		if s == current {
			idx = i
		}
	}
	if idx < 0 {
		idx = 1
	}
	switch action {
	case "increase":
		if idx < len(fontSizes)-1 {
			idx++
		}
	case "decrease":
		if idx > 0 {
			idx--
		}
	case "reset":
		return DefaultFontSize, nil
	default:
		return "", fmt.Errorf("%w: action %q", ErrInvalidFontSize, action)
	}
	return fontSizes[idx], nil
}

func validFontSize(size string) bool {
	for _, s := range fontSizes {
		if s == size {
			return true
		}
	}
	return false
}

// PreferenceStore persistiert die Einstellungen pro Client.
type PreferenceStore interface {
	GetPreference(ctx context.Context, clientID string) (*models.Preference, error)
	SavePreference(ctx context.Context, pref *models.Preference) error
}

// PreferenceService liest und schreibt Sprach- und Schriftgrößeneinstellungen.
type PreferenceService struct {
	Store         PreferenceStore
	DefaultLocale Locale
}

func NewPreferenceService(store PreferenceStore, defaultLocale Locale) *PreferenceService {
	return &PreferenceService{Store: store, DefaultLocale: defaultLocale}
}

// Get liefert die gespeicherten Einstellungen oder die Standardwerte.
func (p *PreferenceService) Get(ctx context.Context, clientID string) (*models.Preference, error) {
	pref, err := p.Store.GetPreference(ctx, clientID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.Preference{ClientID: clientID, Locale: string(p.DefaultLocale), FontSize: DefaultFontSize}, nil
	}
	if err != nil {
		return nil, err
	}
	return pref, nil
}

// Update übernimmt nur die gesetzten Felder.
func (p *PreferenceService) Update(ctx context.Context, clientID string, locale, fontSize string) (*models.Preference, error) {
	pref, err := p.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if locale != "" {
		loc, err := ParseLocale(locale, p.DefaultLocale)
		if err != nil {
			return nil, err
		}
		pref.Locale = string(loc)
	}
	if fontSize != "" {
		if !validFontSize(fontSize) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFontSize, fontSize)
		}
		pref.FontSize = fontSize
	}
	if err := p.Store.SavePreference(ctx, pref); err != nil {
		return nil, fmt.Errorf("save preference: %w", err)
	}
	return pref, nil
}

// ToggleLocale wechselt zwischen Portugiesisch und Japanisch.
func (p *PreferenceService) ToggleLocale(ctx context.Context, clientID string) (*models.Preference, error) {
	pref, err := p.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}
	next := LocaleJP
	if Locale(pref.Locale) == LocaleJP {
		next = LocalePT
	}
	return p.Update(ctx, clientID, string(next), "")
}

// StepFontSize ändert die Schriftgröße schrittweise.
func (p *PreferenceService) StepFontSize(ctx context.Context, clientID, action string) (*models.Preference, error) {
	pref, err := p.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}
	size, err := StepFontSize(pref.FontSize, action)
	if err != nil {
		return nil, err
	}
	return p.Update(ctx, clientID, "", size)
}
