package services

import (
	"errors"
	"fmt"
	"strings"

	"shin-college/models"
)

// TranslatedTitle ist ein vollständig übersetzter Titel im Übersetzungsbaum.
type TranslatedTitle struct {
	TitleIndex   int    `json:"title_index"`
	Title        string `json:"title"`
	Label        string `json:"label"`
	Publications int    `json:"publications"`
}

type TranslatedTheme struct {
	ThemeIndex int               `json:"theme_index"`
	Theme      string            `json:"theme"`
	Label      string            `json:"label"`
	Titles     []TranslatedTitle `json:"titles"`
}

type TranslatedVolume struct {
	VolumeIndex int               `json:"volume_index"`
	Volume      string            `json:"volume"`
	Label       string            `json:"label"`
	Themes      []TranslatedTheme `json:"themes"`
}

// TranslatedTree sammelt alle vollständig übersetzten Titel. Themen und Bände
// ohne solche Titel entfallen.
func TranslatedTree(corpus *models.Corpus, locale Locale) []TranslatedVolume {
	var tree []TranslatedVolume
	for _, v := range corpus.Volumes {
		var themes []TranslatedTheme
		for _, th := range v.Themes {
			var titles []TranslatedTitle
			for _, t := range th.Titles {
				if t.IsSeparator() || !IsFullyTranslated(t.Publications) {
					continue
				}
				titles = append(titles, TranslatedTitle{
					TitleIndex:   t.Index,
					Title:        t.Name,
					Label:        ResolveText(t, "title", locale),
					Publications: len(t.Publications),
				})
			}
			if len(titles) == 0 {
				continue
			}
			themes = append(themes, TranslatedTheme{
				ThemeIndex: th.Index,
				Theme:      th.Name,
				Label:      ResolveText(th, "theme", locale),
				Titles:     titles,
			})
		}
		if len(themes) == 0 {
			continue
		}
		label := VolumeLabel(v, locale)
		if locale == LocalePT {
			label = FormatVolumeName(label)
		}
		tree = append(tree, TranslatedVolume{
			VolumeIndex: v.Index,
			Volume:      v.Name,
			Label:       label,
			Themes:      themes,
		})
	}
	return tree
}

// TranslationFilter steuert die Titelfilterung nach Übersetzungsstand.
type TranslationFilter string

const (
	FilterNone   TranslationFilter = ""
	FilterStrict TranslationFilter = "strict"
	FilterLoose  TranslationFilter = "loose"
)

// ErrInvalidFilter wird für unbekannte Filterwerte zurückgegeben.
var ErrInvalidFilter = errors.New("invalid translation filter")

// ParseTranslationFilter akzeptiert "", "strict" und "loose".
func ParseTranslationFilter(value string) (TranslationFilter, error) {
	switch f := TranslationFilter(strings.ToLower(strings.TrimSpace(value))); f {
	case FilterNone, FilterStrict, FilterLoose:
		return f, nil
	}
	return FilterNone, fmt.Errorf("%w: %q", ErrInvalidFilter, value)
}

// Accepts prüft die Publikationen eines Titels gegen den Filter.
func (f TranslationFilter) Accepts(pubs []models.Publication) bool {
	switch f {
	case FilterStrict:
		return IsFullyTranslated(pubs)
	case FilterLoose:
		return HasAnyTranslation(pubs)
	}
	return true
}

// FilterGrouped wendet den Übersetzungsfilter auf gruppierte Titel an.
func FilterGrouped(groups []models.GroupedTitle, filter TranslationFilter) []models.GroupedTitle {
	if filter == FilterNone {
		return groups
	}
	out := make([]models.GroupedTitle, 0, len(groups))
	for _, g := range groups {
		if filter.Accepts(g.Publications) {
			out = append(out, g)
		}
	}
	return out
}
