package services

import (
	"regexp"
	"strings"

	"shin-college/models"
)

// Nummernsuffix am Titelende: 1, ３, (1), （１）, - 1, – 2 usw.
var numericSuffix = regexp.MustCompile(
	`[\s\p{Zs}]*(?:[-\x{2010}-\x{2015}]|\(|（)?[\s\p{Zs}]*[0-9０-９]+[\s\p{Zs}]*(?:\)|）)?[\s\p{Zs}]*$`,
)

// CanonicalKey entfernt ein abschließendes Nummernsuffix. Bleibt dabei nichts
// übrig, ist der unveränderte Name der Schlüssel.
func CanonicalKey(name string) string {
	base := name
	if loc := numericSuffix.FindStringIndex(name); loc != nil {
		base = name[:loc[0]]
	}
	base = strings.TrimSpace(base)
	if base == "" {
		return name
	}
	return base
}

// GroupTitles fasst nummerierte Titelvarianten zusammen. Trenner und Titel
// ohne Publikationen entfallen, die Reihenfolge folgt dem ersten Auftreten.
func GroupTitles(titles []models.Title) []models.GroupedTitle {
	var order []string
	groups := make(map[string]*models.GroupedTitle)

	for _, title := range titles {
		if title.IsSeparator() || len(title.Publications) == 0 {
			continue
		}

		key, localized := title.Name, title.NameLocalized
		if !title.IsCanonical() {
			key = CanonicalKey(title.Name)
			if localized != "" {
				localized = CanonicalKey(localized)
			}
		}

		group, ok := groups[key]
		if !ok {
			group = &models.GroupedTitle{Name: key, NameLocalized: localized}
			groups[key] = group
			order = append(order, key)
		}
		group.Publications = append(group.Publications, title.Publications...)
		group.SourceIndexes = append(group.SourceIndexes, title.SourceIndexes()...)
	}

	out := make([]models.GroupedTitle, 0, len(order))
	for _, key := range order {
		out = append(out, *groups[key])
	}
	return out
}

// FilterValidTitles entfernt Titel ohne Publikationen. Trenner bleiben erhalten,
// solange mindestens ein echter Titel übrig ist.
func FilterValidTitles(titles []models.Title) []models.Title {
	var filtered []models.Title
	hasContent := false
	for _, t := range titles {
		if t.IsSeparator() {
			filtered = append(filtered, t)
			continue
		}
		if len(t.Publications) > 0 {
			filtered = append(filtered, t)
			hasContent = true
		}
	}
	if !hasContent {
		return nil
	}
	return filtered
}

// FindGroup sucht die Gruppe, in die der Titel mit dem gegebenen Index
// eingegangen ist, und den Versatz seiner Publikationen darin.
func FindGroup(groups []models.GroupedTitle, titles []models.Title, titleIndex int) (int, int, bool) {
	for gi, g := range groups {
		offset := 0
		for _, idx := range g.SourceIndexes {
			if idx == titleIndex {
				return gi, offset, true
			}
			if idx >= 0 && idx < len(titles) {
				offset += len(titles[idx].Publications)
			}
		}
	}
	return -1, 0, false
}
