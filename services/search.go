package services

import (
	"fmt"
	"strings"

	"shin-college/models"
)

const snippetRadius = 80

type searchEntry struct {
	volume   *models.Volume
	theme    *models.Theme
	title    *models.Title
	pubIndex int
	haystack string
}

// SearchEngine durchsucht einen unveränderlichen Korpus. Die normalisierten
// Texte jeder Publikation werden einmal beim Aufbau berechnet.
type SearchEngine struct {
	corpus  *models.Corpus
	entries []searchEntry
}

// NewSearchEngine baut den Suchindex für einen Korpus auf.
func NewSearchEngine(corpus *models.Corpus) *SearchEngine {
	e := &SearchEngine{corpus: corpus}
	for vi := range corpus.Volumes {
		v := &corpus.Volumes[vi]
		volText := joinFields(v.Name, v.NameLocalized, volumeSourceName(v.Name))
		for ti := range v.Themes {
			th := &v.Themes[ti]
			themeText := joinFields(th.Name, th.NameLocalized)
			for i := range th.Titles {
				t := &th.Titles[i]
				if t.IsSeparator() {
					continue
				}
				titleText := joinFields(t.Name, t.NameLocalized)
				for pi, p := range t.Publications {
					haystack := NormalizeForMatch(strings.Join([]string{
						volText, themeText, titleText,
						p.Heading, p.HeadingLocalized,
						p.Body, p.BodyLocalized,
					}, " "))
					e.entries = append(e.entries, searchEntry{
						volume:   v,
						theme:    th,
						title:    t,
						pubIndex: pi,
						haystack: haystack,
					})
				}
			}
		}
	}
	return e
}

// Der japanische Bandname existiert nur in der Rückabbildung.
func volumeSourceName(name string) string {
	if jp := ResolveVolumeDisplayName(name, LocaleJP); jp != name {
		return jp
	}
	return ""
}

func joinFields(fields ...string) string {
	return strings.Join(fields, " ")
}

// Size ist die Anzahl durchsuchbarer Publikationen.
func (e *SearchEngine) Size() int {
	return len(e.entries)
}

// Search liefert alle Publikationen, die jedes Schlüsselwort enthalten,
// in Korpusreihenfolge. Ohne Schlüsselwörter ist das Ergebnis leer.
func (e *SearchEngine) Search(query string) []models.SearchMatch {
	tokens := Tokenize(query)
	if len(tokens) == 0 {
		return nil
	}
	var matches []models.SearchMatch
	for _, entry := range e.entries {
		if !containsAll(entry.haystack, tokens) {
			continue
		}
		matches = append(matches, models.SearchMatch{
			Volume:           entry.volume.Name,
			Theme:            entry.theme.Name,
			Title:            *entry.title,
			Publication:      entry.title.Publications[entry.pubIndex],
			PublicationIndex: entry.pubIndex,
			VolumeIndex:      entry.volume.Index,
			ThemeIndex:       entry.theme.Index,
			TitleIndex:       entry.title.Index,
		})
	}
	return matches
}

func containsAll(haystack string, tokens []string) bool {
	for _, tok := range tokens {
		if !strings.Contains(haystack, tok) {
			return false
		}
	}
	return true
}

// MatchView ist die lokalisierte Darstellung eines Treffers.
type MatchView struct {
	models.SearchMatch
	VolumeLabel string `json:"volume_label"`
	ThemeLabel  string `json:"theme_label"`
	TitleLabel  string `json:"title_label"`
	Heading     string `json:"heading"`
	Snippet     string `json:"snippet"`
	// Position der Publikation innerhalb des gruppierten Titels
	GroupPosition int    `json:"group_position"`
	Link          string `json:"link"`
}

// SearchLocalized sucht und bereitet die Treffer für eine Sprache auf.
// Die Sprache beeinflusst nur die Darstellung, nicht die Treffermenge.
func (e *SearchEngine) SearchLocalized(query string, locale Locale) []MatchView {
	matches := e.Search(query)
	if len(matches) == 0 {
		return nil
	}
	tokens := Tokenize(query)

	type themeKey struct{ v, t int }
	grouped := make(map[themeKey][]models.GroupedTitle)

	views := make([]MatchView, 0, len(matches))
	for _, m := range matches {
		v, th, _ := e.corpus.Lookup(m.VolumeIndex, m.ThemeIndex)

		key := themeKey{m.VolumeIndex, m.ThemeIndex}
		groups, ok := grouped[key]
		if !ok {
			groups = GroupTitles(th.Titles)
			grouped[key] = groups
		}
		position := m.PublicationIndex
		if _, offset, found := FindGroup(groups, th.Titles, m.TitleIndex); found {
			position += offset
		}

		views = append(views, MatchView{
			SearchMatch:   m,
			VolumeLabel:   VolumeLabel(*v, locale),
			ThemeLabel:    ResolveText(*th, "theme", locale),
			TitleLabel:    ResolveText(m.Title, "title", locale),
			Heading:       PublicationHeading(m.Publication, locale),
			Snippet:       Snippet(ResolveText(m.Publication, "body", locale), tokens, snippetRadius),
			GroupPosition: position,
			Link: fmt.Sprintf("/volumes/%d/themes/%d/titles/%d#pub-%d",
				m.VolumeIndex, m.ThemeIndex, m.TitleIndex, position),
		})
	}
	return views
}
