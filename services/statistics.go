package services

import (
	"strings"

	"shin-college/models"
)

// Statistics enthält Kennzahlen für die Fußzeile der Ansichten.
type Statistics struct {
	Volumes  int `json:"volumes"`
	Themes   int `json:"themes"`
	Titles   int `json:"titles"`
	Articles int `json:"articles"` // eindeutige, nicht-leere Texte
}

type statsCollector struct {
	stats  Statistics
	unique map[string]struct{}
}

func newStatsCollector() *statsCollector {
	return &statsCollector{unique: make(map[string]struct{})}
}

func (s *statsCollector) addPublications(pubs []models.Publication) {
	for _, p := range pubs {
		if body := strings.TrimSpace(p.Body); body != "" {
			s.unique[body] = struct{}{}
		}
	}
}

func (s *statsCollector) addTitles(titles []models.Title) {
	s.stats.Titles += len(titles)
	for _, t := range titles {
		s.addPublications(t.Publications)
	}
}

func (s *statsCollector) addThemes(themes []models.Theme) {
	s.stats.Themes += len(themes)
	for _, th := range themes {
		s.addTitles(th.Titles)
	}
}

func (s *statsCollector) result() Statistics {
	s.stats.Articles = len(s.unique)
	return s.stats
}

// CorpusStatistics zählt über den gesamten Korpus.
func CorpusStatistics(corpus *models.Corpus) Statistics {
	c := newStatsCollector()
	c.stats.Volumes = len(corpus.Volumes)
	for _, v := range corpus.Volumes {
		c.addThemes(v.Themes)
	}
	return c.result()
}

// VolumeStatistics zählt innerhalb eines Bandes; Bände werden nicht gezählt.
func VolumeStatistics(v models.Volume) Statistics {
	c := newStatsCollector()
	c.addThemes(v.Themes)
	return c.result()
}

// ThemeStatistics zählt nur Titel und Texte eines Themas.
func ThemeStatistics(th models.Theme) Statistics {
	c := newStatsCollector()
	c.addTitles(th.Titles)
	return c.result()
}

// MatchStatistics zählt Suchergebnisse: jeder Treffer zählt als Titel,
// Texte werden über die vollständigen Elterntitel gesammelt.
func MatchStatistics(matches []models.SearchMatch) Statistics {
	c := newStatsCollector()
	volumes := make(map[int]struct{})
	themes := make(map[[2]int]struct{})
	for _, m := range matches {
		volumes[m.VolumeIndex] = struct{}{}
		themes[[2]int{m.VolumeIndex, m.ThemeIndex}] = struct{}{}
		c.stats.Titles++
		c.addPublications(m.Title.Publications)
	}
	c.stats.Volumes = len(volumes)
	c.stats.Themes = len(themes)
	return c.result()
}
