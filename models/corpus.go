package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// SeparatorTitle markiert einen strukturellen Trenner ohne Publikationen.
const SeparatorTitle = "---"

// Publication ist ein einzelnes Dokument innerhalb eines Titels.
type Publication struct {
	Heading          string `json:"publication_title"`
	HeadingLocalized string `json:"publication_title_ptbr"`
	Header           string `json:"header,omitempty"` // Alt-Bezeichnung aus älteren Exporten
	Body             string `json:"content"`
	BodyLocalized    string `json:"content_ptbr"`
	Date             string `json:"date,omitempty"`
	PubIdx           int    `json:"pub_idx,omitempty"`
	HasTranslation   bool   `json:"has_translation,omitempty"`
}

// IsContentless ist wahr, wenn beide Textfassungen leer sind.
func (p Publication) IsContentless() bool {
	return strings.TrimSpace(p.Body) == "" && strings.TrimSpace(p.BodyLocalized) == ""
}

// IsTranslated ist wahr, wenn eine nicht-leere Übersetzung vorliegt.
func (p Publication) IsTranslated() bool {
	return strings.TrimSpace(p.BodyLocalized) != ""
}

// Title gruppiert Publikationen unter einem (ggf. nummerierten) Namen.
type Title struct {
	Index         int           `json:"-"`
	Name          string        `json:"title"`
	NameLocalized string        `json:"title_ptbr"`
	Publications  []Publication `json:"publications"`

	// canonical markiert Titel, die bereits aus einer Gruppierung stammen.
	canonical     bool
	sourceIndexes []int
}

// IsSeparator meldet, ob der Titel nur ein Trenner ist.
func (t Title) IsSeparator() bool {
	return t.Name == SeparatorTitle
}

// IsCanonical meldet, ob der Name bereits ein kanonischer Gruppenname ist.
func (t Title) IsCanonical() bool {
	return t.canonical
}

// SourceIndexes liefert die Indizes der Originaltitel hinter diesem Titel.
func (t Title) SourceIndexes() []int {
	if t.canonical && len(t.sourceIndexes) > 0 {
		return t.sourceIndexes
	}
	return []int{t.Index}
}

// UnmarshalJSON liest Titel tolerant: ein fehlendes oder kaputtes
// publications-Feld ergibt null Publikationen statt eines Fehlers.
func (t *Title) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name          *string         `json:"title"`
		NameLocalized *string         `json:"title_ptbr"`
		Publications  json.RawMessage `json:"publications"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = Title{}
	if raw.Name != nil {
		t.Name = *raw.Name
	}
	if raw.NameLocalized != nil {
		t.NameLocalized = *raw.NameLocalized
	}
	pubs := bytes.TrimSpace(raw.Publications)
	if len(pubs) == 0 || pubs[0] != '[' {
		return nil
	}
	var publications []Publication
	if err := json.Unmarshal(pubs, &publications); err != nil {
		// Einzelne kaputte Einträge verwerfen, den Rest behalten
		publications = decodePublicationsLeniently(pubs)
	}
	t.Publications = publications
	return nil
}

func decodePublicationsLeniently(data []byte) []Publication {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil
	}
	var out []Publication
	for _, item := range items {
		var p Publication
		if err := json.Unmarshal(item, &p); err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Theme ist eine thematische Gruppe innerhalb eines Bandes.
type Theme struct {
	Index         int     `json:"-"`
	Name          string  `json:"theme"`
	NameLocalized string  `json:"theme_ptbr"`
	Titles        []Title `json:"titles"`
}

// Volume ist die oberste Ebene des Korpus.
type Volume struct {
	Index         int     `json:"-"`
	Name          string  `json:"volume"`
	NameLocalized string  `json:"volume_ptbr,omitempty"`
	Themes        []Theme `json:"themes"`
}

// Corpus ist der unveränderliche, vollständig geladene Inhaltsbaum.
type Corpus struct {
	Volumes []Volume
}

// AssignIndexes vergibt die positionsbasierten Kennungen aller Ebenen.
func (c *Corpus) AssignIndexes() {
	for vi := range c.Volumes {
		v := &c.Volumes[vi]
		v.Index = vi
		for ti := range v.Themes {
			th := &v.Themes[ti]
			th.Index = ti
			for i := range th.Titles {
				th.Titles[i].Index = i
			}
		}
	}
}

// Lookup liefert Band und Thema anhand ihrer Indizes.
func (c *Corpus) Lookup(volumeIndex, themeIndex int) (*Volume, *Theme, bool) {
	if volumeIndex < 0 || volumeIndex >= len(c.Volumes) {
		return nil, nil, false
	}
	v := &c.Volumes[volumeIndex]
	if themeIndex < 0 || themeIndex >= len(v.Themes) {
		return v, nil, false
	}
	return v, &v.Themes[themeIndex], true
}

// VolumeByName sucht einen Band über seinen gespeicherten Namen.
func (c *Corpus) VolumeByName(name string) (*Volume, bool) {
	for i := range c.Volumes {
		if c.Volumes[i].Name == name {
			return &c.Volumes[i], true
		}
	}
	return nil, false
}

// ThemeByName sucht ein Thema innerhalb eines Bandes über seinen Namen.
func (v *Volume) ThemeByName(name string) (*Theme, bool) {
	for i := range v.Themes {
		if v.Themes[i].Name == name {
			return &v.Themes[i], true
		}
	}
	return nil, false
}

// PublicationCount zählt alle Publikationen des Korpus.
func (c *Corpus) PublicationCount() int {
	n := 0
	for _, v := range c.Volumes {
		for _, th := range v.Themes {
			for _, t := range th.Titles {
				n += len(t.Publications)
			}
		}
	}
	return n
}
