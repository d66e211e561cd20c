package models

// GroupedTitle fasst alle Titel mit gleichem Basisnamen zusammen.
type GroupedTitle struct {
	Name          string        `json:"title"`
	NameLocalized string        `json:"title_ptbr,omitempty"`
	Publications  []Publication `json:"publications"`
	// SourceIndexes enthält die Indizes der zusammengeführten Titel im Thema.
	SourceIndexes []int `json:"source_indexes"`
}

// AsTitle wandelt die Gruppe zurück in einen Titel, der bei erneuter
// Gruppierung nicht noch einmal gekürzt wird.
func (g GroupedTitle) AsTitle() Title {
	index := -1
	if len(g.SourceIndexes) > 0 {
		index = g.SourceIndexes[0]
	}
	pubs := make([]Publication, len(g.Publications))
	copy(pubs, g.Publications)
	indexes := make([]int, len(g.SourceIndexes))
	copy(indexes, g.SourceIndexes)
	return Title{
		Index:         index,
		Name:          g.Name,
		NameLocalized: g.NameLocalized,
		Publications:  pubs,
		canonical:     true,
		sourceIndexes: indexes,
	}
}

// GroupedTitlesAsTitles ist die Umkehrung für ganze Gruppierungsergebnisse.
func GroupedTitlesAsTitles(groups []GroupedTitle) []Title {
	out := make([]Title, 0, len(groups))
	for _, g := range groups {
		out = append(out, g.AsTitle())
	}
	return out
}
