package models

// SearchMatch beschreibt eine gefundene Publikation samt Navigationspfad.
type SearchMatch struct {
	Volume           string      `json:"volume"`
	Theme            string      `json:"theme"`
	Title            Title       `json:"title"`
	Publication      Publication `json:"publication"`
	PublicationIndex int         `json:"publication_index"`

	VolumeIndex int `json:"volume_index"`
	ThemeIndex  int `json:"theme_index"`
	TitleIndex  int `json:"title_index"`
}
