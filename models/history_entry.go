package models

import "time"

// HistoryEntry ist ein zuletzt geöffneter Titel eines Clients.
type HistoryEntry struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ClientID string `json:"-" gorm:"index:idx_history_client_title,unique;size:128;not null"`
	Title    string `json:"title" gorm:"index:idx_history_client_title,unique;not null"`

	// Anzeigepfad und Indizes zur Rekonstruktion
	Volume      string `json:"volume"`
	Theme       string `json:"theme"`
	VolumeIndex int    `json:"volume_index"`
	ThemeIndex  int    `json:"theme_index"`

	// Position 0 = zuletzt geöffnet
	Position int `json:"position" gorm:"index"`
}

// TableName gibt explizit den Tabellennamen an.
func (HistoryEntry) TableName() string {
	return "history_entries"
}
