package models

import "time"

// Preference speichert die Anzeigeeinstellungen eines Clients.
type Preference struct {
	ClientID  string    `json:"client_id" gorm:"primaryKey;size:128"`
	UpdatedAt time.Time `json:"updated_at"`

	Locale   string `json:"locale" gorm:"size:8;default:'pt'"`
	FontSize string `json:"font_size" gorm:"size:16;default:'medium'"`
}

// TableName gibt den expliziten Tabellennamen für GORM an.
func (Preference) TableName() string {
	return "preferences"
}
