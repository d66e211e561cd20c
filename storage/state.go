package storage

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shin-college/models"
)

// StateStore speichert Verlauf und Einstellungen der Clients in PostgreSQL.
type StateStore struct {
	DB *gorm.DB
}

// NewStateStore erstellt einen StateStore auf einer bestehenden Verbindung.
func NewStateStore(db *gorm.DB) *StateStore {
	return &StateStore{DB: db}
}

// Migrate legt die Tabellen für Verlauf und Einstellungen an.
func (s *StateStore) Migrate() error {
	return s.DB.AutoMigrate(&models.HistoryEntry{}, &models.Preference{})
}

func (s *StateStore) ListHistory(ctx context.Context, clientID string) ([]models.HistoryEntry, error) {
	var entries []models.HistoryEntry
	err := s.DB.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("position asc").
		Find(&entries).Error
	return entries, err
}

// ReplaceHistory ersetzt den Verlauf eines Clients in einer Transaktion.
func (s *StateStore) ReplaceHistory(ctx context.Context, clientID string, entries []models.HistoryEntry) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("client_id = ?", clientID).Delete(&models.HistoryEntry{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.Create(&entries).Error
	})
}

func (s *StateStore) ClearHistory(ctx context.Context, clientID string) error {
	return s.DB.WithContext(ctx).Where("client_id = ?", clientID).Delete(&models.HistoryEntry{}).Error
}

// GetPreference gibt gorm.ErrRecordNotFound zurück, wenn nichts gespeichert ist.
func (s *StateStore) GetPreference(ctx context.Context, clientID string) (*models.Preference, error) {
	var pref models.Preference
	if err := s.DB.WithContext(ctx).First(&pref, "client_id = ?", clientID).Error; err != nil {
		return nil, err
	}
	return &pref, nil
}

// SavePreference schreibt die Einstellungen per Upsert.
func (s *StateStore) SavePreference(ctx context.Context, pref *models.Preference) error {
	return s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "client_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"locale", "font_size", "updated_at"}),
	}).Create(pref).Error
}
