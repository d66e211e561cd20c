package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"shin-college/models"
)

// DefaultHistoryLimit ist die maximale Länge des Verlaufs.
const DefaultHistoryLimit = 50

// HistoryStore persistiert den Verlauf pro Client.
type HistoryStore interface {
	ListHistory(ctx context.Context, clientID string) ([]models.HistoryEntry, error)
	ReplaceHistory(ctx context.Context, clientID string, entries []models.HistoryEntry) error
	ClearHistory(ctx context.Context, clientID string) error
}

// HistoryService verwaltet den Verlauf zuletzt geöffneter Titel.
type HistoryService struct {
	Store  HistoryStore
	Limit  int
	Logger *zap.Logger
}

// NewHistoryService erstellt einen neuen HistoryService.
func NewHistoryService(store HistoryStore, limit int, logger *zap.Logger) *HistoryService {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &HistoryService{Store: store, Limit: limit, Logger: logger}
}

// PushHistory setzt einen Eintrag an die Spitze. Ein vorhandener Eintrag mit
// demselben Titel wird verschoben, die Liste auf limit gekürzt.
func PushHistory(entries []models.HistoryEntry, entry models.HistoryEntry, limit int) []models.HistoryEntry {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	out := make([]models.HistoryEntry, 0, min(len(entries)+1, limit))
	out = append(out, entry)
	for _, e := range entries {
		if len(out) >= limit {
			break
		}
		if e.Title == entry.Title {
			continue
		}
		out = append(out, e)
	}
	for i := range out {
		out[i].Position = i
		out[i].ID = 0
	}
	return out
}

// List liefert den Verlauf, neueste Einträge zuerst.
func (h *HistoryService) List(ctx context.Context, clientID string) ([]models.HistoryEntry, error) {
	return h.Store.ListHistory(ctx, clientID)
}

// Record speichert das Öffnen eines Titels.
func (h *HistoryService) Record(ctx context.Context, clientID string, entry models.HistoryEntry) ([]models.HistoryEntry, error) {
	if entry.Title == "" {
		return nil, fmt.Errorf("history entry without title")
	}
	current, err := h.Store.ListHistory(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	entry.ClientID = clientID
	updated := PushHistory(current, entry, h.Limit)
	for i := range updated {
		updated[i].ClientID = clientID
	}
	if err := h.Store.ReplaceHistory(ctx, clientID, updated); err != nil {
		h.Logger.Error("Failed to persist history", zap.String("client_id", clientID), zap.Error(err))
		return nil, fmt.Errorf("save history: %w", err)
	}
	return updated, nil
}

// Clear löscht den gesamten Verlauf eines Clients.
func (h *HistoryService) Clear(ctx context.Context, clientID string) error {
	return h.Store.ClearHistory(ctx, clientID)
}

// ResolvedTitle ist ein gruppierter Titel mit seinem Pfad im Korpus.
type ResolvedTitle struct {
	VolumeIndex int                 `json:"volume_index"`
	ThemeIndex  int                 `json:"theme_index"`
	GroupIndex  int                 `json:"group_index"`
	Title       models.GroupedTitle `json:"title"`
}

// ResolveHistoryEntry rekonstruiert den Titel eines Verlaufseintrags. Zuerst
// werden die gespeicherten Indizes versucht, danach alle Themen nach Namen.
func ResolveHistoryEntry(corpus *models.Corpus, entry models.HistoryEntry) (ResolvedTitle, bool) {
	if _, th, ok := corpus.Lookup(entry.VolumeIndex, entry.ThemeIndex); ok {
		for gi, g := range GroupTitles(th.Titles) {
			if g.Name == entry.Title {
				return ResolvedTitle{VolumeIndex: entry.VolumeIndex, ThemeIndex: entry.ThemeIndex, GroupIndex: gi, Title: g}, true
			}
		}
	}
	for vi, v := range corpus.Volumes {
		for ti, th := range v.Themes {
			for gi, g := range GroupTitles(th.Titles) {
				if g.Name == entry.Title {
					return ResolvedTitle{VolumeIndex: vi, ThemeIndex: ti, GroupIndex: gi, Title: g}, true
				}
			}
		}
	}
	return ResolvedTitle{}, false
}
