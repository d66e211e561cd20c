package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"shin-college/models"
	"shin-college/providers"
)

var (
	// ErrCorpusNotLoaded wird zurückgegeben, solange kein Korpus geladen wurde.
	ErrCorpusNotLoaded = errors.New("corpus not loaded")
	// ErrNotFound steht für unbekannte Band-, Themen- oder Titelindizes.
	ErrNotFound = errors.New("not found")
)

var themeNumber = regexp.MustCompile(`^(\d+)[-.\s]`)

// Snapshot ist ein geladener Korpus samt Suchindex. Er wird nie verändert,
// nur als Ganzes ersetzt.
type Snapshot struct {
	Corpus   *models.Corpus
	Engine   *SearchEngine
	Stats    Statistics
	Source   string
	LoadedAt time.Time
}

// CorpusService lädt den Korpus aus einer Quelle und hält den aktiven Snapshot.
type CorpusService struct {
	Source     providers.Source
	SortThemes bool
	Logger     *zap.Logger

	loadMu  sync.Mutex
	current atomic.Pointer[Snapshot]
}

// NewCorpusService erstellt eine neue Instanz des CorpusService.
func NewCorpusService(source providers.Source, sortThemes bool, logger *zap.Logger) *CorpusService {
	return &CorpusService{Source: source, SortThemes: sortThemes, Logger: logger}
}

// DecodeCorpus liest das JSON-Dokument (Array von Bänden) und vergibt die Indizes.
func DecodeCorpus(data []byte, sortThemes bool) (*models.Corpus, error) {
	var volumes []models.Volume
	if err := json.Unmarshal(data, &volumes); err != nil {
		return nil, fmt.Errorf("decode corpus: %w", err)
	}
	corpus := &models.Corpus{Volumes: volumes}
	if sortThemes {
		for i := range corpus.Volumes {
			SortThemes(corpus.Volumes[i].Themes)
		}
	}
	corpus.AssignIndexes()
	return corpus, nil
}

// extractThemeNumber liefert die führende Nummer eines Themennamens ("12 - ...").
func extractThemeNumber(name string) (int, bool) {
	m := themeNumber.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// SortThemes sortiert Themen stabil nach ihrer führenden Nummer.
// Themen ohne Nummer folgen in ihrer ursprünglichen Reihenfolge.
func SortThemes(themes []models.Theme) {
	sort.SliceStable(themes, func(i, j int) bool {
		ni, oki := extractThemeNumber(themes[i].Name)
		nj, okj := extractThemeNumber(themes[j].Name)
		switch {
		case oki && okj:
			return ni < nj
		case oki:
			return true
		default:
			return false
		}
	})
}

// Load holt den Korpus, baut den Suchindex und veröffentlicht den Snapshot.
// Bei einem Fehler bleibt der bisherige Snapshot aktiv.
func (s *CorpusService) Load(ctx context.Context) (*Snapshot, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	log := s.Logger.With(zap.String("source", s.Source.Name()))
	start := time.Now()

	data, err := s.Source.Fetch(ctx)
	if err != nil {
		corpusLoadCounter.WithLabelValues(s.Source.Name(), "error").Inc()
		log.Error("Korpus konnte nicht abgerufen werden", zap.Error(err))
		return nil, fmt.Errorf("fetch corpus: %w", err)
	}
	corpus, err := DecodeCorpus(data, s.SortThemes)
	if err != nil {
		corpusLoadCounter.WithLabelValues(s.Source.Name(), "error").Inc()
		log.Error("Korpus konnte nicht gelesen werden", zap.Error(err))
		return nil, err
	}

	snap := &Snapshot{
		Corpus:   corpus,
		Engine:   NewSearchEngine(corpus),
		Stats:    CorpusStatistics(corpus),
		Source:   s.Source.Name(),
		LoadedAt: time.Now(),
	}
	s.current.Store(snap)

	corpusLoadCounter.WithLabelValues(s.Source.Name(), "ok").Inc()
	corpusPublicationsGauge.Set(float64(snap.Engine.Size()))
	log.Info("Korpus geladen",
		zap.Int("volumes", snap.Stats.Volumes),
		zap.Int("themes", snap.Stats.Themes),
		zap.Int("titles", snap.Stats.Titles),
		zap.Int("searchable", snap.Engine.Size()),
		zap.Duration("took", time.Since(start)))
	return snap, nil
}

// Snapshot liefert den aktiven Snapshot.
func (s *CorpusService) Snapshot() (*Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrCorpusNotLoaded
	}
	return snap, nil
}

// Search führt eine lokalisierte Suche auf dem aktiven Snapshot aus.
func (s *CorpusService) Search(query string, locale Locale) ([]MatchView, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	timer := prometheus.NewTimer(searchDuration)
	defer timer.ObserveDuration()
	searchCounter.WithLabelValues(string(locale)).Inc()
	return snap.Engine.SearchLocalized(query, locale), nil
}

// ScheduleReload lädt den Korpus gemäß Cron-Ausdruck neu. Ein leerer Ausdruck
// deaktiviert das Neuladen und liefert nil.
func (s *CorpusService) ScheduleReload(schedule string) (*cron.Cron, error) {
	if schedule == "" {
		return nil, nil
	}
	scheduler := cron.New()
	_, err := scheduler.AddFunc(schedule, func() {
		s.Logger.Info("Running scheduled corpus reload...")
		if _, err := s.Load(context.Background()); err != nil {
			s.Logger.Error("Corpus reload failed, keeping previous snapshot", zap.Error(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid reload schedule %q: %w", schedule, err)
	}
	scheduler.Start()
	return scheduler, nil
}
