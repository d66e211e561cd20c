package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"shin-college/models"
)

type staticSource struct {
	data []byte
	err  error
}

func (s *staticSource) Fetch(context.Context) ([]byte, error) { return s.data, s.err }
func (s *staticSource) Name() string                          { return "static" }

const sampleCorpus = `[
  {"volume": "1. Seção", "themes": [
    {"theme": "10 - Dez", "titles": []},
    {"theme": "Sem número", "titles": []},
    {"theme": "2 - Dois", "theme_ptbr": "2 - Dois", "titles": [
      {"title": "光1", "title_ptbr": "Luz 1", "publications": [
        {"publication_title": "一", "content": "光の道", "content_ptbr": "Caminho da luz"}
      ]},
      {"title": "光2", "publications": "kaputt"}
    ]},
    {"theme": "1. Um", "titles": []}
  ]}
]`

func themeNames(themes []models.Theme) []string {
	var out []string
	for _, th := range themes {
		out = append(out, th.Name)
	}
	return out
}

func TestDecodeCorpusSortsThemes(t *testing.T) {
	c, err := DecodeCorpus([]byte(sampleCorpus), true)
	require.NoError(t, err)
	require.Equal(t, []string{"1. Um", "2 - Dois", "10 - Dez", "Sem número"}, themeNames(c.Volumes[0].Themes))
	require.Equal(t, 1, c.Volumes[0].Themes[1].Index)
	require.Empty(t, c.Volumes[0].Themes[1].Titles[1].Publications)

	c, err = DecodeCorpus([]byte(sampleCorpus), false)
	require.NoError(t, err)
	require.Equal(t, "10 - Dez", c.Volumes[0].Themes[0].Name)

	_, err = DecodeCorpus([]byte(`{"volume": 1}`), true)
	require.Error(t, err)
}

func TestExtractThemeNumber(t *testing.T) {
	n, ok := extractThemeNumber("12 - Algo")
	require.True(t, ok)
	require.Equal(t, 12, n)
	_, ok = extractThemeNumber("12Algo")
	require.False(t, ok)
	_, ok = extractThemeNumber("Algo 12")
	require.False(t, ok)
}

func TestCorpusServiceLoadAndReload(t *testing.T) {
	src := &staticSource{data: []byte(sampleCorpus)}
	svc := NewCorpusService(src, true, zap.NewNop())

	_, err := svc.Snapshot()
	require.ErrorIs(t, err, ErrCorpusNotLoaded)
	_, err = svc.Search("luz", LocalePT)
	require.ErrorIs(t, err, ErrCorpusNotLoaded)

	snap, err := svc.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, snap.Engine.Size())
	require.Equal(t, "static", snap.Source)

	views, err := svc.Search("caminho", LocalePT)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, "Luz 1", views[0].TitleLabel)
	require.Equal(t, "/volumes/0/themes/1/titles/0#pub-0", views[0].Link)

	// Fehlgeschlagenes Neuladen behält den alten Snapshot
	src.err = errors.New("offline")
	_, err = svc.Load(context.Background())
	require.ErrorContains(t, err, "offline")
	current, err := svc.Snapshot()
	require.NoError(t, err)
	require.Same(t, snap, current)

	src.err = nil
	src.data = []byte("nicht json")
	_, err = svc.Load(context.Background())
	require.Error(t, err)
	current, _ = svc.Snapshot()
	require.Same(t, snap, current)
}

func TestScheduleReload(t *testing.T) {
	svc := NewCorpusService(&staticSource{}, false, zap.NewNop())

	scheduler, err := svc.ScheduleReload("")
	require.NoError(t, err)
	require.Nil(t, scheduler)

	_, err = svc.ScheduleReload("keine zeit")
	require.Error(t, err)

	scheduler, err = svc.ScheduleReload("@every 1h")
	require.NoError(t, err)
	require.NotNil(t, scheduler)
	scheduler.Stop()
}
