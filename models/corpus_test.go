package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTitleUnmarshalLenientPublications(t *testing.T) {
	cases := map[string]struct {
		input string
		want  int
	}{
		"missing":       {`{"title":"A"}`, 0},
		"null":          {`{"title":"A","publications":null}`, 0},
		"object":        {`{"title":"A","publications":{"content":"x"}}`, 0},
		"string":        {`{"title":"A","publications":"oops"}`, 0},
		"valid":         {`{"title":"A","publications":[{"content":"x"},{"content":"y"}]}`, 2},
		"partly broken": {`{"title":"A","publications":[{"content":"x"},42,{"content":"z"}]}`, 2},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var title Title
			require.NoError(t, json.Unmarshal([]byte(tc.input), &title))
			require.Equal(t, "A", title.Name)
			require.Len(t, title.Publications, tc.want)
		})
	}
}

func TestCorpusDecodeAndIndexes(t *testing.T) {
	doc := `[
	  {"volume":"1. Seção de Busca do Caminho","themes":[
	    {"theme":"1 - 信仰","theme_ptbr":"1 - Fé","titles":[
	      {"title":"教え1","title_ptbr":"Ensinamento 1","publications":[{"publication_title":"h","content":"本文","content_ptbr":"corpo"}]},
	      {"title":"---"}
	    ]}
	  ]},
	  {"volume":"4. Outros","themes":[]}
	]`
	var c Corpus
	require.NoError(t, json.Unmarshal([]byte(doc), &c.Volumes))
	c.AssignIndexes()

	require.Len(t, c.Volumes, 2)
	require.Equal(t, 1, c.Volumes[1].Index)
	require.Equal(t, 1, c.Volumes[0].Themes[0].Titles[1].Index)
	require.True(t, c.Volumes[0].Themes[0].Titles[1].IsSeparator())
	require.Equal(t, "corpo", c.Volumes[0].Themes[0].Titles[0].Publications[0].BodyLocalized)
	require.Equal(t, 1, c.PublicationCount())

	v, th, ok := c.Lookup(0, 0)
	require.True(t, ok)
	require.Equal(t, "4. Outros", c.Volumes[1].Name)
	require.Equal(t, "1 - Fé", th.NameLocalized)
	require.Equal(t, v.Name, c.Volumes[0].Name)

	_, _, ok = c.Lookup(1, 0)
	require.False(t, ok)
	_, _, ok = c.Lookup(-1, 0)
	require.False(t, ok)

	found, ok := c.VolumeByName("4. Outros")
	require.True(t, ok)
	require.Equal(t, 1, found.Index)
	_, ok = found.ThemeByName("nope")
	require.False(t, ok)
}

func TestPublicationPredicates(t *testing.T) {
	require.True(t, Publication{Body: "  ", BodyLocalized: "\n"}.IsContentless())
	require.False(t, Publication{Body: "x"}.IsContentless())
	require.False(t, Publication{BodyLocalized: "   "}.IsTranslated())
	require.True(t, Publication{BodyLocalized: "sim"}.IsTranslated())
}

func TestGroupedTitleAsTitle(t *testing.T) {
	g := GroupedTitle{Name: "Teaching", Publications: []Publication{{Body: "a"}}, SourceIndexes: []int{3, 5}}
	title := g.AsTitle()
	require.True(t, title.IsCanonical())
	require.Equal(t, 3, title.Index)
	require.Equal(t, "Teaching", title.Name)

	title.Publications[0].Body = "changed"
	require.Equal(t, "a", g.Publications[0].Body)
	require.Len(t, GroupedTitlesAsTitles([]GroupedTitle{g, g}), 2)
}
