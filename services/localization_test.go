package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"shin-college/models"
)

func TestParseLocale(t *testing.T) {
	loc, err := ParseLocale("", LocalePT)
	require.NoError(t, err)
	require.Equal(t, LocalePT, loc)

	loc, err = ParseLocale(" JP ", LocalePT)
	require.NoError(t, err)
	require.Equal(t, LocaleJP, loc)

	_, err = ParseLocale("en", LocalePT)
	require.ErrorIs(t, err, ErrInvalidLocale)
}

func TestResolveTextFallback(t *testing.T) {
	for _, localized := range []string{"", "   ", "\n\t"} {
		p := models.Publication{Body: "本文", BodyLocalized: localized}
		require.Equal(t, "本文", ResolveText(p, "body", LocalePT))
		require.Equal(t, "本文", ResolveText(p, "content", LocalePT))
	}

	p := models.Publication{Body: "本文", BodyLocalized: "corpo", Heading: "見出し", HeadingLocalized: "Título"}
	require.Equal(t, "corpo", ResolveText(p, "body", LocalePT))
	require.Equal(t, "本文", ResolveText(p, "body", LocaleJP))
	require.Equal(t, "Título", ResolveText(p, "publication_title", LocalePT))

	theme := models.Theme{Name: "信仰", NameLocalized: "Fé"}
	require.Equal(t, "Fé", ResolveText(theme, "theme", LocalePT))
	require.Equal(t, "信仰", ResolveText(theme, "name", LocaleJP))

	// Beide Felder fehlen
	require.Equal(t, "", ResolveText(models.Title{}, "title", LocalePT))
	require.Equal(t, "", ResolveText(p, "unknown", LocalePT))
}

func TestResolveVolumeDisplayName(t *testing.T) {
	require.Equal(t, "3.信仰編", ResolveVolumeDisplayName("3. Seção da Fé", LocaleJP))
	require.Equal(t, "3. Seção da Fé", ResolveVolumeDisplayName("3. Seção da Fé", LocalePT))
	require.Equal(t, "9. Novo", ResolveVolumeDisplayName("9. Novo", LocaleJP))
}

func TestFormatVolumeName(t *testing.T) {
	require.Equal(t, "Seção da Fé", FormatVolumeName("3. Seção da Fé"))
	require.Equal(t, "Outros", FormatVolumeName("4.Outros"))
	require.Equal(t, "Sem número", FormatVolumeName("Sem número"))
}

func TestTranslationClassification(t *testing.T) {
	partial := []models.Publication{{BodyLocalized: "x"}, {BodyLocalized: ""}}
	require.True(t, HasAnyTranslation(partial))
	require.False(t, IsFullyTranslated(partial))

	full := []models.Publication{{BodyLocalized: "x"}, {BodyLocalized: "y"}}
	require.True(t, HasAnyTranslation(full))
	require.True(t, IsFullyTranslated(full))

	require.False(t, HasAnyTranslation(nil))
	require.False(t, IsFullyTranslated(nil))

	whitespace := []models.Publication{{BodyLocalized: "  "}}
	require.False(t, HasAnyTranslation(whitespace))
}

func TestThemeAndVolumeTranslation(t *testing.T) {
	c := testCorpus()
	require.True(t, HasThemeTranslation(c.Volumes[0].Themes[0]))
	require.True(t, HasVolumeTranslation(c.Volumes[0]))

	untranslated := models.Theme{Titles: []models.Title{{Name: "A", NameLocalized: "A", Publications: []models.Publication{{Body: "x"}}}}}
	require.False(t, HasThemeTranslation(untranslated))
	require.False(t, HasVolumeTranslation(models.Volume{Themes: []models.Theme{untranslated}}))
}

func TestDisplayTitle(t *testing.T) {
	g := models.GroupedTitle{
		Name:          "教え",
		NameLocalized: "Ensinamento",
		Publications:  []models.Publication{{BodyLocalized: "x"}},
	}
	require.Equal(t, "Ensinamento", DisplayTitle(g, LocalePT))
	require.Equal(t, "教え", DisplayTitle(g, LocaleJP))

	g.NameLocalized = ""
	g.Publications = []models.Publication{{Body: "a"}, {BodyLocalized: "b", HeadingLocalized: "Cabeçalho"}}
	require.Equal(t, "Cabeçalho", DisplayTitle(g, LocalePT))

	untranslated := models.GroupedTitle{Name: "教え", NameLocalized: "Ensinamento", Publications: []models.Publication{{Body: "a"}}}
	require.Equal(t, "教え", DisplayTitle(untranslated, LocalePT))
}

func TestPublicationHeading(t *testing.T) {
	require.Equal(t, "Título", PublicationHeading(models.Publication{Heading: "見出し", HeadingLocalized: "Título"}, LocalePT))
	require.Equal(t, "見出し", PublicationHeading(models.Publication{Heading: "見出し", HeadingLocalized: "Título"}, LocaleJP))
	require.Equal(t, "旧", PublicationHeading(models.Publication{Header: "旧"}, LocalePT))
	require.Equal(t, "", PublicationHeading(models.Publication{}, LocalePT))
}
