// Command college durchsucht und liest den Korpus offline im Terminal.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"shin-college/models"
	"shin-college/providers/file"
	"shin-college/services"
)

// cli definiert die Kommandozeile.
type cli struct {
	Corpus    string `name:"corpus" short:"c" help:"Path to the corpus JSON file" type:"path" default:"data/shin_college_data.json" env:"CORPUS_PATH"`
	Locale    string `short:"l" help:"Display language" enum:"pt,jp" default:"pt"`
	KeepOrder bool   `name:"keep-order" help:"Do not sort themes by their leading number"`
	JSON      bool   `help:"Print JSON instead of text"`
	Debug     bool   `help:"Verbose logging"`

	Volumes    VolumesCmd    `cmd:"" help:"List volumes"`
	Themes     ThemesCmd     `cmd:"" help:"List themes of a volume"`
	Titles     TitlesCmd     `cmd:"" help:"List grouped titles of a theme"`
	Read       ReadCmd       `cmd:"" help:"Print the publications of a title"`
	Search     SearchCmd     `cmd:"" help:"Search all publications"`
	Translated TranslatedCmd `cmd:"" help:"List fully translated titles"`
	Stats      StatsCmd      `cmd:"" help:"Print corpus statistics"`
	Labels     LabelsCmd     `cmd:"" help:"Print the UI label catalog"`
}

// env wird an alle Run-Methoden gebunden.
type env struct {
	Snapshot *services.Snapshot
	Locale   services.Locale
	JSON     bool
	Out      io.Writer
}

func (e *env) printJSON(v any) error {
	enc := json.NewEncoder(e.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (e *env) table() *tabwriter.Writer {
	return tabwriter.NewWriter(e.Out, 0, 4, 2, ' ', 0)
}

func (e *env) label(key string) string {
	return services.Label(e.Locale, key)
}

func (e *env) theme(volumeIndex, themeIndex int) (*models.Volume, *models.Theme, error) {
	v, th, ok := e.Snapshot.Corpus.Lookup(volumeIndex, themeIndex)
	if !ok {
		return nil, nil, fmt.Errorf("%w: volume %d theme %d", services.ErrNotFound, volumeIndex, themeIndex)
	}
	return v, th, nil
}

func statsLine(e *env, s services.Statistics) string {
	return fmt.Sprintf("%d %s, %d %s, %d %s",
		s.Themes, e.label("labelThemes"), s.Titles, e.label("labelTopics"), s.Articles, e.label("labelDocs"))
}

// VolumesCmd listet alle Bände.
type VolumesCmd struct{}

func (c *VolumesCmd) Run(e *env) error {
	if e.JSON {
		return e.printJSON(e.Snapshot.Corpus.Volumes)
	}
	fmt.Fprintln(e.Out, e.label("volumesTitle"))
	w := e.table()
	for _, v := range e.Snapshot.Corpus.Volumes {
		fmt.Fprintf(w, "%d\t%s\t%s\n", v.Index, services.VolumeLabel(v, e.Locale), statsLine(e, services.VolumeStatistics(v)))
	}
	return w.Flush()
}

// ThemesCmd listet die Themen eines Bandes.
type ThemesCmd struct {
	Volume int `arg:"" help:"Volume index"`
}

func (c *ThemesCmd) Run(e *env) error {
	if c.Volume < 0 || c.Volume >= len(e.Snapshot.Corpus.Volumes) {
		return fmt.Errorf("%w: volume %d", services.ErrNotFound, c.Volume)
	}
	v := e.Snapshot.Corpus.Volumes[c.Volume]
	if e.JSON {
		return e.printJSON(v.Themes)
	}
	fmt.Fprintln(e.Out, services.VolumeLabel(v, e.Locale))
	w := e.table()
	for _, th := range v.Themes {
		marker := " "
		if services.HasThemeTranslation(th) {
			marker = "*"
		}
		fmt.Fprintf(w, "%d\t%s %s\t%s\n", th.Index, marker, services.ResolveText(th, "theme", e.Locale), statsLine(e, services.ThemeStatistics(th)))
	}
	return w.Flush()
}

// TitlesCmd listet die gruppierten Titel eines Themas.
type TitlesCmd struct {
	Volume     int    `arg:"" help:"Volume index"`
	Theme      int    `arg:"" help:"Theme index"`
	Translated string `help:"Translation filter (strict or loose)"`
}

func (c *TitlesCmd) Run(e *env) error {
	_, th, err := e.theme(c.Volume, c.Theme)
	if err != nil {
		return err
	}
	filter, err := services.ParseTranslationFilter(c.Translated)
	if err != nil {
		return err
	}
	groups := services.FilterGrouped(services.GroupTitles(th.Titles), filter)
	if e.JSON {
		return e.printJSON(groups)
	}
	fmt.Fprintln(e.Out, services.ResolveText(*th, "theme", e.Locale))
	if len(groups) == 0 {
		fmt.Fprintln(e.Out, e.label("noTranslatedTopics"))
		return nil
	}
	w := e.table()
	for _, g := range groups {
		fmt.Fprintf(w, "%d\t%s\t%d\n", g.SourceIndexes[0], services.DisplayTitle(g, e.Locale), len(g.Publications))
	}
	return w.Flush()
}

// ReadCmd gibt die Publikationen eines Titels aus.
type ReadCmd struct {
	Volume int `arg:"" help:"Volume index"`
	Theme  int `arg:"" help:"Theme index"`
	Title  int `arg:"" help:"Title index"`
}

func (c *ReadCmd) Run(e *env) error {
	_, th, err := e.theme(c.Volume, c.Theme)
	if err != nil {
		return err
	}
	groups := services.GroupTitles(th.Titles)
	gi, _, ok := services.FindGroup(groups, th.Titles, c.Title)
	if !ok {
		return fmt.Errorf("%w: title %d", services.ErrNotFound, c.Title)
	}
	group := groups[gi]
	if e.JSON {
		return e.printJSON(group)
	}
	fmt.Fprintf(e.Out, "# %s\n", services.DisplayTitle(group, e.Locale))
	for pos, p := range group.Publications {
		if p.IsContentless() {
			continue
		}
		heading := services.PublicationHeading(p, e.Locale)
		if heading == "" {
			heading = e.label("untitled")
		}
		fmt.Fprintf(e.Out, "\n## [%d] %s\n\n%s\n", pos, heading, services.ResolveText(p, "body", e.Locale))
	}
	return nil
}

// SearchCmd durchsucht alle Publikationen.
type SearchCmd struct {
	Query     []string `arg:"" help:"Search keywords"`
	MinLength int      `name:"min-length" help:"Minimum query length" default:"2"`
}

func (c *SearchCmd) Run(e *env) error {
	query := strings.TrimSpace(strings.Join(c.Query, " "))
	var views []services.MatchView
	if utf8.RuneCountInString(query) >= c.MinLength {
		views = e.Snapshot.Engine.SearchLocalized(query, e.Locale)
	}
	if e.JSON {
		if views == nil {
			views = []services.MatchView{}
		}
		return e.printJSON(views)
	}
	if len(views) == 0 {
		fmt.Fprintln(e.Out, e.label("noResults"))
		return nil
	}
	matches := make([]models.SearchMatch, 0, len(views))
	for _, v := range views {
		matches = append(matches, v.SearchMatch)
	}
	fmt.Fprintln(e.Out, statsLine(e, services.MatchStatistics(matches)))
	for _, v := range views {
		fmt.Fprintf(e.Out, "\n%s > %s > %s\n  %s\n  %s\n", v.VolumeLabel, v.ThemeLabel, v.TitleLabel, v.Snippet, v.Link)
	}
	return nil
}

// TranslatedCmd listet alle vollständig übersetzten Titel.
type TranslatedCmd struct{}

func (c *TranslatedCmd) Run(e *env) error {
	tree := services.TranslatedTree(e.Snapshot.Corpus, e.Locale)
	if e.JSON {
		if tree == nil {
			tree = []services.TranslatedVolume{}
		}
		return e.printJSON(tree)
	}
	if len(tree) == 0 {
		fmt.Fprintln(e.Out, e.label("noTranslated"))
		return nil
	}
	fmt.Fprintln(e.Out, e.label("translatedTitle"))
	for _, v := range tree {
		fmt.Fprintf(e.Out, "\n%s\n", v.Label)
		for _, th := range v.Themes {
			fmt.Fprintf(e.Out, "  %s\n", th.Label)
			for _, t := range th.Titles {
				fmt.Fprintf(e.Out, "    %d/%d/%d  %s\n", v.VolumeIndex, th.ThemeIndex, t.TitleIndex, t.Label)
			}
		}
	}
	return nil
}

// StatsCmd gibt die Kennzahlen des Korpus aus.
type StatsCmd struct{}

func (c *StatsCmd) Run(e *env) error {
	if e.JSON {
		return e.printJSON(e.Snapshot.Stats)
	}
	s := e.Snapshot.Stats
	fmt.Fprintf(e.Out, "%d %s\n%s\n", s.Volumes, e.label("breadcrumbVolumes"), statsLine(e, s))
	return nil
}

// LabelsCmd gibt den Oberflächenkatalog aus.
type LabelsCmd struct{}

func (c *LabelsCmd) Run(e *env) error {
	return e.printJSON(services.Labels(e.Locale))
}

func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return cfg.Build()
}

// run parst die Argumente, lädt den Korpus und führt das Kommando aus.
func run(args []string, out io.Writer) error {
	var c cli
	parser, err := kong.New(&c,
		kong.Name("college"),
		kong.Description("Shin College corpus browser"),
		kong.Writers(out, out),
	)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger, err := newLogger(c.Debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	corpus := services.NewCorpusService(file.NewFetcher(c.Corpus, logger), !c.KeepOrder, logger)
	snap, err := corpus.Load(context.Background())
	if err != nil {
		return err
	}
	return kctx.Run(&env{
		Snapshot: snap,
		Locale:   services.Locale(c.Locale),
		JSON:     c.JSON,
		Out:      out,
	})
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "college:", err)
		os.Exit(1)
	}
}
