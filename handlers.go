package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"shin-college/config"
	"shin-college/models"
	"shin-college/services"
)

const clientIDHeader = "X-Client-ID"

var (
	errInvalidIndex    = errors.New("invalid index")
	errMissingClientID = errors.New("missing " + clientIDHeader + " header")
)

// statusFor bildet Fehler auf HTTP-Statuscodes ab.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrCorpusNotLoaded):
		return http.StatusServiceUnavailable
	case errors.Is(err, services.ErrInvalidLocale),
		errors.Is(err, services.ErrInvalidFontSize),
		errors.Is(err, services.ErrInvalidFilter),
		errors.Is(err, errInvalidIndex),
		errors.Is(err, errMissingClientID):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func abortWithError(c *gin.Context, log *zap.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.AbortWithStatusJSON(status, gin.H{"error": "internal error"})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func requestLocale(c *gin.Context, cfg *config.Config) (services.Locale, error) {
	return services.ParseLocale(c.Query("locale"), services.Locale(cfg.DefaultLocale))
}

func indexParam(c *gin.Context, name string) (int, error) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", errInvalidIndex, name, c.Param(name))
	}
	return n, nil
}

func clientID(c *gin.Context) (string, error) {
	id := strings.TrimSpace(c.GetHeader(clientIDHeader))
	if id == "" {
		return "", errMissingClientID
	}
	return id, nil
}

// themeFromPath löst :volume und :theme gegen den aktiven Snapshot auf.
func themeFromPath(c *gin.Context, corpus *services.CorpusService) (*services.Snapshot, *models.Volume, *models.Theme, error) {
	snap, err := corpus.Snapshot()
	if err != nil {
		return nil, nil, nil, err
	}
	vi, err := indexParam(c, "volume")
	if err != nil {
		return nil, nil, nil, err
	}
	ti, err := indexParam(c, "theme")
	if err != nil {
		return nil, nil, nil, err
	}
	v, th, ok := snap.Corpus.Lookup(vi, ti)
	if !ok {
		return nil, nil, nil, fmt.Errorf("%w: volume %d theme %d", services.ErrNotFound, vi, ti)
	}
	return snap, v, th, nil
}

// groupForTitle liefert die Gruppe eines Titels samt Gruppenindex.
func groupForTitle(th *models.Theme, titleIndex int) (models.GroupedTitle, int, error) {
	if titleIndex < 0 || titleIndex >= len(th.Titles) || th.Titles[titleIndex].IsSeparator() {
		return models.GroupedTitle{}, 0, fmt.Errorf("%w: title %d", services.ErrNotFound, titleIndex)
	}
	groups := services.GroupTitles(th.Titles)
	gi, _, ok := services.FindGroup(groups, th.Titles, titleIndex)
	if !ok {
		return models.GroupedTitle{}, 0, fmt.Errorf("%w: title %d", services.ErrNotFound, titleIndex)
	}
	return groups[gi], gi, nil
}

func titleLink(volumeIndex, themeIndex, titleIndex int) string {
	return fmt.Sprintf("/volumes/%d/themes/%d/titles/%d", volumeIndex, themeIndex, titleIndex)
}

type volumeView struct {
	Index          int                 `json:"index"`
	Name           string              `json:"name"`
	Label          string              `json:"label"`
	HasTranslation bool                `json:"has_translation"`
	Stats          services.Statistics `json:"stats"`
}

type themeView struct {
	Index          int                 `json:"index"`
	Name           string              `json:"name"`
	Label          string              `json:"label"`
	HasTranslation bool                `json:"has_translation"`
	Stats          services.Statistics `json:"stats"`
}

type titleView struct {
	GroupIndex      int    `json:"group_index"`
	TitleIndex      int    `json:"title_index"`
	Name            string `json:"name"`
	Label           string `json:"label"`
	Publications    int    `json:"publications"`
	FullyTranslated bool   `json:"fully_translated"`
	AnyTranslation  bool   `json:"any_translation"`
	Link            string `json:"link"`
}

type publicationView struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
	Heading  string `json:"heading"`
	Body     string `json:"body"`
	Date     string `json:"date,omitempty"`
}

func setupCorpusRoutes(router *gin.Engine, cfg *config.Config, corpus *services.CorpusService, log *zap.Logger) {
	router.GET("/volumes", func(c *gin.Context) {
		locale, err := requestLocale(c, cfg)
		if err != nil {
			abortWithError(c, log, err)
			return
		}
		snap, err := corpus.Snapshot()
		if err != nil {
			abortWithError(c, log, err)
			return
		}
		views := make([]volumeView, 0, len(snap.Corpus.Volumes))
		for _, v := range snap.Corpus.Volumes {
			views = append(views, volumeView{
				Index:          v.Index,
				Name:           v.Name,
				Label:          services.VolumeLabel(v, locale),
				HasTranslation: services.HasVolumeTranslation(v),
				Stats:          services.VolumeStatistics(v),
			})
		}
		c.JSON(http.StatusOK, views)
	})

	router.GET("/volumes/:volume/themes", func(c *gin.Context) {
		locale, err := requestLocale(c, cfg)
		if err != nil {
			abortWithError(c, log, err)
			return
		}
		snap, err := corpus.Snapshot()
		if err != nil {
			abortWithError(c, log, err)
			return
		}
		vi, err := indexParam(c, "volume")
		if err != nil {
			abortWithError(c, log, err)
			return
		}
		if vi < 0 || vi >= len(snap.Corpus.Volumes) {
			abortWithError(c, log, fmt.Errorf("%w: volume %d", services.ErrNotFound, vi))
			return
		}
		v := snap.Corpus.Volumes[vi]
		views := make([]themeView, 0, len(v.Themes))
		for _, th := range v.Themes {
			views = append(views, themeView{
				Index:          th.Index,
				Name:           th.Name,
				Label:          services.ResolveText(th, "theme", locale),
				HasTranslation: services.HasThemeTranslation(th),
				Stats:          services.ThemeStatistics(th),
			})
		}
		c.JSON(http.StatusOK, gin.H{
			"volume": services.VolumeLabel(v, locale),
			"themes": views,
		})
	})

	router.GET("/volumes/:volume/themes/:theme/titles", func(c *gin.Context) {
		locale, err := requestLocale(c, cfg)
		if err != nil {
			abortWithError(c, log, err)
			return
		}
		filter, err := services.ParseTranslationFilter(c.Query("translated"))
		if err != nil {
			abortWithError(c, log, err)
			return
		}
		_, v, th, err := themeFromPath(c, corpus)
		if err != nil {
			abortWithError(c, log, err)
			return
		}
		views := []titleView{}
		for gi, g := range services.GroupTitles(th.Titles) {
			if !filter.Accepts(g.Publications) {
				continue
			}
			first := g.SourceIndexes[0]
			views = append(views, titleView{
				GroupIndex:      gi,
				TitleIndex:      first,
				Name:            g.Name,
				Label:           services.DisplayTitle(g, locale),
				Publications:    len(g.Publications),
				FullyTranslated: services.IsFullyTranslated(g.Publications),
				AnyTranslation:  services.HasAnyTranslation(g.Publications),
				Link:            titleLink(v.Index, th.Index, first),
			})
		}
		c.JSON(http.StatusOK, gin.H{
			"volume": services.VolumeLabel(*v, locale),
			"theme":  services.ResolveText(*th, "theme", locale),
			"titles": views,
		})
	})

	router.GET("/volumes/:volume/themes/:theme/titles/:title", func(c *gin.Context) {
		locale, err := requestLocale(c, cfg)
		if err != nil {
			abortWithError(c, log, err)
			return
		}
		_, v, th, err := themeFromPath(c, corpus)
		if err != nil {
			abortWithError(c, log, err)
			return
		}
		ti, err := indexParam(c, "title")
		if err != nil {
			abortWithError(c, log, err)
			return
		}
		group, gi, err := groupForTitle(th, ti)
		if err != nil {
			abortWithError(c, log, err)
			return
		}

		// Leere Publikationen entfallen, die Positionen bleiben stabil
		pubs := []publicationView{}
		for pos, p := range group.Publications {
			if p.IsContentless() {
				continue
			}
			pubs = append(pubs, publicationView{
				ID:       fmt.Sprintf("pub-%d", pos),
				Position: pos,
				Heading:  services.PublicationHeading(p, locale),
				Body:     services.ResolveText(p, "body", locale),
				Date:     p.Date,
			})
		}
		c.JSON(http.StatusOK, gin.H{
			"volume_index":     v.Index,
			"theme_index":      th.Index,
			"title_index":      ti,
			"group_index":      gi,
			"title":            group.Name,
			"label":            services.DisplayTitle(group, locale),
			"volume":           services.VolumeLabel(*v, locale),
			"theme":            services.ResolveText(*th, "theme", locale),
			"fully_translated": services.IsFullyTranslated(group.Publications),
			"publications":     pubs,
		})
	})

	router.GET("/translated", func(c *gin.Context) {
		locale, err := requestLocale(c, cfg)
		if err != nil {
			abortWithError(c, log, err)
			return
		}
		snap, err := corpus.Snapshot()
		if err != nil {
			abortWithError(c, log, err)
			return
		}
		tree := services.TranslatedTree(snap.Corpus, locale)
		if tree == nil {
			tree = []services.TranslatedVolume{}
		}
		c.JSON(http.StatusOK, tree)
	})

	router.GET("/stats", func(c *gin.Context) {
		snap, err := corpus.Snapshot()
		if err != nil {
			abortWithError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"stats":      snap.Stats,
			"searchable": snap.Engine.Size(),
			"source":     snap.Source,
			"loaded_at":  snap.LoadedAt,
		})
	})

	router.GET("/labels", func(c *gin.Context) {
		locale, err := requestLocale(c, cfg)
		if err != nil {
			abortWithError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, services.Labels(locale))
	})
}

func setupSearchRoutes(router *gin.Engine, cfg *config.Config, corpus *services.CorpusService) {
	router.GET("/search", func(c *gin.Context) {
		locale, err := requestLocale(c, cfg)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		query := strings.TrimSpace(c.Query("q"))

		// Zu kurze Anfragen werden nicht ausgeführt
		if utf8.RuneCountInString(query) < cfg.SearchMinLength {
			c.JSON(http.StatusOK, gin.H{
				"query":   query,
				"count":   0,
				"stats":   services.Statistics{},
				"results": []services.MatchView{},
			})
			return
		}

		views, err := corpus.Search(query, locale)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		matches := make([]models.SearchMatch, 0, len(views))
		for _, v := range views {
			matches = append(matches, v.SearchMatch)
		}
		if views == nil {
			views = []services.MatchView{}
		}
		c.JSON(http.StatusOK, gin.H{
			"query":   query,
			"count":   len(views),
			"stats":   services.MatchStatistics(matches),
			"results": views,
		})
	})
}

func setupHistoryRoutes(router *gin.Engine, corpus *services.CorpusService, history *services.HistoryService, log *zap.Logger) {
	rg := router.Group("/history")

	rg.GET("", func(c *gin.Context) {
		id, err := clientID(c)
		if err != nil {
			abortWithError(c, log, err)
			return
		}
		entries, err := history.List(c.Request.Context(), id)
		if err != nil {
			abortWithError(c, log, err)
			return
		}
		if entries == nil {
			entries = []models.HistoryEntry{}
		}
		c.JSON(http.StatusOK, entries)
	})

	rg.POST("", func(c *gin.Context) {
		type openRequest struct {
			VolumeIndex int `json:"volume_index"`
			ThemeIndex  int `json:"theme_index"`
			TitleIndex  int `json:"title_index"`
		}
		id, err := clientID(c)
		if err != nil {
			abortWithError(c, log, err)
			return
		}
		var req openRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		snap, err := corpus.Snapshot()
		if err != nil {
			abortWithError(c, log, err)
			return
		}
		v, th, ok := snap.Corpus.Lookup(req.VolumeIndex, req.ThemeIndex)
		if !ok {
			abortWithError(c, log, fmt.Errorf("%w: volume %d theme %d", services.ErrNotFound, req.VolumeIndex, req.ThemeIndex))
			return
		}
		group, _, err := groupForTitle(th, req.TitleIndex)
		if err != nil {
			abortWithError(c, log, err)
			return
		}
		entries, err := history.Record(c.Request.Context(), id, models.HistoryEntry{
			Title:       group.Name,
			Volume:      v.Name,
			Theme:       th.Name,
			VolumeIndex: v.Index,
			ThemeIndex:  th.Index,
		})
		if err != nil {
			abortWithError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, entries)
	})

	rg.DELETE("", func(c *gin.Context) {
		id, err := clientID(c)
		if err != nil {
			abortWithError(c, log, err)
			return
		}
		if err := history.Clear(c.Request.Context(), id); err != nil {
			abortWithError(c, log, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	rg.GET("/:index", func(c *gin.Context) {
		id, err := clientID(c)
		if err != nil {
			abortWithError(c, log, err)
			return
		}
		idx, err := indexParam(c, "index")
		if err != nil {
			abortWithError(c, log, err)
			return
		}
		snap, err := corpus.Snapshot()
		if err != nil {
			abortWithError(c, log, err)
			return
		}
		entries, err := history.List(c.Request.Context(), id)
		if err != nil {
			abortWithError(c, log, err)
			return
		}
		if idx < 0 || idx >= len(entries) {
			abortWithError(c, log, fmt.Errorf("%w: history entry %d", services.ErrNotFound, idx))
			return
		}
		resolved, ok := services.ResolveHistoryEntry(snap.Corpus, entries[idx])
		if !ok {
			abortWithError(c, log, fmt.Errorf("%w: title %q", services.ErrNotFound, entries[idx].Title))
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"entry":    entries[idx],
			"resolved": resolved,
			"link":     titleLink(resolved.VolumeIndex, resolved.ThemeIndex, resolved.Title.SourceIndexes[0]),
		})
	})
}

func setupPreferenceRoutes(router *gin.Engine, prefs *services.PreferenceService, log *zap.Logger) {
	rg := router.Group("/preferences")

	rg.GET("", func(c *gin.Context) {
		id, err := clientID(c)
		if err != nil {
			abortWithError(c, log, err)
			return
		}
		pref, err := prefs.Get(c.Request.Context(), id)
		if err != nil {
			abortWithError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, pref)
	})

	rg.PUT("", func(c *gin.Context) {
		type updateRequest struct {
			Locale   string `json:"locale"`
			FontSize string `json:"font_size"`
		}
		id, err := clientID(c)
		if err != nil {
			abortWithError(c, log, err)
			return
		}
		var req updateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		pref, err := prefs.Update(c.Request.Context(), id, req.Locale, req.FontSize)
		if err != nil {
			abortWithError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, pref)
	})

	rg.POST("/font-size/:action", func(c *gin.Context) {
		id, err := clientID(c)
		if err != nil {
			abortWithError(c, log, err)
			return
		}
		pref, err := prefs.StepFontSize(c.Request.Context(), id, c.Param("action"))
		if err != nil {
			abortWithError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, pref)
	})

	rg.POST("/locale/toggle", func(c *gin.Context) {
		id, err := clientID(c)
		if err != nil {
			abortWithError(c, log, err)
			return
		}
		pref, err := prefs.ToggleLocale(c.Request.Context(), id)
		if err != nil {
			abortWithError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, pref)
	})
}
