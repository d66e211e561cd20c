package services

// Oberflächentexte je Sprache. Fehlende Schlüssel fallen auf Portugiesisch
// und zuletzt auf den Schlüssel selbst zurück.
var uiLabels = map[Locale]map[string]string{
	LocalePT: {
		"volumesTitle":       "Selecione um Volume",
		"backToVolumes":      "← Voltar aos Volumes",
		"backToThemes":       "← Voltar aos Temas",
		"openAllThemes":      "Abrir Todos",
		"closeAllThemes":     "Fechar Todos",
		"historyTitleText":   "Visto Recentemente",
		"clearHistoryBtn":    "Limpar Histórico",
		"labelThemes":        "Temas",
		"labelTopics":        "Tópicos",
		"labelDocs":          "Documentos",
		"loading":            "Carregando...",
		"breadcrumbVolumes":  "Volumes",
		"searchPlaceholder":  "Pesquisar por documentos, temas ou volumes...",
		"modalNavNext":       "Próximo",
		"modalNavPrev":       "Anterior",
		"modalNavClose":      "Fechar",
		"modalTOC":           "Tópicos",
		"siteTitle":          "Shin College",
		"untitled":           "Sem Título",
		"noResults":          "Nenhum resultado encontrado",
		"noTranslated":       "Nenhum conteúdo traduzido encontrado",
		"noTranslatedTopics": "Nenhum tópico traduzido",
		"noTranslatedThemes": "Nenhum tema traduzido neste volume",
		"translatedTitle":    "Ensinamentos Traduzidos",
		"loadError":          "Erro ao carregar dados",
	},
	LocaleJP: {
		"volumesTitle":       "巻を選択",
		"backToVolumes":      "← 巻一覧に戻る",
		"backToThemes":       "← テーマ一覧に戻る",
		"openAllThemes":      "すべて開く",
		"closeAllThemes":     "すべて閉じる",
		"historyTitleText":   "最近見た項目",
		"clearHistoryBtn":    "履歴を消去",
		"labelThemes":        "テーマ",
		"labelTopics":        "トピック",
		"labelDocs":          "文書",
		"loading":            "読み込み中...",
		"breadcrumbVolumes":  "巻一覧",
		"searchPlaceholder":  "文書、テーマ、巻を検索...",
		"modalNavNext":       "次へ",
		"modalNavPrev":       "前へ",
		"modalNavClose":      "閉じる",
		"modalTOC":           "目次",
		"siteTitle":          "新・カレッジ",
		"noTranslatedThemes": "翻訳されたテーマはありません",
	},
}

// Label liefert einen Oberflächentext.
func Label(locale Locale, key string) string {
	if v, ok := uiLabels[locale][key]; ok {
		return v
	}
	if v, ok := uiLabels[LocalePT][key]; ok {
		return v
	}
	return key
}

// Labels liefert den vollständigen Katalog einer Sprache inklusive Rückfallwerten.
func Labels(locale Locale) map[string]string {
	out := make(map[string]string, len(uiLabels[LocalePT]))
	for k := range uiLabels[LocalePT] {
		out[k] = Label(locale, k)
	}
	return out
}
