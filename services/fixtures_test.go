package services

import "shin-college/models"

// testCorpus ist ein kleiner zweisprachiger Korpus für Tests.
func testCorpus() *models.Corpus {
	c := &models.Corpus{Volumes: []models.Volume{
		{
			Name: "1. Seção de Busca do Caminho",
			Themes: []models.Theme{
				{
					Name:          "1 - 信仰について",
					NameLocalized: "1 - Sobre a Fé",
					Titles: []models.Title{
						{Name: "教え1", NameLocalized: "Ensinamento 1", Publications: []models.Publication{
							{Heading: "第一", HeadingLocalized: "Primeiro", Body: "救いの道について", BodyLocalized: "Sobre o caminho da salvação"},
							{Heading: "第二", Body: "光の話"},
						}},
						{Name: "教え2", NameLocalized: "Ensinamento 2", Publications: []models.Publication{
							{Heading: "第三", Body: "信仰と光", BodyLocalized: "Fé e luz"},
						}},
						{Name: models.SeparatorTitle},
						{Name: "結び", Publications: []models.Publication{
							{Body: "終わり", BodyLocalized: "  "},
						}},
					},
				},
			},
		},
		{
			Name: "4. Outros",
			Themes: []models.Theme{
				{
					Name: "2 - 雑録",
					Titles: []models.Title{
						{Name: "断片", NameLocalized: "Fragmentos", Publications: []models.Publication{
							{Heading: "A", Body: "光と影", BodyLocalized: "Luz e sombra"},
							{Heading: "B", Body: "日々", BodyLocalized: "Dias"},
						}},
					},
				},
			},
		},
	}}
	c.AssignIndexes()
	return c
}
