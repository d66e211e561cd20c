package models

// LocalizedField liefert Original- und übersetzten Wert eines Feldes.
// Neben den JSON-Namen werden die Kurzformen "name", "heading" und "body" akzeptiert.
func (v Volume) LocalizedField(fieldBase string) (string, string) {
	switch fieldBase {
	case "volume", "name":
		return v.Name, v.NameLocalized
	}
	return "", ""
}

func (t Theme) LocalizedField(fieldBase string) (string, string) {
	switch fieldBase {
	case "theme", "name":
		return t.Name, t.NameLocalized
	}
	return "", ""
}

func (t Title) LocalizedField(fieldBase string) (string, string) {
	switch fieldBase {
	case "title", "name":
		return t.Name, t.NameLocalized
	}
	return "", ""
}

func (g GroupedTitle) LocalizedField(fieldBase string) (string, string) {
	switch fieldBase {
	case "title", "name":
		return g.Name, g.NameLocalized
	}
	return "", ""
}

func (p Publication) LocalizedField(fieldBase string) (string, string) {
	switch fieldBase {
	case "publication_title", "heading":
		return p.Heading, p.HeadingLocalized
	case "content", "body":
		return p.Body, p.BodyLocalized
	}
	return "", ""
}
