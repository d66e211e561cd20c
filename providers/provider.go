package providers

import "context"

// Source ist das Interface, das jede Korpus-Quelle (Datei, HTTP, S3) implementieren muss.
type Source interface {
	// Fetch liefert die rohen JSON-Bytes des Korpus.
	Fetch(ctx context.Context) ([]byte, error)

	// Name gibt den eindeutigen Namen der Quelle zurück (z.B. "file").
	Name() string
}
