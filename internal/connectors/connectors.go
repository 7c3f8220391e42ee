package connectors

import "context"

// Source downloads a raw game master dump.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]byte, error)
}
