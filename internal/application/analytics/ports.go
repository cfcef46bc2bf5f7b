package analytics

import (
	"context"
	"time"
)

// Cache puerto de caché de lecturas del dashboard (implementado por Redis).
// Get devuelve false sin error cuando la clave no existe.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}
