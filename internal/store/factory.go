package store

import (
	"context"
	"fmt"

	"github.com/ecocart/ecocart/internal/config"
)

// Open constructs a Store by the configured kind: "memory" or "mongo".
// Mongo connection setup honors the context deadline.
func Open(ctx context.Context, cfg config.Config) (Store, error) {
	switch cfg.StoreKind {
	case "memory", "mem":
		return NewMemory(), nil
	case "mongo":
		return OpenMongo(ctx, cfg.MongoURI, cfg.MongoDB)
	default:
		return nil, fmt.Errorf("unknown store kind: %s", cfg.StoreKind)
	}
}
