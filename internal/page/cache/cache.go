package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/taizguy/zamapedia/internal/page/domain"
)

// Cache stores extraction results keyed by the digest of the raw URL string.
// Get returns (nil, nil) on a miss or an expired entry. Both operations are
// best-effort from the pipeline's point of view: the caller logs and ignores
// any error.
type Cache interface {
	Get(ctx context.Context, rawURL string) (*domain.FetchResult, error)
	Set(ctx context.Context, rawURL string, result *domain.FetchResult) error
}

// Key derives the storage identifier for a URL. The raw string is hashed
// as-is: two URLs differing only in parameter order or a trailing slash are
// cached separately.
func Key(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return hex.EncodeToString(sum[:])
}
