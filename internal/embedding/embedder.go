package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"golang.org/x/text/unicode/norm"
)

// Embedder turns texts into fixed-dimension vectors. Implementations may
// call a remote model; one call handles a whole batch.
type Embedder interface {
	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	// Dimension returns the width of produced vectors.
	Dimension() int
	// Model returns the model identity string recorded with persisted sets.
	Model() string
}

// ErrCorruptedSet marks a persisted vector set whose files disagree with
// their metadata. Such sets must not be silently reinterpreted.
var ErrCorruptedSet = errors.New("embedding set is corrupted")

// ErrModelMismatch marks a persisted vector set produced by a different
// model than the one currently configured.
var ErrModelMismatch = errors.New("embedding set was produced by a different model")

// Fingerprint derives the content-addressed cache key for a text. The text
// is NFC-normalized first so composed and decomposed Hangul spellings of
// the same string share one entry.
func Fingerprint(text string) string {
	normalized := norm.NFC.String(text)
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:8])
}
