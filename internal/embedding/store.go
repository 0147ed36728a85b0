package embedding

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"go.uber.org/zap"
)

const (
	vectorsExt = ".vec"
	metaSuffix = ".meta.json"
	lockSuffix = ".lock"
)

// setMetadata accompanies the dense vector file of a named set. The two
// files are always written and read together.
type setMetadata struct {
	IDs   []string `json:"ids"`
	Model string   `json:"model"`
	Dim   int      `json:"dim"`
	Count int      `json:"count"`
}

// SaveEmbeddings persists a named vector set as a dense little-endian
// float32 array plus a JSON metadata record. It returns the vector file
// path.
func (c *Cache) SaveEmbeddings(ids []string, vectors [][]float32, name string) (string, error) {
	if err := validateSetName(name); err != nil {
		return "", err
	}
	if len(ids) != len(vectors) {
		return "", fmt.Errorf("ids and vectors length mismatch: %d vs %d", len(ids), len(vectors))
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("vector set %q has no entries", name)
	}

	dim := 0
	for i, vector := range vectors {
		if i == 0 {
			dim = len(vector)
		}
		if len(vector) == 0 || len(vector) != dim {
			return "", fmt.Errorf("vector %d has width %d, want %d", i, len(vector), dim)
		}
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return "", fmt.Errorf("create embeddings dir: %w", err)
	}

	lock := flock.New(c.lockPath(name))
	if err := lock.Lock(); err != nil {
		return "", fmt.Errorf("lock vector set %q: %w", name, err)
	}
	defer lock.Unlock()

	var buf bytes.Buffer
	for _, vector := range vectors {
		if err := binary.Write(&buf, binary.LittleEndian, vector); err != nil {
			return "", fmt.Errorf("encode vectors: %w", err)
		}
	}

	vecPath := c.vectorsPath(name)
	if err := os.WriteFile(vecPath, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write vector file: %w", err)
	}

	meta := setMetadata{
		IDs:   ids,
		Model: c.model,
		Dim:   dim,
		Count: len(ids),
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode metadata: %w", err)
	}
	if err := os.WriteFile(c.metaPath(name), data, 0o644); err != nil {
		return "", fmt.Errorf("write metadata file: %w", err)
	}

	c.logger.Info("saved embeddings",
		zap.String("set", name),
		zap.Int("count", len(ids)),
		zap.Int("dim", dim),
		zap.String("path", vecPath),
	)
	return vecPath, nil
}

// LoadEmbeddings reads a named vector set back. A missing set is not an
// error: it yields empty results and a warning. A set whose files disagree
// with their metadata, or that was produced by a different model, fails
// loudly.
func (c *Cache) LoadEmbeddings(name string) ([]string, [][]float32, error) {
	if err := validateSetName(name); err != nil {
		return nil, nil, err
	}

	if !c.EmbeddingsExist(name) {
		c.logger.Warn("vector set not found", zap.String("set", name), zap.String("dir", c.dir))
		return nil, nil, nil
	}

	lock := flock.New(c.lockPath(name))
	if err := lock.RLock(); err != nil {
		return nil, nil, fmt.Errorf("lock vector set %q: %w", name, err)
	}
	defer lock.Unlock()

	metaData, err := os.ReadFile(c.metaPath(name))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: reading metadata for %q: %v", ErrCorruptedSet, name, err)
	}

	var meta setMetadata
	if err := json.Unmarshal(metaData, &meta); err != nil {
		return nil, nil, fmt.Errorf("%w: parsing metadata for %q: %v", ErrCorruptedSet, name, err)
	}

	if meta.Model != c.model {
		return nil, nil, fmt.Errorf("%w: set %q recorded model %q, current model is %q",
			ErrModelMismatch, name, meta.Model, c.model)
	}
	if meta.Count != len(meta.IDs) {
		return nil, nil, fmt.Errorf("%w: set %q metadata count %d does not match %d ids",
			ErrCorruptedSet, name, meta.Count, len(meta.IDs))
	}
	if meta.Dim <= 0 {
		return nil, nil, fmt.Errorf("%w: set %q has non-positive dimension %d", ErrCorruptedSet, name, meta.Dim)
	}

	raw, err := os.ReadFile(c.vectorsPath(name))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: reading vectors for %q: %v", ErrCorruptedSet, name, err)
	}

	want := meta.Count * meta.Dim * 4
	if len(raw) != want {
		return nil, nil, fmt.Errorf("%w: set %q vector file holds %d bytes, metadata implies %d",
			ErrCorruptedSet, name, len(raw), want)
	}

	flat := make([]float32, meta.Count*meta.Dim)
	if err := binary.Read(bytes.NewReader(raw), binary.LittleEndian, flat); err != nil {
		return nil, nil, fmt.Errorf("%w: decoding vectors for %q: %v", ErrCorruptedSet, name, err)
	}

	vectors := make([][]float32, meta.Count)
	for i := range vectors {
		vectors[i] = flat[i*meta.Dim : (i+1)*meta.Dim]
	}

	c.logger.Info("loaded embeddings",
		zap.String("set", name),
		zap.Int("count", meta.Count),
		zap.Int("dim", meta.Dim),
	)
	return meta.IDs, vectors, nil
}

// EmbeddingsExist reports whether a named vector set is present on disk.
func (c *Cache) EmbeddingsExist(name string) bool {
	if validateSetName(name) != nil {
		return false
	}
	_, err := os.Stat(c.vectorsPath(name))
	return err == nil
}

func (c *Cache) vectorsPath(name string) string {
	return filepath.Join(c.dir, name+vectorsExt)
}

func (c *Cache) metaPath(name string) string {
	return filepath.Join(c.dir, name+metaSuffix)
}

func (c *Cache) lockPath(name string) string {
	return filepath.Join(c.dir, name+lockSuffix)
}

func validateSetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("vector set name is required")
	}
	if strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return fmt.Errorf("vector set name %q must not contain path separators", name)
	}
	return nil
}
