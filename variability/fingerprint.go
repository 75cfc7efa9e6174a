package variability

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/objones25/codi/dataset"
	"github.com/objones25/codi/internal/monitor"
)

const fingerprintPrefix = "codi"

// modelCacheSize bounds the process-wide fitted-model cache. 128 fitted
// models is far beyond any realistic number of distinct calibration
// datasets in one process.
const modelCacheSize = 128

var modelCache, _ = lru.New[string, Model](modelCacheSize)

// Fingerprint returns a stable cache key for a reference matrix and
// model kind: a SHA-256 over the matrix shape and raw float bits.
// Format: prefix:kind:hash.
func Fingerprint(ref dataset.Matrix, kind ModelKind) string {
	hasher := sha256.New()
	var buf [8]byte

	binary.LittleEndian.PutUint64(buf[:], uint64(ref.Rows()))
	hasher.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(ref.Cols()))
	hasher.Write(buf[:])
	for _, row := range ref {
		for _, v := range row {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			hasher.Write(buf[:])
		}
	}

	return fmt.Sprintf("%s:%s:%s", fingerprintPrefix, kind, hex.EncodeToString(hasher.Sum(nil)))
}

// fitCached fits a model, memoizing by fingerprint so identical
// calibration data is fitted once per process. Models are immutable
// after fitting, so sharing across engines is safe.
func fitCached(ref dataset.Matrix, kind ModelKind) (Model, error) {
	if kind == "" {
		kind = KindParametric
	}
	key := Fingerprint(ref, kind)
	if m, ok := modelCache.Get(key); ok {
		monitor.ModelCacheHits.Inc()
		return m, nil
	}
	monitor.ModelCacheMisses.Inc()

	m, err := Fit(ref, kind)
	if err != nil {
		return nil, err
	}
	modelCache.Add(key, m)
	return m, nil
}
