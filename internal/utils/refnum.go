package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// Reference number prefixes. Internal movements use TXN, external payments EXT.
const (
	RefPrefixTransaction = "TXN"
	RefPrefixExternal    = "EXT"
)

const (
	refSuffixLen     = 9
	base36Alphabet   = "0123456789abcdefghijklmnopqrstuvwxyz"
	refNumberPattern = "%s_%d_%s"
)

// GenerateReferenceNumber produces a time-ordered reference like
// "TXN_1724995200123_x7k2m9qp4": unix milliseconds followed by a random
// base36 suffix. The millisecond component keeps references roughly sortable
// by issue time; the suffix makes collisions within one millisecond
// negligible. Uniqueness is still enforced by the store.
func GenerateReferenceNumber(prefix string) (string, error) {
	suffix, err := randomBase36(refSuffixLen)
	if err != nil {
		return "", fmt.Errorf("failed to generate reference suffix: %w", err)
	}
	return fmt.Sprintf(refNumberPattern, prefix, time.Now().UnixMilli(), suffix), nil
}

func randomBase36(n int) (string, error) {
	out := make([]byte, n)
	max := big.NewInt(int64(len(base36Alphabet)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = base36Alphabet[idx.Int64()]
	}
	return string(out), nil
}
