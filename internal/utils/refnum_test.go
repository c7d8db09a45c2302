package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReferenceNumberFormat(t *testing.T) {
	ref, err := GenerateReferenceNumber(RefPrefixTransaction)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^TXN_\d{13}_[0-9a-z]{9}$`), ref)

	ext, err := GenerateReferenceNumber(RefPrefixExternal)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^EXT_\d{13}_[0-9a-z]{9}$`), ext)
}

func TestGenerateReferenceNumberUniqueness(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		ref, err := GenerateReferenceNumber(RefPrefixTransaction)
		require.NoError(t, err)
		_, dup := seen[ref]
		assert.False(t, dup, "duplicate reference %s", ref)
		seen[ref] = struct{}{}
	}
}
