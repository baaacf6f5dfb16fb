package booking

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCodeFormat(t *testing.T) {
	format := regexp.MustCompile(`^Sty[A-Z0-9]{4}$`)

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		assert.Regexp(t, format, code)
		seen[code] = true
	}

	// The space is 36^4; two hundred draws landing on one value would mean
	// the generator is broken, not unlucky.
	assert.Greater(t, len(seen), 1)
}
