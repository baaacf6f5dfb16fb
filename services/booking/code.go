package booking

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	// codePrefix is the fixed, human-recognizable booking code prefix.
	codePrefix = "Sty"
	// codeAlphabet is uppercase base-36: unambiguous to read out over a phone.
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 4
)

// GenerateCode produces a short shareable booking code such as "StyA4F9".
// The random space is small on purpose (codes are meant to be read aloud), so
// uniqueness is not guaranteed here: the reservation transaction checks for
// collisions and regenerates.
func GenerateCode() (string, error) {
	max := big.NewInt(int64(len(codeAlphabet)))
	buf := make([]byte, codeLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate booking code: %w", err)
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return codePrefix + string(buf), nil
}
