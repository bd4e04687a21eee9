package utils

import (
	"crypto/rand"
	"math/big"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// RandomBase36 returns n lowercase base36 characters from crypto/rand.
func RandomBase36(n int) (string, error) {
	radix := big.NewInt(int64(len(base36)))
	buf := make([]byte, n)
	for i := range buf {
		k, err := rand.Int(rand.Reader, radix)
		if err != nil {
			return "", err
		}
		buf[i] = base36[k.Int64()]
	}
	return string(buf), nil
}
