// utils/helpers.go
package utils

import (
	"crypto/rand"
	"math/big"
	"time"

	"github.com/gin-gonic/gin"
)

// RespondWithError writes a JSON error body with the given status
func RespondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

const randomAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateRandomString returns n characters from an unambiguous alphabet
func GenerateRandomString(n int) string {
	out := make([]byte, n)
	max := big.NewInt(int64(len(randomAlphabet)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("failed to read random bytes")
		}
		out[i] = randomAlphabet[idx.Int64()]
	}
	return string(out)
}

// GenerateInvoiceNumber builds a display invoice number like
// INV-20250115-7XK2QD. Not unique by construction; display-only.
func GenerateInvoiceNumber(at time.Time) string {
	return "INV-" + at.Format("20060102") + "-" + GenerateRandomString(6)
}
