package utils

import (
	"math/rand"
	"strings"
)

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// GenerateCode builds a random code of the given length from charset.
func GenerateCode(length int, charset string) string {
	var sb strings.Builder
	sb.Grow(length)
	for i := 0; i < length; i++ {
		sb.WriteByte(charset[rand.Intn(len(charset))])
	}
	return sb.String()
}

// NormalizeRoomCode upper-cases a client-supplied room code.
func NormalizeRoomCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
