package orders

import (
	"math/rand"
	"strings"
)

// idAlphabet omits 0/O and 1/I so ids survive being read over the phone.
const idAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const idLength = 4

// NewOrderID returns a short human-readable order id like ORD-7KQ2.
func NewOrderID() string {
	var b strings.Builder
	b.WriteString("ORD-")
	for i := 0; i < idLength; i++ {
		b.WriteByte(idAlphabet[rand.Intn(len(idAlphabet))])
	}
	return b.String()
}
