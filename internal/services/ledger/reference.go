package ledger

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
)

const referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewReference mints an unguessable transaction reference: a type prefix,
// the last 8 digits of the unix-millisecond clock, and 5 crypto-random
// characters. The unique index on the column catches the astronomically
// unlikely collision.
func NewReference(prefix string) string {
	millis := fmt.Sprintf("%d", time.Now().UnixMilli())
	if len(millis) > 8 {
		millis = millis[len(millis)-8:]
	}

	var sb strings.Builder
	for i := 0; i < 5; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(referenceAlphabet))))
		if err != nil {
			// crypto/rand failing means the process is in serious trouble;
			// fall back to a clock-derived index rather than panic.
			n = big.NewInt(time.Now().UnixNano() % int64(len(referenceAlphabet)))
		}
		sb.WriteByte(referenceAlphabet[n.Int64()])
	}
	return prefix + millis + sb.String()
}
