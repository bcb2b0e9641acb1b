package registrations

import (
	"crypto/rand"
	"fmt"
	"io"
	"time"
)

// IDPrefix marks registration ids as such, e.g. reg_1710496800000k3v9x2m4q.
const IDPrefix = "reg_"

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

const idSuffixLen = 9

// NewID returns a unique, prefixed, opaque registration id: the prefix, the
// current unix milliseconds, and a random base36 suffix. Uniqueness for
// business purposes is carried by the email, so the id only has to be
// collision-resistant and unguessable, not sequential.
func NewID() (string, error) {
	buf := make([]byte, idSuffixLen)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	suffix := make([]byte, idSuffixLen)
	for i, b := range buf {
		suffix[i] = idAlphabet[int(b)%len(idAlphabet)]
	}
	return fmt.Sprintf("%s%d%s", IDPrefix, time.Now().UnixMilli(), suffix), nil
}
