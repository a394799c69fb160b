package chat

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const sessionSuffixLength = 9

// 36^9
const sessionSuffixSpace = 101559956668416

// NewSessionID returns "session-<unix millis>-<9 base36 chars>".
func NewSessionID(now time.Time) string {
	random := uuid.New()
	n := binary.BigEndian.Uint64(random[:8]) % sessionSuffixSpace
	suffix := strconv.FormatUint(n, 36)
	suffix = strings.Repeat("0", sessionSuffixLength-len(suffix)) + suffix
	return fmt.Sprintf("session-%d-%s", now.UnixMilli(), suffix)
}
