package internal

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"
)

// Version is the vocabook release version.
const Version = "1.0.0"

// GenerateEntryID creates a unique ID for a vocabulary entry based on
// timestamp and the captured word text.
// Format: epochMillis_md5(word)[:8]
func GenerateEntryID(word string) string {
	now := time.Now()
	epochMillis := now.UnixNano() / 1000000

	hash := md5.Sum([]byte(word))
	hashStr := hex.EncodeToString(hash[:])[:8]

	return fmt.Sprintf("%d_%s", epochMillis, hashStr)
}
