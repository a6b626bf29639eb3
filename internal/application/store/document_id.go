package store

import (
	"strconv"
	"sync"
	"time"
)

var (
	idMu   sync.Mutex
	lastID int64
)

// NewDocumentID returns a time-derived identifier, stringified
// milliseconds since epoch. IDs are strictly increasing so two documents
// created within the same millisecond never collide.
func NewDocumentID() string {
	idMu.Lock()
	defer idMu.Unlock()

	now := time.Now().UnixMilli()
	if now <= lastID {
		now = lastID + 1
	}
	lastID = now
	return strconv.FormatInt(now, 10)
}
