package partition

import (
	"fmt"
	"hash/fnv"
	"time"
)

// Shard is the 8 hex digit FNV-32a hash of key, used as the write-spreading
// suffix of an event partition key. The same event id always lands in the
// same partition, so a retried envelope rewrites the same rows.
func Shard(key string) string {
	return fmt.Sprintf("%08x", hash(key))
}

// EventKey returns EVENT#<yyyy-mm-dd>#<hour/6>#<shard>. The hour bucket splits
// a day into four six-hour windows.
func EventKey(eventTime time.Time, eventID string) string {
	t := eventTime.UTC()
	return fmt.Sprintf("EVENT#%s#%d#%s", t.Format(time.DateOnly), t.Hour()/6, Shard(eventID))
}

// SortKey returns SENSOR#<sensorId>#<eventTime>#<index>.
func SortKey(sensorID string, eventTime time.Time, index int) string {
	return fmt.Sprintf("SENSOR#%s#%s#%d", sensorID, eventTime.UTC().Format(time.RFC3339Nano), index)
}

func hash(key string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(key))
	return h.Sum32()
}
