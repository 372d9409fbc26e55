package bookmarks

import (
	"strconv"
	"strings"
	"time"
)

// WebKitEpochOffset is the number of seconds between the WebKit epoch
// (1601-01-01 UTC), used by Chrome, and the Unix epoch.
const WebKitEpochOffset = 11644473600

// maxMicros bounds timestamps to what time.UnixMicro represents sensibly
// (year 9999).
const maxMicros = 253402300799 * 1_000_000

// FromWebKit converts Chrome's microseconds-since-1601 to UTC. Malformed
// values and values before the Unix epoch yield nil.
func FromWebKit(s string) *time.Time {
	micros, ok := parseMicros(s)
	if !ok {
		return nil
	}
	return fromUnixMicros(micros - WebKitEpochOffset*1_000_000)
}

// FromPRTime converts Firefox's microseconds-since-1970 to UTC.
// Non-positive values yield nil.
func FromPRTime(micros int64) *time.Time {
	return fromUnixMicros(micros)
}

// FromUnixSeconds converts an HTML export ADD_DATE attribute to UTC.
func FromUnixSeconds(s string) *time.Time {
	secs, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || secs <= 0 || secs > maxMicros/1_000_000 {
		return nil
	}
	t := time.Unix(secs, 0).UTC()
	return &t
}

func parseMicros(s string) (int64, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func fromUnixMicros(micros int64) *time.Time {
	if micros <= 0 || micros > maxMicros {
		return nil
	}
	t := time.UnixMicro(micros).UTC()
	return &t
}
