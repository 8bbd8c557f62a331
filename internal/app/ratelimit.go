package app

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// lastRunFile records the wall-clock time of the last successful generation
// so back-to-back runs do not hammer the chat API.
const lastRunFile = "last_generation"

// rateLimited reports whether a generation happened within min of now, and
// how long the caller should wait. A missing or unreadable marker never
// blocks a run.
func rateLimited(dir string, min time.Duration) (time.Duration, bool) {
	b, err := os.ReadFile(filepath.Join(dir, lastRunFile))
	if err != nil {
		return 0, false
	}
	sec, err := strconv.ParseInt(strings.TrimSpace(string(b)), 10, 64)
	if err != nil {
		return 0, false
	}
	elapsed := time.Since(time.Unix(sec, 0))
	if elapsed < min {
		return min - elapsed, true
	}
	return 0, false
}

// recordGeneration stamps the marker file. Failures are ignored: rate
// limiting is a courtesy, not a correctness requirement.
func recordGeneration(dir string) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return
	}
	_ = os.WriteFile(
		filepath.Join(dir, lastRunFile),
		[]byte(strconv.FormatInt(time.Now().Unix(), 10)),
		0o644,
	)
}
