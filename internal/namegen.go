package internal

import (
	"fmt"
	"time"
)

// BaseName formats a resolved date as the canonical filename stem.
func BaseName(d time.Time) string {
	return d.Format("2006-01-02")
}

// GenerateFilename produces the collision-unaware target name for a
// date: canonical stem plus the original extension, extension case
// preserved verbatim. Pure function.
func GenerateFilename(d time.Time, extension string) string {
	return BaseName(d) + extension
}

// CollisionLedger tracks, per base-name key, how many target names
// have already been issued within the current batch. Created fresh
// per batch run and discarded afterwards; it is the only mutable
// state in the core.
type CollisionLedger struct {
	counts map[string]int
}

func NewCollisionLedger() *CollisionLedger {
	return &CollisionLedger{counts: make(map[string]int)}
}

// Assign returns a batch-unique target name for the given date and
// extension. The first assignment for a date gets the bare base name;
// later ones get a two-digit suffix: 2024-01-15.jpg, 2024-01-15-01.jpg,
// 2024-01-15-02.jpg. Callers must assign in a stable order -- the
// order decides which file gets the bare name.
func (l *CollisionLedger) Assign(d time.Time, extension string) string {
	key := BaseName(d)
	count := l.counts[key]
	l.counts[key] = count + 1

	if count == 0 {
		return key + extension
	}
	return fmt.Sprintf("%s-%02d%s", key, count, extension)
}

// Count reports how many names have been issued for a base-name key.
func (l *CollisionLedger) Count(key string) int {
	return l.counts[key]
}
