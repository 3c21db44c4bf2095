package migembed

import (
	"sort"
)

// MigrationKind is the direction a migration is applied in.
type MigrationKind int

const (
	// MigrationKindUp is a forward migration.
	MigrationKindUp MigrationKind = iota
	// MigrationKindDown is a reverse migration. The generator never emits it;
	// filenames carry no direction.
	MigrationKindDown
)

// String returns "up" or "down".
func (k MigrationKind) String() string {
	switch k {
	case MigrationKindUp:
		return "up"
	case MigrationKindDown:
		return "down"
	default:
		return "unknown"
	}
}

// Migration is one versioned unit of schema change.
// Generated artifacts return a slice of these from their Migrations function.
type Migration struct {
	// Version is the integer prefix of the source filename. Migrations apply
	// in ascending version order.
	Version int64

	// Description is the filename remainder after the first "-", without ".sql".
	Description string

	// SQL is the full text of the source file.
	SQL string

	// Kind is the migration direction.
	Kind MigrationKind
}

// DuplicateVersions returns every version that appears more than once,
// in ascending order.
func DuplicateVersions(migrations []Migration) []int64 {
	seen := make(map[int64]int, len(migrations))
	for _, m := range migrations {
		seen[m.Version]++
	}

	var dups []int64
	for v, n := range seen {
		if n > 1 {
			dups = append(dups, v)
		}
	}
	sort.Slice(dups, func(i, j int) bool { return dups[i] < dups[j] })
	return dups
}
