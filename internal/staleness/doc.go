// Package staleness decides whether the generated migrations file must be
// regenerated.
//
// The file is stale when it is missing, when the number of .sql files differs
// from the number of entries it holds, when any .sql file is newer than it,
// or when its embedded manifest disagrees with the current file names or
// checksums. A migrations directory that cannot be read is treated as stale
// and reported at warn level.
package staleness
