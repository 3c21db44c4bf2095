// Package checksum provides content hashing for the manifest embedded in
// generated migration files.
//
// The staleness detector compares the recorded checksum of every source file
// with its current content, so edits that keep the file count and leave an
// older modification time (for example after a git checkout) still trigger
// regeneration.
//
// # Example Usage
//
//	calculator := checksum.New()
//	sum := calculator.Sum(fileContent)
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
