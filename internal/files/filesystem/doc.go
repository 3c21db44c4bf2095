// Package filesystem provides the filesystem abstraction used by the scanner,
// parser, staleness detector and artifact writer.
//
// Key interfaces:
//   - FileSystemProvider: directory listing, file reads, stat and writes
//   - FileInfo: file metadata, an alias of fs.FileInfo
//
// Implementations:
//   - OSFileSystem: production implementation; WriteFile is atomic (temp file + rename)
//   - MemoryFileSystem: in-memory implementation for testing, with injectable
//     failures and modification times
package filesystem
