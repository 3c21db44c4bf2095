// Package scanner discovers migration source files.
//
// The scanner lists the direct entries of a migrations directory and keeps
// the files whose extension is exactly ".sql". It does not recurse, read
// content or sort: the order is whatever the filesystem provider yields
// (os.ReadDir sorts by filename). Entries whose metadata cannot be read are
// skipped silently.
//
// The scanner works over filesystem.FileSystemProvider, so it runs the same
// against the OS filesystem and the in-memory one used in tests.
package scanner
