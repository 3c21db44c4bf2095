// Package files groups the file access used by the generator.
//
// Sub-packages:
//   - filesystem: filesystem abstraction with OS and in-memory implementations
//   - scanner: lists the .sql files of a migrations directory
//
// # Usage
//
//	import (
//	    "github.com/vvka-141/migembed/internal/files/filesystem"
//	    "github.com/vvka-141/migembed/internal/files/scanner"
//	)
//
//	fsProvider := filesystem.NewOSFileSystem()
//	files, err := scanner.NewScannerWithFS(fsProvider).ListSQLFiles("./migrations")
package files
