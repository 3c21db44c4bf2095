package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

type memoryFile struct {
	content []byte
	info    *memoryFileInfo
}

// memoryDirEntry implements fs.DirEntry; Info fails when a stat error was injected.
type memoryDirEntry struct {
	info    *memoryFileInfo
	statErr error
}

func (e *memoryDirEntry) Name() string      { return e.info.name }
func (e *memoryDirEntry) IsDir() bool       { return e.info.isDir }
func (e *memoryDirEntry) Type() fs.FileMode { return e.info.mode.Type() }

func (e *memoryDirEntry) Info() (fs.FileInfo, error) {
	if e.statErr != nil {
		return nil, e.statErr
	}
	return e.info, nil
}

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Paths use forward slashes; relative paths resolve against the root.
// Safe for concurrent use.
type MemoryFileSystem struct {
	mu    sync.RWMutex
	files map[string]*memoryFile
	root  string

	// Now supplies modification times for WriteFile. Defaults to time.Now.
	Now func() time.Time

	readErrs    map[string]error
	statErrs    map[string]error
	readDirErrs map[string]error
	writeErrs   map[string]error
}

// NewMemoryFileSystem creates a new in-memory filesystem with an empty root directory.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))

	mfs := &MemoryFileSystem{
		files:       make(map[string]*memoryFile),
		root:        root,
		Now:         time.Now,
		readErrs:    make(map[string]error),
		statErrs:    make(map[string]error),
		readDirErrs: make(map[string]error),
		writeErrs:   make(map[string]error),
	}
	mfs.addDir(root)
	return mfs
}

// AddFile adds a file to the in-memory filesystem
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	mfs.AddFileWithTime(filePath, content, mfs.Now())
}

// AddFileWithTime adds a file with a specific modification time
func (mfs *MemoryFileSystem) AddFileWithTime(filePath string, content string, modTime time.Time) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.put(mfs.resolve(filePath), []byte(content), 0o644, modTime)
}

// AddDir adds an empty directory.
func (mfs *MemoryFileSystem) AddDir(dirPath string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.addDir(mfs.resolve(dirPath))
}

// Remove deletes a file or an empty directory entry. Missing paths are ignored.
func (mfs *MemoryFileSystem) Remove(filePath string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	delete(mfs.files, mfs.resolve(filePath))
}

// Chtimes changes the modification time of an existing entry.
func (mfs *MemoryFileSystem) Chtimes(filePath string, modTime time.Time) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	abs := mfs.resolve(filePath)
	f, ok := mfs.files[abs]
	if !ok {
		return &fs.PathError{Op: "chtimes", Path: abs, Err: fs.ErrNotExist}
	}
	f.info.modTime = modTime
	return nil
}

// SetReadError makes ReadFile fail for the given path.
func (mfs *MemoryFileSystem) SetReadError(filePath string, err error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.readErrs[mfs.resolve(filePath)] = err
}

// SetStatError makes Stat and DirEntry.Info fail for the given path.
func (mfs *MemoryFileSystem) SetStatError(filePath string, err error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.statErrs[mfs.resolve(filePath)] = err
}

// SetReadDirError makes ReadDir fail for the given directory.
func (mfs *MemoryFileSystem) SetReadDirError(dirPath string, err error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.readDirErrs[mfs.resolve(dirPath)] = err
}

// SetWriteError makes WriteFile fail for the given path without touching it.
func (mfs *MemoryFileSystem) SetWriteError(filePath string, err error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.writeErrs[mfs.resolve(filePath)] = err
}

// ReadDir implements FileSystemProvider.ReadDir. Entries are sorted by name.
func (mfs *MemoryFileSystem) ReadDir(dirPath string) ([]DirEntry, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	abs := mfs.resolve(dirPath)
	if err := mfs.readDirErrs[abs]; err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	dir, ok := mfs.files[abs]
	if !ok {
		return nil, fmt.Errorf("failed to read directory: %w", &fs.PathError{Op: "readdir", Path: abs, Err: fs.ErrNotExist})
	}
	if !dir.info.isDir {
		return nil, fmt.Errorf("failed to read directory: path is not a directory: %s", abs)
	}

	var entries []DirEntry
	for p, f := range mfs.files {
		if p == abs || path.Dir(p) != abs {
			continue
		}
		entries = append(entries, &memoryDirEntry{info: f.info, statErr: mfs.statErrs[p]})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	return entries, nil
}

// ReadFile implements FileSystemProvider.ReadFile
func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	abs := mfs.resolve(filePath)
	if err := mfs.readErrs[abs]; err != nil {
		return nil, &fs.PathError{Op: "read", Path: abs, Err: err}
	}

	f, ok := mfs.files[abs]
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: abs, Err: fs.ErrNotExist}
	}
	if f.info.isDir {
		return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	out := make([]byte, len(f.content))
	copy(out, f.content)
	return out, nil
}

// Stat implements FileSystemProvider.Stat
func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	abs := mfs.resolve(statPath)
	if err := mfs.statErrs[abs]; err != nil {
		return nil, &fs.PathError{Op: "stat", Path: abs, Err: err}
	}

	f, ok := mfs.files[abs]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: abs, Err: fs.ErrNotExist}
	}
	return f.info, nil
}

// WriteFile implements FileSystemProvider.WriteFile. The modification time comes from Now.
func (mfs *MemoryFileSystem) WriteFile(filePath string, data []byte, perm fs.FileMode) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	abs := mfs.resolve(filePath)
	if err := mfs.writeErrs[abs]; err != nil {
		return &fs.PathError{Op: "write", Path: abs, Err: err}
	}
	if f, ok := mfs.files[abs]; ok && f.info.isDir {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	content := make([]byte, len(data))
	copy(content, data)
	mfs.put(abs, content, perm, mfs.Now())
	return nil
}

func (mfs *MemoryFileSystem) put(abs string, content []byte, perm fs.FileMode, modTime time.Time) {
	mfs.files[abs] = &memoryFile{
		content: content,
		info: &memoryFileInfo{
			name:    path.Base(abs),
			size:    int64(len(content)),
			mode:    perm,
			modTime: modTime,
		},
	}
	mfs.addDir(path.Dir(abs))
}

// addDir creates directory entries for dir and all of its parents.
func (mfs *MemoryFileSystem) addDir(dir string) {
	for {
		if _, exists := mfs.files[dir]; exists {
			return
		}
		mfs.files[dir] = &memoryFile{
			info: &memoryFileInfo{
				name:    path.Base(dir),
				mode:    0o755 | fs.ModeDir,
				modTime: time.Time{},
				isDir:   true,
			},
		}
		parent := path.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

// resolve converts p to a clean absolute virtual path.
func (mfs *MemoryFileSystem) resolve(p string) string {
	p = filepath.ToSlash(p)
	if p == "" || p == "." {
		return mfs.root
	}
	if !strings.HasPrefix(p, "/") {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

// Verify MemoryFileSystem implements the interface at compile time
var _ FileSystemProvider = (*MemoryFileSystem)(nil)
