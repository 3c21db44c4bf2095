package services

import (
	"fmt"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/vvka-141/migembed/pkg/migembed"
)

// mockFileScanner mocks directory listing
type mockFileScanner struct {
	mock.Mock
}

func (m *mockFileScanner) ListSQLFiles(dir string) ([]migembed.SourceFile, error) {
	args := m.Called(dir)
	files, _ := args.Get(0).([]migembed.SourceFile)
	return files, args.Error(1)
}

type recordingLogger struct {
	mu      sync.Mutex
	infos   []string
	warns   []string
	errors  []string
	verbose []string
}

func (l *recordingLogger) record(dst *[]string, format string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*dst = append(*dst, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Verbose(format string, args ...interface{}) {
	l.record(&l.verbose, format, args)
}

func (l *recordingLogger) Info(format string, args ...interface{}) {
	l.record(&l.infos, format, args)
}

func (l *recordingLogger) Warn(format string, args ...interface{}) {
	l.record(&l.warns, format, args)
}

func (l *recordingLogger) Error(format string, args ...interface{}) {
	l.record(&l.errors, format, args)
}
