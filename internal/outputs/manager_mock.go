package outputs

import (
	"context"
	"io"
)

// MOCK STORAGE

type mockStorage struct {
	putFn func(ctx context.Context, key string, size int64, ct string, r io.Reader) error
	urlFn func(key string) string
}

func (m *mockStorage) PutPublic(ctx context.Context, key string, size int64, ct string, r io.Reader) error {
	return m.putFn(ctx, key, size, ct, r)
}

func (m *mockStorage) PublicURL(key string) string {
	return m.urlFn(key)
}

// MOCK LOGGER

type logEntry struct {
	level string
	msg   string
}

type mockLogger struct {
	entries []logEntry
}

func (m *mockLogger) StdInfo(msg string) {
	m.entries = append(m.entries, logEntry{level: "info", msg: msg})
}

func (m *mockLogger) StdWarn(msg string) {
	m.entries = append(m.entries, logEntry{level: "warn", msg: msg})
}

func (m *mockLogger) StdError(msg string) {
	m.entries = append(m.entries, logEntry{level: "error", msg: msg})
}
