// Package filestoretest provides an in-memory FileStore for tests.
package filestoretest

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/docstore/filestore"
)

// MemStore is an in-memory filestore.FileStore. It counts writes so tests
// can assert on storage traffic. Safe for concurrent use.
type MemStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	puts    int
}

var _ filestore.FileStore = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{
		objects: make(map[string][]byte),
		types:   make(map[string]string),
	}
}

// Puts returns the number of Put calls performed so far.
func (m *MemStore) Puts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.puts
}

func (m *MemStore) Put(
	_ context.Context,
	key string,
	reader io.Reader,
	_ int64,
	contentType string,
) (*filestore.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	m.objects[key] = data
	m.types[key] = contentType
	m.puts++

	return &filestore.FileInfo{
		Key:         key,
		Size:        int64(len(data)),
		ContentType: contentType,
	}, nil
}

func (m *MemStore) Get(_ context.Context, key string, _ string) (*filestore.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.objects[key]
	if !ok {
		return nil, errx.New("file not found", errx.WithCode(filestore.CodeFileNotFound))
	}

	return &filestore.File{
		Content: io.NopCloser(bytes.NewReader(data)),
		Info: filestore.FileInfo{
			Key:         key,
			Size:        int64(len(data)),
			ContentType: m.types[key],
		},
	}, nil
}

func (m *MemStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *MemStore) Exists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok, nil
}
