// Package sink provides the destinations export tables are written to.
//
// A table is written through a Table handle and becomes visible only after
// Commit returns. Commit on a Dir sink is durable: the rows are fsync'd
// before the file takes its final name.
package sink

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/mesh-intelligence/ynab-export/pkg/types"
)

// ErrTableClosed is returned when a committed or aborted table is used.
var ErrTableClosed = errors.New("table already closed")

// Sink opens one destination per table.
type Sink interface {
	// Reset removes every table left by a previous run.
	Reset() error
	Create(table string) (Table, error)
}

// Table is the destination of a single table's rows.
type Table interface {
	io.Writer
	// Commit persists every row written so far. After Commit returns nil the
	// table survives any later failure of the run.
	Commit() error
	// Abort discards the rows. Abort after Commit is a no-op.
	Abort() error
}

// Dir writes each table to <Path>/<table>.tsv.
type Dir struct {
	Path string
}

// NewDir returns a Dir sink rooted at path. The directory is created on the
// first Create.
func NewDir(path string) *Dir {
	return &Dir{Path: path}
}

// Reset deletes every <table>.tsv in Path. A missing directory has nothing
// to reset.
func (d *Dir) Reset() error {
	if _, err := os.Stat(d.Path); os.IsNotExist(err) {
		return nil
	}
	for _, table := range types.TableNames {
		err := os.Remove(filepath.Join(d.Path, types.TableFile(table)))
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing previous %s: %w", types.TableFile(table), err)
		}
	}
	return syncDir(d.Path)
}

// Create opens a temp file next to the table's final path.
func (d *Dir) Create(table string) (Table, error) {
	if err := os.MkdirAll(d.Path, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}
	tmp, err := os.CreateTemp(d.Path, "."+table+"-*.tmp")
	if err != nil {
		return nil, fmt.Errorf("creating temp file for %s: %w", table, err)
	}
	return &fileTable{
		path: filepath.Join(d.Path, types.TableFile(table)),
		tmp:  tmp,
		w:    bufio.NewWriter(tmp),
	}, nil
}

// fileTable follows the temp-file, fsync, rename pattern so that a table
// file on disk is always complete.
type fileTable struct {
	path   string
	tmp    *os.File
	w      *bufio.Writer
	closed bool
}

func (f *fileTable) Write(p []byte) (int, error) {
	if f.closed {
		return 0, ErrTableClosed
	}
	return f.w.Write(p)
}

func (f *fileTable) Commit() error {
	if f.closed {
		return ErrTableClosed
	}
	f.closed = true
	tmpName := f.tmp.Name()

	if err := f.w.Flush(); err != nil {
		f.tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := f.tmp.Sync(); err != nil {
		f.tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := f.tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return syncDir(filepath.Dir(f.path))
}

func (f *fileTable) Abort() error {
	if f.closed {
		return nil
	}
	f.closed = true
	f.tmp.Close()
	if err := os.Remove(f.tmp.Name()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing temp file: %w", err)
	}
	return nil
}

// syncDir makes a completed rename durable.
func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return fmt.Errorf("opening output dir: %w", err)
	}
	defer d.Close()
	if err := d.Sync(); err != nil && !errors.Is(err, os.ErrInvalid) {
		return fmt.Errorf("syncing output dir: %w", err)
	}
	return nil
}

// Memory keeps committed tables in memory.
type Memory struct {
	mu     sync.Mutex
	tables map[string][]byte
}

// NewMemory returns an empty Memory sink.
func NewMemory() *Memory {
	return &Memory{tables: make(map[string][]byte)}
}

// Reset drops every committed table.
func (m *Memory) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.tables)
	return nil
}

// Create returns a buffer that is published on Commit.
func (m *Memory) Create(table string) (Table, error) {
	return &memTable{sink: m, name: table}, nil
}

// Get returns the committed contents of table.
func (m *Memory) Get(table string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.tables[table]
	return string(b), ok
}

// Tables returns the names of all committed tables, sorted.
func (m *Memory) Tables() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.tables))
	for name := range m.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type memTable struct {
	sink   *Memory
	name   string
	buf    bytes.Buffer
	closed bool
}

func (t *memTable) Write(p []byte) (int, error) {
	if t.closed {
		return 0, ErrTableClosed
	}
	return t.buf.Write(p)
}

func (t *memTable) Commit() error {
	if t.closed {
		return ErrTableClosed
	}
	t.closed = true
	t.sink.mu.Lock()
	defer t.sink.mu.Unlock()
	t.sink.tables[t.name] = bytes.Clone(t.buf.Bytes())
	return nil
}

func (t *memTable) Abort() error {
	t.closed = true
	return nil
}
