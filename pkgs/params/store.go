package params

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// Extension is the file name suffix of persisted parameter files
const Extension = ".par"

// EnvDir overrides the default store directory
const EnvDir = "CLIARG_PARAMS_DIR"

// Store reads and writes persisted parameter files in one directory
type Store struct {
	Dir string

	// Editor session I/O; nil means the process's standard streams
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	now func() time.Time
}

// NewStore returns a store rooted at dir
func NewStore(dir string) *Store {
	return &Store{Dir: dir, now: time.Now}
}

// DefaultDir is $CLIARG_PARAMS_DIR, or ~/.params/cliarg
func DefaultDir() (string, error) {
	if dir := os.Getenv(EnvDir); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot locate parameter directory: %w", err)
	}
	return filepath.Join(home, ".params", "cliarg"), nil
}

// identityReplacer keeps an identity to a single path element
var identityReplacer = strings.NewReplacer("/", "_", "\\", "_", ":", "_")

// Path returns the parameter file for a function identity
func (s *Store) Path(identity string) string {
	return filepath.Join(s.Dir, identityReplacer.Replace(identity)+Extension)
}

// Load reads the parameter file for identity. A missing file is not an
// error: it yields an empty File.
func (s *Store) Load(identity string) (*File, error) {
	path := s.Path(identity)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &File{Function: identity, Arguments: map[string]Entry{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if f.Arguments == nil {
		f.Arguments = map[string]Entry{}
	}
	for name, entry := range f.Arguments {
		if entry.Empty() {
			delete(f.Arguments, name)
		}
	}
	if f.Function == "" {
		f.Function = identity
	}
	return &f, nil
}

// Save writes args as the parameters last used by identity, replacing the
// previous file.
func (s *Store) Save(identity, fingerprint string, args map[string]Entry) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", s.Dir, err)
	}

	now := time.Now
	if s.now != nil {
		now = s.now
	}
	f := File{
		Function:    identity,
		Fingerprint: fingerprint,
		SavedAt:     now().UTC().Truncate(time.Second),
		Arguments:   args,
	}
	if f.Arguments == nil {
		f.Arguments = map[string]Entry{}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&f); err != nil {
		return fmt.Errorf("failed to encode parameters: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode parameters: %w", err)
	}

	path := s.Path(identity)
	tmp, err := os.CreateTemp(s.Dir, filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Edit opens the parameter file of identity in editor and waits for it to
// exit. It reports whether the file was saved or changed. When no file exists yet there
// is nothing to edit and Edit returns false.
func (s *Store) Edit(ctx context.Context, identity, editor string) (bool, error) {
	path := s.Path(identity)

	before, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	argv := strings.Fields(editor)
	if len(argv) == 0 {
		return false, fmt.Errorf("no editor configured: set EDITOR")
	}

	watch, err := watchFile(path)
	if err != nil {
		return false, err
	}
	defer watch.Close()

	cmd := exec.CommandContext(ctx, argv[0], append(argv[1:], path)...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if s.Stdin != nil {
		cmd.Stdin = s.Stdin
	}
	if s.Stdout != nil {
		cmd.Stdout = s.Stdout
	}
	if s.Stderr != nil {
		cmd.Stderr = s.Stderr
	}
	if err := cmd.Run(); err != nil {
		return false, fmt.Errorf("editor %q failed: %w", argv[0], err)
	}

	touched := watch.Touched()

	after, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read %s after editing: %w", path, err)
	}
	return touched || !bytes.Equal(before, after), nil
}

// fileWatch records writes to one file. Editors often save by renaming a
// temp file over the original, so the parent directory is watched.
type fileWatch struct {
	watcher *fsnotify.Watcher
	name    string
	events  chan struct{}
	done    chan struct{}
}

func watchFile(path string) (*fileWatch, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	w := &fileWatch{
		watcher: watcher,
		name:    filepath.Clean(path),
		events:  make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *fileWatch) loop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.name {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				select {
				case w.events <- struct{}{}:
				default:
				}
			}
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// Touched reports whether a write was observed, allowing a short grace
// period for events still in flight.
func (w *fileWatch) Touched() bool {
	select {
	case <-w.events:
		return true
	case <-time.After(50 * time.Millisecond):
		return false
	}
}

func (w *fileWatch) Close() {
	_ = w.watcher.Close()
	<-w.done
}
