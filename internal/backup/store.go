package backup

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"hoi4save/internal/config"
	"hoi4save/pkg/savefile"
)

const timestampLayout = "20060102_150405"

var ErrInvalidName = errors.New("invalid backup name")

// Options configures a Store. Zero values select the defaults.
type Options struct {
	Ext    string
	Codec  Codec
	Logger *slog.Logger
	Now    func() time.Time
}

// Entry is one backup next to the save.
type Entry struct {
	Name    string
	Path    string
	ModTime time.Time

	// Label is the decoded "<player> <date>", or Name when the backup
	// could not be decoded. DecodeErr holds the reason.
	Label     string
	Summary   savefile.Summary
	DecodeErr error
}

// Store keeps timestamped copies of a save in the save's directory.
type Store struct {
	savePath string
	dir      string
	base     string
	ext      string
	codec    Codec
	logger   *slog.Logger
	now      func() time.Time
}

func NewStore(savePath string, opts Options) *Store {
	s := &Store{
		savePath: savePath,
		dir:      filepath.Dir(savePath),
		base:     strings.TrimSuffix(filepath.Base(savePath), filepath.Ext(savePath)),
		ext:      opts.Ext,
		codec:    opts.Codec,
		logger:   opts.Logger,
		now:      opts.Now,
	}
	if s.ext == "" {
		s.ext = config.DefaultBackupExt
	}
	if s.codec == "" {
		s.codec = CodecNone
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// SavePath is the file the store backs up.
func (s *Store) SavePath() string { return s.savePath }

// Create copies the save into a new backup and returns it.
func (s *Store) Create() (Entry, error) {
	data, err := os.ReadFile(s.savePath)
	if err != nil {
		return Entry{}, fmt.Errorf("read save: %w", err)
	}
	info, err := os.Stat(s.savePath)
	if err != nil {
		return Entry{}, fmt.Errorf("stat save: %w", err)
	}

	name := s.newName()
	path := filepath.Join(s.dir, name)
	if err := s.writeAtomic(path, bytes.NewReader(data), s.codec); err != nil {
		return Entry{}, err
	}
	if err := os.Chtimes(path, info.ModTime(), info.ModTime()); err != nil {
		return Entry{}, fmt.Errorf("set backup times %s: %w", path, err)
	}

	e := Entry{Name: name, Path: path, ModTime: info.ModTime()}
	e.setSummary(savefile.Decode(data))
	s.logger.Info("backup created", "name", name, "label", e.Label, "codec", string(s.codec))
	if e.DecodeErr != nil {
		s.logger.Warn("backup not decodable", "name", name, "error", e.DecodeErr)
	}
	return e, nil
}

func (s *Store) newName() string {
	ts := s.now().Format(timestampLayout)
	suffix := s.ext + s.codec.Suffix()
	name := s.base + "_" + ts + suffix
	if _, err := os.Lstat(filepath.Join(s.dir, name)); err == nil {
		name = s.base + "_" + ts + "_" + ulid.Make().String() + suffix
	}
	return name
}

// writeAtomic writes r through codec into a temporary file and renames
// it onto path.
func (s *Store) writeAtomic(path string, r io.Reader, codec Codec) (err error) {
	tmp, err := os.CreateTemp(s.dir, ".hoi4save-*")
	if err != nil {
		return fmt.Errorf("create temp in %s: %w", s.dir, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	w, err := codec.newWriter(tmp)
	if err != nil {
		return err
	}
	if _, err = io.Copy(w, r); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}

func (e *Entry) setSummary(sum savefile.Summary, err error) {
	if err != nil {
		e.Label, e.DecodeErr = e.Name, err
		return
	}
	e.Summary, e.Label = sum, sum.Label()
}

// isBackup reports whether name is one of this store's backups.
func (s *Store) isBackup(name string) bool {
	if !strings.HasPrefix(name, s.base) {
		return false
	}
	name = strings.TrimSuffix(name, codecForName(name).Suffix())
	return strings.HasSuffix(name, s.ext)
}

// List returns the backups in name order, oldest first. Each backup is
// decoded on its own; one that fails keeps its file name as label.
// Backups whose label repeats an earlier one are left out.
func (s *Store) List() ([]Entry, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list backups %s: %w", s.dir, err)
	}

	var names []string
	for _, de := range dirEntries {
		if de.Type().IsRegular() && s.isBackup(de.Name()) {
			names = append(names, de.Name())
		}
	}
	sort.Strings(names)

	seen := make(map[string]bool, len(names))
	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		e := Entry{Name: name, Path: filepath.Join(s.dir, name)}
		if info, err := os.Stat(e.Path); err == nil {
			e.ModTime = info.ModTime()
		}
		e.setSummary(s.Summary(name))
		if e.DecodeErr != nil {
			s.logger.Debug("label falls back to file name", "name", name, "error", e.DecodeErr)
		}
		if seen[e.Label] {
			continue
		}
		seen[e.Label] = true
		entries = append(entries, e)
	}
	return entries, nil
}

// Open returns the decompressed content of the backup name.
func (s *Store) Open(name string) (io.ReadCloser, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		return nil, err
	}
	r, err := codecForName(name).newReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &readCloser{Reader: r, closers: []io.Closer{r, f}}, nil
}

// Summary decodes the backup name.
func (s *Store) Summary(name string) (savefile.Summary, error) {
	rc, err := s.Open(name)
	if err != nil {
		return savefile.Summary{}, err
	}
	defer rc.Close()
	return savefile.DecodeReader(rc)
}

// Restore replaces the save with the backup name and returns the
// modification time of the restored file. The backup's own
// modification time is carried over.
func (s *Store) Restore(name string) (time.Time, error) {
	rc, err := s.Open(name)
	if err != nil {
		return time.Time{}, fmt.Errorf("open backup: %w", err)
	}
	defer rc.Close()

	info, err := os.Stat(filepath.Join(s.dir, name))
	if err != nil {
		return time.Time{}, fmt.Errorf("stat backup: %w", err)
	}
	if err := s.writeAtomic(s.savePath, rc, CodecNone); err != nil {
		return time.Time{}, err
	}
	if err := os.Chtimes(s.savePath, info.ModTime(), info.ModTime()); err != nil {
		return time.Time{}, fmt.Errorf("set save times: %w", err)
	}

	restored, err := os.Stat(s.savePath)
	if err != nil {
		return time.Time{}, fmt.Errorf("stat save: %w", err)
	}
	s.logger.Info("backup restored", "name", name, "save", s.savePath)
	return restored.ModTime(), nil
}

func checkName(name string) error {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r *readCloser) Close() error {
	var errs []error
	for _, c := range r.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
