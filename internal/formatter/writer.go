package formatter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/mannschaft/internal/models"
	"github.com/desertthunder/mannschaft/internal/shared"
)

// Writer writes team files into Dir.
type Writer struct {
	Dir     string
	Options EncodeOptions
	Logger  *log.Logger
}

// NewWriter creates a [Writer] for dir.
func NewWriter(dir string, opts EncodeOptions, logger *log.Logger) *Writer {
	return &Writer{Dir: dir, Options: opts, Logger: logger}
}

// FileName returns the sanitized file name a team called name is written to.
func FileName(name string) string {
	return SanitizeName(strings.TrimSuffix(name, Extension)) + Extension
}

// WriteTeam encodes team and writes it to Dir as name. An existing file is
// overwritten with a warning. It returns the written path.
func (w *Writer) WriteTeam(name string, team *models.Team) (string, error) {
	file := FileName(name)
	if file == Extension {
		return "", fmt.Errorf("%w: team name %q is empty after sanitizing", shared.ErrInvalidArgument, name)
	}

	data, err := EncodeTeam(team, w.Options)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", file, err)
	}

	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	path := filepath.Join(w.Dir, file)
	if _, err := os.Stat(path); err == nil {
		w.logger().Warn("file already exists, overwriting", "path", path)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write team file: %w", err)
	}
	return path, nil
}

func (w *Writer) logger() *log.Logger {
	if w.Logger == nil {
		return log.Default()
	}
	return w.Logger
}

// SkippedFile is a team file that could not be read.
type SkippedFile struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Folder is the result of [Reader.ReadFolder].
type Folder struct {
	Dir     string
	Teams   []*models.Team
	Skipped []SkippedFile
}

// ReadFolder reads a folder with the default [Reader].
func ReadFolder(dir string) (*Folder, error) {
	return (&Reader{Charset: CharsetAuto}).ReadFolder(dir)
}

// ReadFolder reads every team file in dir, in name order. Other files are
// ignored; team files that fail to decode are skipped with a warning.
// A missing dir fails with [shared.ErrNotFound].
func (r *Reader) ReadFolder(dir string) (*Folder, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: folder %s", shared.ErrNotFound, dir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read folder %s: %w", dir, err)
	}

	folder := &Folder{Dir: dir}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != Extension {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		team, err := r.ReadTeamFile(path)
		if err != nil {
			r.logger().Warn("skipping team file", "path", path, "err", err)
			folder.Skipped = append(folder.Skipped, SkippedFile{Path: path, Reason: err.Error()})
			continue
		}
		folder.Teams = append(folder.Teams, team)
	}
	return folder, nil
}

// WriteManifest writes v as indented JSON to path.
func WriteManifest(v any, path string) error {
	data, err := shared.MarshalJSON(v, true)
	if err != nil {
		return fmt.Errorf("failed to generate manifest JSON: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest file: %w", err)
	}
	return nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", shared.ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
