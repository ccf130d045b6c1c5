package eligibility

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/catalogwatch/catalogwatch/internal/model"
	"gopkg.in/yaml.v3"
)

var (
	//go:embed windows.yml
	defaultDocument []byte

	// ErrInvalidWindow marks a structurally broken window entry
	ErrInvalidWindow = errors.New("invalid window")
)

type document struct {
	Windows []windowEntry `yaml:"windows"`
}

// windowEntry uses pointers so a missing key can be told apart from zero
type windowEntry struct {
	Name     *string `yaml:"name"`
	MinYears *int    `yaml:"min_years"`
	MaxYears *int    `yaml:"max_years"`
}

// DefaultDocument returns the built-in window document
func DefaultDocument() []byte {
	return bytes.Clone(defaultDocument)
}

// DefaultWindows returns the built-in windows
func DefaultWindows() []model.Window {
	windows, err := ParseWindows(bytes.NewReader(defaultDocument))
	if err != nil {
		panic(fmt.Sprintf("built-in windows: %v", err))
	}
	return windows
}

// LoadWindows reads the window document at path
func LoadWindows(path string) ([]model.Window, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open windows: %w", err)
	}
	defer func() { _ = f.Close() }()

	windows, err := ParseWindows(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return windows, nil
}

// ParseWindows decodes a window document. A document without a windows key
// yields zero windows; an entry missing name, min_years or max_years, or with
// min_years above max_years, is rejected.
func ParseWindows(r io.Reader) ([]model.Window, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return []model.Window{}, nil
		}
		return nil, fmt.Errorf("decode windows: %w", err)
	}

	windows := make([]model.Window, 0, len(doc.Windows))
	for i, entry := range doc.Windows {
		switch {
		case entry.Name == nil || *entry.Name == "":
			return nil, fmt.Errorf("%w: entry %d: missing name", ErrInvalidWindow, i)
		case entry.MinYears == nil:
			return nil, fmt.Errorf("%w: %q: missing min_years", ErrInvalidWindow, *entry.Name)
		case entry.MaxYears == nil:
			return nil, fmt.Errorf("%w: %q: missing max_years", ErrInvalidWindow, *entry.Name)
		case *entry.MinYears > *entry.MaxYears:
			return nil, fmt.Errorf("%w: %q: min_years %d exceeds max_years %d",
				ErrInvalidWindow, *entry.Name, *entry.MinYears, *entry.MaxYears)
		}

		windows = append(windows, model.Window{
			Name:     *entry.Name,
			MinYears: *entry.MinYears,
			MaxYears: *entry.MaxYears,
		})
	}

	return windows, nil
}
