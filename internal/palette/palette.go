// Package palette loads the named color list dots are painted with.
package palette

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// CrayolaURL is the Crayola 64+ color pack the visualization is painted with.
const CrayolaURL = "https://gist.githubusercontent.com/jjdelc/1868136/raw/c734ad88bb3b5a2b27f4e91a24716024c66da421/crayola.json"

var (
	// ErrEmpty indicates a palette with no colors, i.e. not loaded yet.
	ErrEmpty = errors.New("palette: no colors loaded")

	// ErrStatus indicates the palette server answered with a non-2xx status.
	ErrStatus = errors.New("palette: unexpected http status")
)

// Color is one palette record.
type Color struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
	RGB  string `json:"rgb"`
}

// Colorful parses the hex value. Malformed hex values come back as white.
func (c Color) Colorful() colorful.Color {
	col, err := colorful.Hex(strings.ToLower(c.Hex))
	if err != nil {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return col
}

type Palette []Color

// Loader fetches a palette once.
type Loader interface {
	Load(ctx context.Context) (Palette, error)
}

// HTTPLoader fetches a JSON palette over http(s).
type HTTPLoader struct {
	URL    string
	Client *http.Client
}

func (l *HTTPLoader) Load(ctx context.Context) (Palette, error) {
	client := l.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("palette: build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("palette: fetch %s: %w", l.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrStatus, resp.Status)
	}
	return Decode(resp.Body)
}

// FileLoader reads a JSON palette from disk.
type FileLoader struct {
	Path string
}

func (l *FileLoader) Load(ctx context.Context) (Palette, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		return nil, fmt.Errorf("palette: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Static serves a fixed palette. Useful in tests and when no network is wanted.
type Static Palette

func (s Static) Load(ctx context.Context) (Palette, error) {
	if len(s) == 0 {
		return nil, ErrEmpty
	}
	return Palette(s), nil
}

// NewLoader picks a loader for src: http(s) URLs are fetched, anything else
// is read as a file path. An empty src means the Crayola pack.
func NewLoader(src string) Loader {
	if src == "" {
		src = CrayolaURL
	}
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return &HTTPLoader{URL: src}
	}
	return &FileLoader{Path: strings.TrimPrefix(src, "file://")}
}

// Decode reads an ordered JSON list of {name, hex, rgb} records.
func Decode(r io.Reader) (Palette, error) {
	var p Palette
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("palette: decode: %w", err)
	}
	if len(p) == 0 {
		return nil, ErrEmpty
	}
	return p, nil
}
