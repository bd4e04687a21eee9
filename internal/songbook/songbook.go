// Package songbook serves the song JSON catalogue and matches spoken lines
// against lyrics.
package songbook

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

var ErrSongNotFound = errors.New("song not found")

type Line struct {
	Chords string `json:"chords"`
	Lyrics string `json:"lyrics"`
}

type Section struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Lines []Line `json:"lines"`
}

// Song is one file of the catalogue.  Order lists section ids in the order
// they are sung; a section may repeat.
type Song struct {
	Title  string    `json:"title"`
	Link   string    `json:"link,omitempty"`
	Number int       `json:"number"`
	Lyrics []Section `json:"lyrics"`
	Order  []string  `json:"song"`
}

type Summary struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Link   string `json:"link"`
}

// Catalog reads songs from a directory of <number>.json files.  Files are
// read on every call; the HTTP layer caches the list.
type Catalog struct {
	dir string
}

func NewCatalog(dir string) *Catalog { return &Catalog{dir: dir} }

// List summarises every *.json file sorted by number.
func (c *Catalog) List() ([]Summary, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, fmt.Errorf("read songs dir: %w", err)
	}
	out := []Summary{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		s, err := readSong(filepath.Join(c.dir, e.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, Summary{Number: s.Number, Title: s.Title, Link: s.Link})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

// Get loads <number>.json.
func (c *Catalog) Get(number int) (*Song, error) {
	s, err := readSong(filepath.Join(c.dir, strconv.Itoa(number)+".json"))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrSongNotFound
	}
	return s, err
}

func readSong(path string) (*Song, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Song
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return &s, nil
}
