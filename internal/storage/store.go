// Package storage persists assembled designs as run directories.
//
// Each run lives in <baseDir>/<id>/ and holds metadata.json (the design
// document and its diagnostics), export.json (the manufacturing export) and
// stations.csv (one line per row stream).
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/san-kum/turbodesigner/internal/config"
	"github.com/san-kum/turbodesigner/internal/turbo"
)

const (
	metadataFile = "metadata.json"
	exportFile   = "export.json"
	stationsFile = "stations.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	EtaPoly   float64            `json:"eta_poly"`
	Stages    int                `json:"stages"`
	Metrics   map[string]float64 `json:"metrics"`
	Design    *config.Design     `json:"design"`
}

// Save writes a new run for m under a fresh id and returns the id.
func (s *Store) Save(name string, m *turbo.Machine, metrics map[string]float64) (string, error) {
	export, err := m.Export()
	if err != nil {
		return "", err
	}

	runID := uuid.NewString()
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Name:      name,
		Timestamp: time.Now().UTC(),
		EtaPoly:   m.EtaPoly(),
		Stages:    len(m.Stages()),
		Metrics:   metrics,
		Design:    m.Design(),
	}
	if err := writeFile(filepath.Join(runDir, metadataFile), func(f *os.File) error { return WriteJSON(f, meta) }); err != nil {
		return "", err
	}
	if err := writeFile(filepath.Join(runDir, exportFile), func(f *os.File) error { return WriteJSON(f, export) }); err != nil {
		return "", err
	}
	if err := writeFile(filepath.Join(runDir, stationsFile), func(f *os.File) error { return WriteStationsCSV(f, m) }); err != nil {
		return "", err
	}

	log.WithFields(log.Fields{"id": runID, "name": name, "dir": runDir}).Info("run saved")
	return runID, nil
}

func writeFile(path string, fn func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return f.Close()
}

// List returns every readable run, newest first. Directories without a
// valid metadata.json are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			log.WithFields(log.Fields{"dir": entry.Name(), "error": err}).Debug("skipping run")
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%s: %w", runID, err)
	}
	return &meta, nil
}

// LoadExport reads the manufacturing export of a run.
func (s *Store) LoadExport(runID string) (*turbo.Export, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, exportFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var ex turbo.Export
	if err := json.Unmarshal(data, &ex); err != nil {
		return nil, fmt.Errorf("%s: %w", runID, err)
	}
	return &ex, nil
}

// LoadMachine reassembles the machine from the stored design document.
func (s *Store) LoadMachine(runID string) (*turbo.Machine, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	if meta.Design == nil {
		return nil, fmt.Errorf("%s: no design stored", runID)
	}
	return turbo.New(meta.Design)
}

func (s *Store) LoadStations(runID string) ([]StationRecord, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, stationsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer f.Close()
	return ReadStationsCSV(f)
}
