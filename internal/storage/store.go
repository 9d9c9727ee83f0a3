package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/physkit/internal/calc"
	"github.com/san-kum/physkit/internal/phys"
)

const (
	metadataFile   = "metadata.json"
	quantitiesFile = "quantities.csv"
)

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
	ID         string             `json:"id"`
	Calculator string             `json:"calculator"`
	Timestamp  time.Time          `json:"timestamp"`
	Inputs     map[string]float64 `json:"inputs"`
	Notes      []string           `json:"notes,omitempty"`
}

// NewRunID returns "<calculator>_<first 8 hex of a v4 uuid>".
func NewRunID(calculator string) string {
	return fmt.Sprintf("%s_%s", calculator, uuid.NewString()[:8])
}

// Save writes result under a fresh run directory and returns its ID.
func (s *Store) Save(result *calc.Result) (string, error) {
	runID := NewRunID(result.Calculator)
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Calculator: result.Calculator,
		Timestamp:  time.Now().UTC(),
		Inputs:     result.Inputs,
		Notes:      result.Notes,
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, quantitiesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, result.Quantities); err != nil {
		return "", err
	}
	return runID, nil
}

// List returns every stored run, newest first. Directories without
// readable metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadQuantities(runID string) ([]phys.Quantity, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, quantitiesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 3

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	if len(records) < 2 {
		return []phys.Quantity{}, nil
	}

	out := make([]phys.Quantity, 0, len(records)-1)
	for _, record := range records[1:] {
		v, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("run %s: quantity %q: %w", runID, record[0], err)
		}
		out = append(out, phys.Quantity{Label: record[0], Value: v, Unit: record[2]})
	}
	return out, nil
}

// LoadResult reassembles a stored run into a calc.Result.
func (s *Store) LoadResult(runID string) (*RunMetadata, *calc.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	qs, err := s.LoadQuantities(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, &calc.Result{
		Calculator: meta.Calculator,
		Inputs:     meta.Inputs,
		Quantities: qs,
		Notes:      meta.Notes,
	}, nil
}
