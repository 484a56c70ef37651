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

	"github.com/san-kum/grapple/internal/dynamo"
	"github.com/san-kum/grapple/internal/environment"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
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
	Name       string             `json:"name"`
	Timestamp  time.Time          `json:"timestamp"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Points     int                `json:"points"`
	Distance   float64            `json:"distance"`
	Iterations int                `json:"iterations"`
	Gravity    dynamo.Vec2        `json:"gravity"`
	Ticks      int                `json:"ticks"`
	Metrics    map[string]float64 `json:"metrics"`
	World      environment.Spec   `json:"world"`
}

// Save writes the run's metadata and every frame. meta.ID and
// meta.Timestamp are filled in; the new run ID is returned.
func (s *Store) Save(meta RunMetadata, result *dynamo.Result) (string, error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", meta.Name, now.UnixNano())
	meta.Timestamp = now
	meta.Ticks = result.TicksTaken
	meta.Metrics = result.Metrics

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
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

	csvFile, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)

	header := []string{"tick", "time", "rope_length", "contacts"}
	for i := 0; i < meta.Points; i++ {
		header = append(header, fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, f := range result.Frames {
		row := []string{
			strconv.Itoa(f.Tick),
			strconv.FormatFloat(f.Time, 'f', 6, 64),
			strconv.FormatFloat(f.RopeLength, 'f', 6, 64),
			strconv.Itoa(f.Contacts),
		}
		for _, p := range f.Points {
			row = append(row, strconv.FormatFloat(p.X, 'f', 6, 64), strconv.FormatFloat(p.Y, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// List returns all readable runs, oldest first.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadFrames reads back the recorded frames. Rows without coordinates are
// inactive frames and come back with no points.
func (s *Store) LoadFrames(runID string) ([]dynamo.Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: %s", dynamo.ErrEmptyRun, runID)
	}

	frames := make([]dynamo.Frame, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 4 {
			continue
		}
		f, err := parseFrame(record)
		if err != nil {
			return nil, fmt.Errorf("run %s: %w", runID, err)
		}
		frames = append(frames, f)
	}

	return frames, nil
}

func parseFrame(record []string) (dynamo.Frame, error) {
	var f dynamo.Frame
	var err error

	if f.Tick, err = strconv.Atoi(record[0]); err != nil {
		return f, err
	}
	if f.Time, err = strconv.ParseFloat(record[1], 64); err != nil {
		return f, err
	}
	if f.RopeLength, err = strconv.ParseFloat(record[2], 64); err != nil {
		return f, err
	}
	if f.Contacts, err = strconv.Atoi(record[3]); err != nil {
		return f, err
	}

	coords := record[4:]
	for i := 0; i+1 < len(coords); i += 2 {
		x, err := strconv.ParseFloat(coords[i], 64)
		if err != nil {
			return f, err
		}
		y, err := strconv.ParseFloat(coords[i+1], 64)
		if err != nil {
			return f, err
		}
		f.Points = append(f.Points, dynamo.V(x, y))
	}
	return f, nil
}
