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

	"github.com/san-kum/verletsim/internal/dynamo"
	"github.com/san-kum/verletsim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
	snapshotFile = "snapshot.json"
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

type BoundaryMetadata struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	FrameDt   float64            `json:"frame_dt"`
	Frames    int                `json:"frames"`
	SubSteps  int                `json:"sub_steps"`
	Gravity   dynamo.Vector      `json:"gravity"`
	Boundary  BoundaryMetadata   `json:"boundary"`
	Bodies    int                `json:"bodies"`
	Rejected  int                `json:"rejected"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes a run directory holding the metadata, per-frame stats and the
// final snapshot. ID and Timestamp are filled in when empty.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	if meta.ID == "" {
		meta.ID = fmt.Sprintf("%s_%d", meta.Name, meta.Timestamp.UnixNano())
	}
	meta.Bodies = len(result.Final)
	meta.Rejected = result.Rejected
	meta.Metrics = result.Metrics

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeFrames(filepath.Join(runDir, framesFile), result.Frames); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, snapshotFile), result.Final); err != nil {
		return "", err
	}
	return meta.ID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeFrames(path string, frames []sim.FrameStat) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"frame", "time", "bodies", "kinetic", "overlap"}); err != nil {
		return err
	}
	for _, fs := range frames {
		row := []string{
			strconv.Itoa(fs.Frame),
			strconv.FormatFloat(fs.Time, 'f', 6, 64),
			strconv.Itoa(fs.Bodies),
			strconv.FormatFloat(fs.Kinetic, 'g', -1, 64),
			strconv.FormatFloat(fs.Overlap, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns the metadata of every readable run, oldest first.
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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
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
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadFrames(runID string) ([]sim.FrameStat, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []sim.FrameStat{}, nil
	}

	frames := make([]sim.FrameStat, 0, len(records)-1)
	for i, rec := range records[1:] {
		fs, err := parseFrame(rec)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", framesFile, i+2, err)
		}
		frames = append(frames, fs)
	}
	return frames, nil
}

func parseFrame(rec []string) (sim.FrameStat, error) {
	var fs sim.FrameStat
	var err error
	if fs.Frame, err = strconv.Atoi(rec[0]); err != nil {
		return fs, err
	}
	if fs.Time, err = strconv.ParseFloat(rec[1], 64); err != nil {
		return fs, err
	}
	if fs.Bodies, err = strconv.Atoi(rec[2]); err != nil {
		return fs, err
	}
	if fs.Kinetic, err = strconv.ParseFloat(rec[3], 64); err != nil {
		return fs, err
	}
	if fs.Overlap, err = strconv.ParseFloat(rec[4], 64); err != nil {
		return fs, err
	}
	return fs, nil
}

func (s *Store) LoadSnapshot(runID string) ([]dynamo.BodyView, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, snapshotFile))
	if err != nil {
		return nil, err
	}

	var snap []dynamo.BodyView
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return snap, nil
}
