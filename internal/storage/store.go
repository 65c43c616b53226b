// Package storage persists simulation runs: one directory per run with
// metadata.json and trajectory.csv, plus a JSON export of a full run.
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

	"github.com/mweb/condyn/internal/solver"
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

// RunMetadata describes one stored run.
type RunMetadata struct {
	ID        string             `json:"id"`
	Model     string             `json:"model"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	T1        float64            `json:"t1"`
	RhoInf    float64            `json:"rho_inf"`
	DAEIndex  int                `json:"dae_index"`
	GGL       bool               `json:"ggl"`
	Steps     int                `json:"steps"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes metadata and the full trajectory and returns the run id.
func (s *Store) Save(meta RunMetadata, sol *solver.Solution) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Model, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Steps = sol.Len()

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if sol.Len() == 0 {
		return runID, nil
	}

	header := trajectoryHeader(sol.At(0))
	if err := w.Write(header); err != nil {
		return "", err
	}
	for i := 0; i < sol.Len(); i++ {
		if err := w.Write(trajectoryRow(sol.At(i))); err != nil {
			return "", err
		}
	}

	return runID, w.Error()
}

func trajectoryHeader(sn solver.Snapshot) []string {
	header := []string{"time"}
	appendCols := func(prefix string, n int) {
		for i := 0; i < n; i++ {
			header = append(header, fmt.Sprintf("%s%d", prefix, i))
		}
	}
	appendCols("q", len(sn.Q))
	appendCols("u", len(sn.U))
	appendCols("q_dot", len(sn.QDot))
	appendCols("u_dot", len(sn.UDot))
	appendCols("kappa_g", len(sn.KappaG))
	appendCols("la_g", len(sn.LaG))
	appendCols("la_gamma", len(sn.LaGamma))
	appendCols("kappa_N", len(sn.KappaN))
	appendCols("La_N", len(sn.ImpulseN))
	appendCols("la_N", len(sn.LaN))
	return header
}

func trajectoryRow(sn solver.Snapshot) []string {
	row := []string{strconv.FormatFloat(sn.T, 'g', 17, 64)}
	for _, seg := range [][]float64{sn.Q, sn.U, sn.QDot, sn.UDot, sn.KappaG, sn.LaG, sn.LaGamma, sn.KappaN, sn.ImpulseN, sn.LaN} {
		for _, v := range seg {
			row = append(row, strconv.FormatFloat(v, 'g', 17, 64))
		}
	}
	return row
}

// List returns the stored run ids, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			ids = append(ids, e.Name())
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Load reads the metadata of a stored run.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// columnGroup strips the trailing component index of a trajectory
// column name, so "q_dot2" groups under "q_dot".
func columnGroup(name string) string {
	i := len(name)
	for i > 0 && name[i-1] >= '0' && name[i-1] <= '9' {
		i--
	}
	return name[:i]
}

// LoadSolution rebuilds the trajectory of a stored run from
// trajectory.csv. Column groups absent from the run stay nil in the
// snapshots.
func (s *Store) LoadSolution(runID string) (*solver.Solution, error) {
	header, rows, err := s.LoadTrajectory(runID)
	if err != nil {
		return nil, err
	}
	if len(header) == 0 {
		return solver.NewSolution(), nil
	}

	counts := make(map[string]int)
	for _, name := range header[1:] {
		counts[columnGroup(name)]++
	}

	snaps := make([]solver.Snapshot, 0, len(rows))
	for _, row := range rows {
		idx := 1
		take := func(group string) []float64 {
			n := counts[group]
			if n == 0 {
				return nil
			}
			seg := make([]float64, n)
			copy(seg, row[idx:idx+n])
			idx += n
			return seg
		}
		snaps = append(snaps, solver.Snapshot{
			T:        row[0],
			Q:        take("q"),
			U:        take("u"),
			QDot:     take("q_dot"),
			UDot:     take("u_dot"),
			KappaG:   take("kappa_g"),
			LaG:      take("la_g"),
			LaGamma:  take("la_gamma"),
			KappaN:   take("kappa_N"),
			ImpulseN: take("La_N"),
			LaN:      take("la_N"),
		})
	}
	return solver.NewSolution(snaps...), nil
}

// LoadTrajectory reads trajectory.csv back as a header and numeric rows.
func (s *Store) LoadTrajectory(runID string) (header []string, rows [][]float64, err error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "trajectory.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, nil
	}

	header = records[0]
	rows = make([][]float64, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]float64, len(rec))
		for i, cell := range rec {
			row[i], err = strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("storage: bad value %q in run %s: %w", cell, runID, err)
			}
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}
