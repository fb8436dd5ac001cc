package mist

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/stat"
)

// FrameRecord is one row of frames.csv.
type FrameRecord struct {
	Frame   uint64  `csv:"frame"`
	Elapsed float64 `csv:"elapsed_s"`
	Delta   float64 `csv:"delta_s"`
	Density float64 `csv:"density"`
	Target  float64 `csv:"target"`
	Engaged bool    `csv:"engaged"`
	X       float64 `csv:"x"`
	Y       float64 `csv:"y"`
}

// RecordFrame captures the renderer's state after an Update.
func RecordFrame(r *Renderer) FrameRecord {
	f := r.Frame()
	return FrameRecord{
		Frame:   f.Frame,
		Elapsed: f.Seconds(),
		Delta:   f.DeltaSeconds(),
		Density: r.Density(),
		Target:  r.TargetDensity(),
		Engaged: r.pointer.Engaged,
		X:       r.pointer.X,
		Y:       r.pointer.Y,
	}
}

// TelemetryWriter appends frame records to frames.csv in a directory and
// keeps a running frame-time summary. A nil writer ignores every call.
type TelemetryWriter struct {
	dir           string
	file          *os.File
	headerWritten bool
	stats         FrameStats
}

// NewTelemetryWriter creates dir and opens frames.csv. Returns nil, nil
// when dir is empty (telemetry disabled).
func NewTelemetryWriter(dir string) (*TelemetryWriter, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating telemetry directory: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, "frames.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating frames.csv: %w", err)
	}
	return &TelemetryWriter{dir: dir, file: f}, nil
}

// Write appends one record.
func (w *TelemetryWriter) Write(rec FrameRecord) error {
	if w == nil {
		return nil
	}
	w.stats.Add(rec.Delta)
	records := []FrameRecord{rec}
	if !w.headerWritten {
		if err := gocsv.Marshal(records, w.file); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		w.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, w.file); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// Stats returns the frame-time summary so far.
func (w *TelemetryWriter) Stats() *FrameStats {
	if w == nil {
		return nil
	}
	return &w.stats
}

// Dir returns the output directory.
func (w *TelemetryWriter) Dir() string {
	if w == nil {
		return ""
	}
	return w.dir
}

// Close flushes and closes frames.csv.
func (w *TelemetryWriter) Close() error {
	if w == nil || w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

// FrameStatsWindow is how many recent deltas FrameStats keeps for its mean
// and deviation; one minute at 60 fps.
const FrameStatsWindow = 3600

// FrameStats accumulates frame deltas in seconds over a sliding window of
// the last FrameStatsWindow frames. The first tick (delta 0) is skipped.
type FrameStats struct {
	deltas []float64
	next   int
	count  int
}

// Add records one delta.
func (s *FrameStats) Add(delta float64) {
	if delta <= 0 {
		return
	}
	s.count++
	if len(s.deltas) < FrameStatsWindow {
		s.deltas = append(s.deltas, delta)
		return
	}
	s.deltas[s.next] = delta
	s.next = (s.next + 1) % FrameStatsWindow
}

// Count returns the number of deltas recorded since creation.
func (s *FrameStats) Count() int {
	return s.count
}

// MeanStdDev returns the mean and sample standard deviation of the deltas
// in the window. Both are zero with no samples; std is zero with one.
func (s *FrameStats) MeanStdDev() (mean, std float64) {
	if len(s.deltas) < 2 {
		if len(s.deltas) == 1 {
			return s.deltas[0], 0
		}
		return 0, 0
	}
	return stat.MeanStdDev(s.deltas, nil)
}

// FPS returns the mean frame rate, or 0 with no samples.
func (s *FrameStats) FPS() float64 {
	mean, _ := s.MeanStdDev()
	if mean <= 0 {
		return 0
	}
	return 1 / mean
}
