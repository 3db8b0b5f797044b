package export

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/san-kum/orbitsim/internal/orbit"
	"github.com/san-kum/orbitsim/internal/sim"
)

// TraceRecord is one body at one frame.
type TraceRecord struct {
	Frame int     `csv:"frame"`
	T     float64 `csv:"t"`
	Body  string  `csv:"body"`
	X     float64 `csv:"x"`
	Y     float64 `csv:"y"`
	Angle float64 `csv:"angle"`
}

// TraceSurface writes every frame as CSV rows as soon as it is presented.
type TraceSurface struct {
	w             io.Writer
	headerWritten bool
	rows          int
}

func NewTraceSurface(w io.Writer) *TraceSurface {
	return &TraceSurface{w: w}
}

func (s *TraceSurface) Init(bodies []orbit.Body) error {
	s.headerWritten = false
	s.rows = 0
	return nil
}

func (s *TraceSurface) SetPosition(int, orbit.Body, orbit.Position) error { return nil }

func (s *TraceSurface) Present(f sim.Frame) error {
	records := make([]TraceRecord, len(f.Positions))
	for i, bp := range f.Positions {
		records[i] = TraceRecord{
			Frame: f.Index,
			T:     f.T,
			Body:  bp.Name,
			X:     bp.Position.X,
			Y:     bp.Position.Y,
			Angle: bp.Angle,
		}
	}

	if !s.headerWritten {
		if err := gocsv.Marshal(records, s.w); err != nil {
			return fmt.Errorf("writing trace: %w", err)
		}
		s.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, s.w); err != nil {
			return fmt.Errorf("writing trace: %w", err)
		}
	}
	s.rows += len(records)
	return nil
}

// Rows is the number of records written since Init.
func (s *TraceSurface) Rows() int { return s.rows }
