package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/pdesim/internal/fdm"
	"github.com/san-kum/pdesim/internal/sim"
)

var ErrMalformedFrames = errors.New("malformed frame table")

// WriteFramesCSV writes one record per (frame, component, row):
// t, component, row, then the nx values of that row.
func WriteFramesCSV(out io.Writer, frames []sim.Frame) error {
	w := csv.NewWriter(out)
	if len(frames) == 0 {
		w.Flush()
		return w.Error()
	}

	nx := frames[0].Field.Nx
	header := []string{"t", "component", "row"}
	for i := 0; i < nx; i++ {
		header = append(header, fmt.Sprintf("v%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	record := make([]string, 3+nx)
	for _, fr := range frames {
		f := fr.Field
		for c := 0; c < f.Components; c++ {
			for j := 0; j < f.Ny; j++ {
				record[0] = strconv.Itoa(fr.T)
				record[1] = strconv.Itoa(c)
				record[2] = strconv.Itoa(j)
				for i, v := range f.Row(c, j) {
					record[3+i] = strconv.FormatFloat(v, 'g', -1, 64)
				}
				if err := w.Write(record); err != nil {
					return err
				}
			}
		}
	}

	w.Flush()
	return w.Error()
}

// ReadFramesCSV is the inverse of WriteFramesCSV for fields shaped like g
// with the given component count.
func ReadFramesCSV(in io.Reader, g *fdm.Grid, components int) ([]sim.Frame, error) {
	r := csv.NewReader(in)
	r.FieldsPerRecord = -1
	r.ReuseRecord = true

	if _, err := r.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return []sim.Frame{}, nil
		}
		return nil, err
	}

	frames := make([]sim.Frame, 0)
	var cur *sim.Frame
	for line := 2; ; line++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) != 3+g.Nx {
			return nil, fmt.Errorf("%w: line %d has %d fields, want %d", ErrMalformedFrames, line, len(record), 3+g.Nx)
		}

		t, err1 := strconv.Atoi(record[0])
		c, err2 := strconv.Atoi(record[1])
		j, err3 := strconv.Atoi(record[2])
		if err := errors.Join(err1, err2, err3); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedFrames, line, err)
		}
		if c < 0 || c >= components || j < 0 || j >= g.Ny {
			return nil, fmt.Errorf("%w: line %d: component %d row %d out of range", ErrMalformedFrames, line, c, j)
		}

		if cur == nil || cur.T != t {
			frames = append(frames, sim.Frame{T: t, Field: fdm.NewField(g, components)})
			cur = &frames[len(frames)-1]
		}

		row := cur.Field.Row(c, j)
		for i := range row {
			v, err := strconv.ParseFloat(record[3+i], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedFrames, line, err)
			}
			row[i] = v
		}
	}
	return frames, nil
}
