package storage

import (
	"encoding/json"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/san-kum/pdesim/internal/sim"
)

// Float is a float64 whose JSON form keeps NaN and the infinities as the
// strings "NaN", "+Inf" and "-Inf". Diverged runs produce them.
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte(strconv.Quote(strconv.FormatFloat(v, 'g', -1, 64))), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

func (f *Float) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		s, err := strconv.Unquote(string(b))
		if err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*f = Float(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

type ExportFrame struct {
	T int `json:"t"`
	// Components holds each component's values in row-major order.
	Components [][]Float `json:"components"`
}

type ExportData struct {
	RunMetadata
	Frames []ExportFrame `json:"frames"`
}

func NewExportData(meta *RunMetadata, frames []sim.Frame) ExportData {
	data := ExportData{RunMetadata: *meta, Frames: make([]ExportFrame, len(frames))}
	for i, fr := range frames {
		comps := make([][]Float, fr.Field.Components)
		for c := range comps {
			plane := fr.Field.Component(c)
			comps[c] = make([]Float, len(plane))
			for k, v := range plane {
				comps[c][k] = Float(v)
			}
		}
		data.Frames[i] = ExportFrame{T: fr.T, Components: comps}
	}
	return data
}

func WriteJSON(w io.Writer, meta *RunMetadata, frames []sim.Frame) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(meta, frames))
}

func ExportJSON(path string, meta *RunMetadata, frames []sim.Frame) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, meta, frames)
}

func ExportJSONStdout(meta *RunMetadata, frames []sim.Frame) error {
	return WriteJSON(os.Stdout, meta, frames)
}
