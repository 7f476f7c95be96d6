package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/turbodesigner/internal/turbo"
	"github.com/san-kum/turbodesigner/internal/units"
)

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// StationRecord is one row stream's inlet station, as stored in
// stations.csv. Angles are in degrees, radius in mm.
type StationRecord struct {
	Stage    int
	Rotating bool
	Stream   int
	Radius   float64
	Tt       float64
	Pt       float64
	T        float64
	P        float64
	Rho      float64
	Vm       float64
	Vtheta   float64
	V        float64
	W        float64
	Alpha    float64
	Beta     float64
	MN       float64
	MNRel    float64
	Vcr      float64
}

var stationHeader = []string{
	"stage", "row", "stream", "radius_mm", "Tt", "Pt", "T", "P", "rho",
	"Vm", "Vtheta", "V", "W", "alpha_deg", "beta_deg", "MN", "MN_rel", "Vcr",
}

// Stations flattens the inlet streams of every row of m.
func Stations(m *turbo.Machine) []StationRecord {
	var out []StationRecord
	for _, row := range m.Rows() {
		for i, st := range row.Streams() {
			out = append(out, StationRecord{
				Stage:    row.StageNumber(),
				Rotating: row.Rotating(),
				Stream:   i,
				Radius:   st.Radius.Value() * units.MM,
				Tt:       st.Tt,
				Pt:       st.Pt,
				T:        st.T(),
				P:        st.P(),
				Rho:      st.Rho(),
				Vm:       st.Vm,
				Vtheta:   st.Vtheta(),
				V:        st.V(),
				W:        st.W(),
				Alpha:    units.Degrees(st.Alpha.Or(0)),
				Beta:     units.Degrees(st.Beta()),
				MN:       st.MN(),
				MNRel:    st.MNRel(),
				Vcr:      st.Vcr(),
			})
		}
	}
	return out
}

func rowKind(rotating bool) string {
	if rotating {
		return "rotor"
	}
	return "stator"
}

func (r StationRecord) fields() []float64 {
	return []float64{r.Radius, r.Tt, r.Pt, r.T, r.P, r.Rho, r.Vm, r.Vtheta, r.V, r.W, r.Alpha, r.Beta, r.MN, r.MNRel, r.Vcr}
}

// WriteStationsCSV writes the stations of m with a header line.
func WriteStationsCSV(w io.Writer, m *turbo.Machine) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(stationHeader); err != nil {
		return err
	}
	for _, rec := range Stations(m) {
		line := []string{strconv.Itoa(rec.Stage), rowKind(rec.Rotating), strconv.Itoa(rec.Stream)}
		for _, v := range rec.fields() {
			line = append(line, strconv.FormatFloat(v, 'g', 10, 64))
		}
		if err := cw.Write(line); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadStationsCSV parses the output of WriteStationsCSV.
func ReadStationsCSV(r io.Reader) ([]StationRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(stationHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []StationRecord{}, nil
	}

	out := make([]StationRecord, 0, len(records)-1)
	for n, rec := range records[1:] {
		line := n + 2
		stage, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: stage: %w", line, err)
		}
		stream, err := strconv.Atoi(rec[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: stream: %w", line, err)
		}
		vals := make([]float64, len(rec)-3)
		for i, s := range rec[3:] {
			if vals[i], err = strconv.ParseFloat(s, 64); err != nil {
				return nil, fmt.Errorf("line %d: %s: %w", line, stationHeader[i+3], err)
			}
		}
		out = append(out, StationRecord{
			Stage: stage, Rotating: rec[1] == "rotor", Stream: stream,
			Radius: vals[0], Tt: vals[1], Pt: vals[2], T: vals[3], P: vals[4], Rho: vals[5],
			Vm: vals[6], Vtheta: vals[7], V: vals[8], W: vals[9],
			Alpha: vals[10], Beta: vals[11], MN: vals[12], MNRel: vals[13], Vcr: vals[14],
		})
	}
	return out, nil
}
