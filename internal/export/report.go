package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/ccm/internal/edm"
)

// Report is the machine-readable result of one analysis session.
type Report struct {
	System   string        `json:"system,omitempty"`
	Input    string        `json:"input,omitempty"`
	Source   string        `json:"source"`
	Target   string        `json:"target"`
	E        int           `json:"e"`
	Tp       int           `json:"tp"`
	Seed     uint64        `json:"seed,omitempty"`
	Result   *edm.Result   `json:"cross_map,omitempty"`
	Dominant string        `json:"dominant,omitempty"`
	Skills   []edm.Skill   `json:"skills,omitempty"`
	Forecast *edm.Forecast `json:"forecast,omitempty"`
}

func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func ExportJSON(path string, r *Report) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, r)
}

func ReadJSON(r io.Reader) (*Report, error) {
	var rep Report
	if err := json.NewDecoder(r).Decode(&rep); err != nil {
		return nil, err
	}
	return &rep, nil
}
