package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/verletsim/internal/dynamo"
)

type ExportData struct {
	Name     string             `json:"name"`
	FrameDt  float64            `json:"frame_dt"`
	Frames   int                `json:"frames"`
	SubSteps int                `json:"sub_steps"`
	Seed     int64              `json:"seed"`
	Bodies   []dynamo.BodyView  `json:"bodies"`
	Metrics  map[string]float64 `json:"metrics"`
}

// ExportJSON writes a run's metadata and body snapshot as one indented
// JSON document.
func ExportJSON(w io.Writer, meta *RunMetadata, snap []dynamo.BodyView) error {
	if snap == nil {
		snap = []dynamo.BodyView{}
	}
	data := ExportData{
		Name:     meta.Name,
		FrameDt:  meta.FrameDt,
		Frames:   meta.Frames,
		SubSteps: meta.SubSteps,
		Seed:     meta.Seed,
		Bodies:   snap,
		Metrics:  meta.Metrics,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
