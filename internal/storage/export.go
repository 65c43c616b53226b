package storage

import (
	"encoding/json"
	"io"

	"github.com/mweb/condyn/internal/solver"
)

// ExportData is the JSON shape of a full run export.
type ExportData struct {
	Model    string             `json:"model"`
	Dt       float64            `json:"dt"`
	T1       float64            `json:"t1"`
	RhoInf   float64            `json:"rho_inf"`
	DAEIndex int                `json:"dae_index"`
	GGL      bool               `json:"ggl"`
	Steps    int                `json:"steps"`
	Metrics  map[string]float64 `json:"metrics"`

	Times     []float64   `json:"times"`
	Positions [][]float64 `json:"q"`
	Velocity  [][]float64 `json:"u"`
	LaG       [][]float64 `json:"la_g"`
	LaGamma   [][]float64 `json:"la_gamma"`
	KappaN    [][]float64 `json:"kappa_N"`
	ImpulseN  [][]float64 `json:"La_N"`
	LaN       [][]float64 `json:"la_N"`
}

// ExportJSON writes a run as indented JSON.
func ExportJSON(w io.Writer, meta RunMetadata, sol *solver.Solution, metrics map[string]float64) error {
	data := ExportData{
		Model:    meta.Model,
		Dt:       meta.Dt,
		T1:       meta.T1,
		RhoInf:   meta.RhoInf,
		DAEIndex: meta.DAEIndex,
		GGL:      meta.GGL,
		Steps:    sol.Len(),
		Metrics:  metrics,
	}
	for i := 0; i < sol.Len(); i++ {
		sn := sol.At(i)
		data.Times = append(data.Times, sn.T)
		data.Positions = append(data.Positions, sn.Q)
		data.Velocity = append(data.Velocity, sn.U)
		data.LaG = append(data.LaG, sn.LaG)
		data.LaGamma = append(data.LaGamma, sn.LaGamma)
		data.KappaN = append(data.KappaN, sn.KappaN)
		data.ImpulseN = append(data.ImpulseN, sn.ImpulseN)
		data.LaN = append(data.LaN, sn.LaN)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
