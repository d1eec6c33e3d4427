package batch

import (
	"fmt"

	"github.com/amidamarulas/Labterial/internal/calc/curve"
)

// Input simulates several materials under one machine configuration,
// e.g. for an overlay plot.
type Input struct {
	Materials []curve.Properties `json:"materials"`
	Mode      string             `json:"mode"`
	MaxStrain float64            `json:"max_strain"`
	Samples   int                `json:"samples,omitempty"`
}

// Item is the outcome for one material. Failures are isolated: a bad
// row carries its error and the remaining materials still simulate.
type Item struct {
	Material string        `json:"material"`
	Error    string        `json:"error,omitempty"`
	Result   *curve.Result `json:"result,omitempty"`
}

type Result struct {
	Items []Item `json:"items"`
}

func Calculate(in Input) (Result, error) {
	if len(in.Materials) == 0 {
		return Result{}, fmt.Errorf("%w: no materials", curve.ErrInvalidSpec)
	}
	out := Result{Items: make([]Item, 0, len(in.Materials))}
	for _, m := range in.Materials {
		item := Item{Material: m.Name}
		res, err := curve.Calculate(curve.Input{
			Material:  m,
			Mode:      in.Mode,
			MaxStrain: in.MaxStrain,
			Samples:   in.Samples,
		})
		if err != nil {
			item.Error = err.Error()
		} else {
			item.Result = &res
		}
		out.Items = append(out.Items, item)
	}
	return out, nil
}
