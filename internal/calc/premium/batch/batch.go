package batch

import (
	"fmt"

	"Airflow/internal/calc/summary"
)

type Item struct {
	Name  string        `json:"name"`
	Input summary.Input `json:"input"`
}

type BatchInput struct {
	Items []Item `json:"items"`
}

type ItemResult struct {
	Name    string          `json:"name"`
	Summary summary.Summary `json:"summary"`
}

type BatchResult struct {
	Results []ItemResult `json:"results"`
}

// Calculate summarizes every item, preserving order.
func Calculate(in BatchInput) (BatchResult, error) {
	if len(in.Items) == 0 {
		return BatchResult{}, fmt.Errorf("no items")
	}
	out := BatchResult{Results: make([]ItemResult, 0, len(in.Items))}
	for i, item := range in.Items {
		name := item.Name
		if name == "" {
			name = fmt.Sprintf("layout %d", i+1)
		}
		out.Results = append(out.Results, ItemResult{Name: name, Summary: summary.Calculate(item.Input)})
	}
	return out, nil
}
