package schema

// GroupDefinition describes how one metric group is selected and weighted.
type GroupDefinition struct {
	Name      string   `json:"name"`
	Purpose   string   `json:"purpose"`
	Patterns  []string `json:"patterns"`
	RawWeight float64  `json:"raw_weight"`
	Weight    float64  `json:"weight"` // rescaled so the three groups sum to 1
}

// MetricsRenderModel contains all processed data needed for displaying the scoring definition.
type MetricsRenderModel struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Key         string            `json:"key"`
	Groups      []GroupDefinition `json:"groups"`
	Formula     string            `json:"formula"`
	Rescaling   string            `json:"rescaling"`
}
