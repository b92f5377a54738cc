package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/huangsam/integral/internal/contract"
	"github.com/huangsam/integral/schema"
)

// groupPurposes describes each metric group for the weights view.
var groupPurposes = map[schema.MetricGroup]string{
	schema.FinancialGroup:  "Financial performance - revenue, profit and growth figures",
	schema.MediaGroup:      "Media presence - mention volume and sentiment",
	schema.ReputationGroup: "Public reputation - survey, NPS and controversy signals",
}

// getDisplayNameForGroup returns the display name with emoji for a metric group.
func getDisplayNameForGroup(group string) string {
	switch schema.MetricGroup(group) {
	case schema.FinancialGroup:
		return "💰 FINANCIAL"
	case schema.MediaGroup:
		return "📰 MEDIA"
	case schema.ReputationGroup:
		return "⭐ REPUTATION"
	default:
		return strings.ToUpper(group)
	}
}

// PrintMetricsDefinitions displays how the composite is built from the active configuration.
// This is a static display that does not load any source.
func PrintMetricsDefinitions(cfg *contract.Config) error {
	renderModel := BuildMetricsRenderModel(cfg)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, renderModel)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVMetrics(w, renderModel)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("%s output is not supported by the weights command", cfg.Output)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return printMetricsText(w, renderModel)
		}, "Wrote text")
	}
}

// printMetricsText displays the scoring definition in human-readable text format.
func printMetricsText(w io.Writer, renderModel *schema.MetricsRenderModel) error {
	lines := []string{
		"🏆 " + renderModel.Title,
		strings.Repeat("=", len(renderModel.Title)+3),
		"",
		renderModel.Description,
		fmt.Sprintf("Entity key column: %s", renderModel.Key),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	for _, g := range renderModel.Groups {
		if _, err := fmt.Fprintf(w, "%s: %s\n", getDisplayNameForGroup(g.Name), g.Purpose); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "   Columns containing: %s\n", strings.Join(g.Patterns, ", ")); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "   Weight: %.2f (raw %.2f)\n\n", g.Weight, g.RawWeight); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "🧮 Formula\nIntegral = %s\n%s\n", renderModel.Formula, renderModel.Rescaling); err != nil {
		return err
	}
	return nil
}

// writeCSVMetrics writes the group definitions in CSV format.
func writeCSVMetrics(w io.Writer, renderModel *schema.MetricsRenderModel) error {
	header := []string{"group", "purpose", "patterns", "raw_weight", "weight"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, g := range renderModel.Groups {
			record := []string{
				g.Name,
				g.Purpose,
				strings.Join(g.Patterns, "|"),
				fmt.Sprintf("%.4f", g.RawWeight),
				fmt.Sprintf("%.4f", g.Weight),
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

// BuildMetricsRenderModel constructs the scoring definition from the active configuration.
func BuildMetricsRenderModel(cfg *contract.Config) *schema.MetricsRenderModel {
	raw := map[schema.MetricGroup]float64{
		schema.FinancialGroup:  cfg.WeightFinancial,
		schema.MediaGroup:      cfg.WeightMedia,
		schema.ReputationGroup: cfg.WeightReputation,
	}
	vocab := cfg.Vocabulary
	if vocab == nil {
		vocab = schema.DefaultVocabulary()
	}

	groups := make([]schema.GroupDefinition, 0, len(schema.AllGroups))
	terms := make([]string, 0, len(schema.AllGroups))
	for _, group := range schema.AllGroups {
		weight := cfg.Weights.Of(group)
		groups = append(groups, schema.GroupDefinition{
			Name:      string(group),
			Purpose:   groupPurposes[group],
			Patterns:  append([]string(nil), vocab[group]...),
			RawWeight: raw[group],
			Weight:    weight,
		})
		if weight > 0 {
			terms = append(terms, fmt.Sprintf("%.2f*%s", weight, group))
		}
	}

	return &schema.MetricsRenderModel{
		Title:       "Integral Scoring",
		Description: "Each group score = min-max normalized mean of the group's numeric columns",
		Key:         cfg.Key,
		Groups:      groups,
		Formula:     strings.Join(terms, " + "),
		Rescaling:   "Final score = composite min-max rescaled to [0,100] (all equal -> 50)",
	}
}
