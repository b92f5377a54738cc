package outwriter

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/huangsam/integral/internal/contract"
	"github.com/huangsam/integral/schema"
)

// LogRankHeader prints a concise, 2-line header describing the sources and weights in use.
func LogRankHeader(w io.Writer, cfg *contract.Config, sources []schema.SourceInfo) {
	loaded := make([]string, 0, len(sources))
	for _, s := range sources {
		if s.Loaded {
			loaded = append(loaded, fmt.Sprintf("%s=%s (%d rows)", s.Group, filepath.Base(s.Path), s.Rows))
		}
	}
	if len(loaded) == 0 {
		loaded = append(loaded, "none")
	}

	_, _ = fmt.Fprintf(w, "📂 Sources: %v (key: %s)\n", loaded, cfg.Key)
	_, _ = fmt.Fprintf(w, "⚖️  Weights: financial=%.2f media=%.2f reputation=%.2f\n",
		cfg.Weights.Financial(), cfg.Weights.Media(), cfg.Weights.Reputation())
}
