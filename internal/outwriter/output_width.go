package outwriter

import (
	"os"

	"github.com/huangsam/integral/internal/contract"
	"golang.org/x/term"
)

// GetMaxTableNameWidth calculates the maximum width for entity names in table output
// based on terminal width and table configuration.
func GetMaxTableNameWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Rank + three group scores + Integral + Label with borders/padding
	baseWidth := 60

	// Pre-scale composite column
	if cfg.Detail {
		baseWidth += 12
	}

	// Table borders, separators and padding
	baseWidth += 10

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 50 {
		return 50
	}
	return available
}
