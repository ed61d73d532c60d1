package outwriter

import (
	"os"

	"github.com/mtlpdq/pdqstats/internal/contract"
	"golang.org/x/term"
)

const (
	defaultTermWidth = 80 // narrow terminals and CI
	minTextWidth     = 15
	maxTextWidth     = 50
)

// GetMaxTableTextWidth returns the width left for the free-text column of a table
// once fixedWidth characters are reserved for the other columns and borders.
func GetMaxTableTextWidth(cfg *contract.Config, fixedWidth int) int {
	termWidth := cfg.Width
	if termWidth <= 0 {
		detected, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detected <= 0 {
			termWidth = defaultTermWidth
		} else {
			termWidth = detected
		}
	}

	available := termWidth - fixedWidth
	if available < minTextWidth {
		return minTextWidth
	}
	if available > maxTextWidth {
		return maxTextWidth
	}
	return available
}
