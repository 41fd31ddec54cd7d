package tui

import (
	"fmt"

	"github.com/docuchat-dev/docuchat/internal/api"
	"github.com/docuchat-dev/docuchat/internal/progress"
)

// FormatCitation renders one citation line, e.g.
// "[Doc 1] cv.pdf (score 0.870)". The score is omitted when the server did
// not send one.
func FormatCitation(c api.Citation) string {
	if c.Score != nil {
		return fmt.Sprintf("[Doc %d] %s (score %.3f)", c.Index, c.Filename, *c.Score)
	}
	return fmt.Sprintf("[Doc %d] %s", c.Index, c.Filename)
}

// FormatEvent renders the detail part of one progress event line, e.g.
// "cv.pdf (chunks: 7)". Chunks are omitted while zero.
func FormatEvent(e progress.Event) string {
	if e.Chunks > 0 {
		return fmt.Sprintf("%s (chunks: %d)", e.Filename, e.Chunks)
	}
	return e.Filename
}
