// Package dates adapts the natural-language date parser to the
// date-recognizer seam used by field extraction.
package dates

import (
	"context"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// maxCandidates bounds how far into a document the recognizer scans.
const maxCandidates = 8

// Recognizer resolves English date phrases in free text.
type Recognizer struct {
	parser *when.Parser
	now    func() time.Time
}

func NewRecognizer() *Recognizer {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &Recognizer{parser: w, now: time.Now}
}

// Candidates returns resolved date values in order of appearance in the text.
func (r *Recognizer) Candidates(ctx context.Context, text string) ([]time.Time, error) {
	var out []time.Time
	base := r.now()
	rest := text
	for len(out) < maxCandidates && strings.TrimSpace(rest) != "" {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		res, err := r.parser.Parse(rest, base)
		if err != nil {
			return out, err
		}
		if res == nil {
			break
		}
		out = append(out, res.Time)
		rest = rest[res.Index+len(res.Text):]
	}
	return out, nil
}
