// Package timeparse normalizes free-form date and time input into the
// canonical stored forms. Both parsers are total: every input, including
// malformed or out-of-range strings, yields a valid canonical value by
// falling back to the current wall clock.
package timeparse

import (
	"strings"
	"time"

	"github.com/nestlog/nestlog/internal/clock"
	"go.uber.org/zap"
)

const (
	// DateLayout is the canonical stored calendar-date form.
	DateLayout = "2006-01-02"
	// TimeLayout is the canonical stored time-of-day form. Zero padding keeps
	// lexicographic order identical to chronological order.
	TimeLayout = "15:04:05.000000000"
)

// timeAttempts is the ordered fallback chain for time input. Each attempt is
// guarded identically; any failure, regardless of kind, moves to the next
// attempt and the chain terminates at the current wall clock.
var timeAttempts = []string{"15:04:05", "15:04"}

// Parser turns raw submissions into canonical date and time strings.
type Parser struct {
	clk clock.Clock
	log *zap.Logger
}

func New(clk clock.Clock, log *zap.Logger) *Parser {
	return &Parser{clk: clk, log: log.Named("timeparse")}
}

// Time normalizes raw into canonical HH:MM:SS.fffffffff form. Seconds default
// to zero when only HH:MM is given. Empty or unparseable input resolves to
// the current time of day, sub-second precision preserved.
func (p *Parser) Time(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed != "" {
		for _, layout := range timeAttempts {
			t, err := time.Parse(layout, trimmed)
			if err == nil {
				return t.Format(TimeLayout)
			}
			p.log.Debug("time parse attempt failed",
				zap.String("layout", layout),
				zap.String("input", trimmed),
				zap.Error(err),
			)
		}
	}
	return p.clk.Now().Format(TimeLayout)
}

// Date normalizes raw into canonical YYYY-MM-DD form. Anything that is not a
// valid YYYY-MM-DD resolves to today's local calendar day; no secondary
// layout is attempted for dates.
func (p *Parser) Date(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed != "" {
		t, err := time.Parse(DateLayout, trimmed)
		if err == nil {
			return t.Format(DateLayout)
		}
		p.log.Debug("date parse failed",
			zap.String("input", trimmed),
			zap.Error(err),
		)
	}
	return p.clk.Now().Format(DateLayout)
}
