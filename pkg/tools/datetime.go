package tools

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sysdevrun/transitchat/pkg/llm"
)

// CurrentDateTime reports the local date and time. The schedule tools expect
// dates in YYYYMMDD, so the model is told to call this before anything date
// sensitive; that sequencing lives in the descriptions only and is not
// enforced by the loop.
type CurrentDateTime struct {
	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

func (t *CurrentDateTime) Name() string { return "getCurrentDateTime" }

func (t *CurrentDateTime) Definition() llm.Tool {
	return llm.Tool{
		Name: t.Name(),
		Description: "Returns the current local date and time, including the YYYYMMDD date the other " +
			"tools expect. Call this first, before any date or time sensitive query.",
		InputSchema: llm.Schema{Type: "object", Properties: map[string]llm.Schema{}},
	}
}

type currentDateTimePayload struct {
	Date        string `json:"date"`
	Time        string `json:"time"`
	DateNumeric string `json:"dateNumeric"`
	Weekday     string `json:"weekday"`
	ISO         string `json:"iso"`
	Timezone    string `json:"timezone"`
}

func (t *CurrentDateTime) Execute(ctx context.Context, input json.RawMessage) (any, error) {
	now := time.Now()
	if t.Now != nil {
		now = t.Now()
	}

	zone, _ := now.Zone()

	return currentDateTimePayload{
		Date:        now.Format("2006-01-02"),
		Time:        now.Format("15:04:05"),
		DateNumeric: now.Format("20060102"),
		Weekday:     now.Weekday().String(),
		ISO:         now.Format(time.RFC3339),
		Timezone:    zone,
	}, nil
}
