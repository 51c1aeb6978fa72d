// Package report renders a computed review as the YAML block, the HTML pages
// served by the API and the plain text report used by the console tools.
package report

import (
	"github.com/Kabroda-Trading/KTBB-APP/Internal/strategy/dmr"
	"github.com/Kabroda-Trading/KTBB-APP/Internal/types"
)

// Review is everything the renderers need for one run.
type Review struct {
	RunID        string
	Input        types.EngineInput
	Output       types.EngineOutput
	FallbackUsed bool
	Warning      string
}

// NewReview wraps an engine result. Outputs whose triggers are not strictly
// inside the band carry a warning.
func NewReview(runID string, in types.EngineInput, res dmr.Result) Review {
	r := Review{
		RunID:        runID,
		Input:        in,
		Output:       res.Output,
		FallbackUsed: res.FallbackUsed,
	}
	if err := dmr.Validate(res.Output); err != nil {
		r.Warning = err.Error()
	}
	return r
}
