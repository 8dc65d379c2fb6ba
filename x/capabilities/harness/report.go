package harness

import (
	"fmt"
	"strings"

	errorsmod "cosmossdk.io/errors"

	"pqcprov/x/capabilities/types"
)

// Result is the outcome of one algorithm. For signatures it covers every
// digest path: Stage is where the first failing path stopped and Err names
// each failing path.
type Result struct {
	Algorithm string
	Stage     Stage
	Skipped   bool
	Err       error
}

func (r Result) Passed() bool {
	return !r.Skipped && r.Err == nil && r.Stage == StageDone
}

func (r Result) Status() string {
	switch {
	case r.Skipped:
		return "skip"
	case r.Passed():
		return "pass"
	default:
		return "fail"
	}
}

// Report collects one result per algorithm in execution order.
type Report struct {
	Results []Result
}

func (r *Report) add(res Result) {
	r.Results = append(r.Results, res)
}

func (r *Report) count(status string) int {
	n := 0
	for _, res := range r.Results {
		if res.Status() == status {
			n++
		}
	}
	return n
}

func (r *Report) Passed() int   { return r.count("pass") }
func (r *Report) Failures() int { return r.count("fail") }
func (r *Report) Skipped() int  { return r.count("skip") }

// Err summarises failed round trips, or returns nil when none failed.
func (r *Report) Err() error {
	var failed []string
	for _, res := range r.Results {
		if res.Status() == "fail" {
			failed = append(failed, fmt.Sprintf("%s at %s", res.Algorithm, res.Stage))
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return errorsmod.Wrapf(types.ErrRoundTripFailed, "%d failure(s): %s", len(failed), strings.Join(failed, "; "))
}
