package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"pqcprov/x/capabilities/harness"
)

var (
	passColor = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
	skipColor = color.New(color.FgYellow)
)

func printResult(w io.Writer, res harness.Result) {
	switch res.Status() {
	case "pass":
		passColor.Fprint(w, "PASS")
		fmt.Fprintf(w, " %s\n", res.Algorithm)
	case "skip":
		skipColor.Fprint(w, "SKIP")
		fmt.Fprintf(w, " %s: %v\n", res.Algorithm, res.Err)
	default:
		failColor.Fprint(w, "FAIL")
		fmt.Fprintf(w, " %s at %s: %v\n", res.Algorithm, res.Stage, res.Err)
	}
}

func printReport(w io.Writer, what string, report *harness.Report) {
	for _, res := range report.Results {
		printResult(w, res)
	}
	summary := fmt.Sprintf("%s: %d passed, %d failed, %d skipped\n", what, report.Passed(), report.Failures(), report.Skipped())
	if report.Failures() > 0 {
		failColor.Fprint(w, summary)
		return
	}
	passColor.Fprint(w, summary)
}
