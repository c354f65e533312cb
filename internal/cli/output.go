package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"FileComparator/internal/compare"
)

type jsonResult struct {
	Left           string  `json:"left"`
	Right          string  `json:"right"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	compare.Result
}

func printText(w io.Writer, res compare.Result) {
	if res.Identical {
		_, _ = fmt.Fprintln(w, "Files are identical.")
	} else {
		_, _ = fmt.Fprintln(w, "Files are not identical.")
	}
	_, _ = fmt.Fprintf(w, "Comparison took %.4f seconds.\n", res.Elapsed.Seconds())
}

func printJSON(w io.Writer, left, right string, res compare.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonResult{
		Left:           left,
		Right:          right,
		ElapsedSeconds: res.Elapsed.Seconds(),
		Result:         res,
	})
}

// printDetails explains a negative result for --verbose.
func printDetails(w io.Writer, res compare.Result) {
	switch res.Reason {
	case compare.ReasonSizeMismatch:
		_, _ = fmt.Fprintf(w, "sizes differ: left=%d right=%d\n", res.LeftSize, res.RightSize)
	case compare.ReasonContentMismatch:
		_, _ = fmt.Fprintf(w, "first difference at byte offset %d\n", res.Offset)
	}
}
