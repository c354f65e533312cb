package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"FileComparator/internal/compare"
)

const invalidChunkFmt = "Invalid buffer size. Using default %d bytes.\n"

func warnInvalidChunk(w io.Writer, def int) {
	_, _ = fmt.Fprintf(w, invalidChunkFmt, def)
}

// prompter asks for the values that were not given on the command line.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
	err io.Writer
}

func newPrompter(in io.Reader, out, errOut io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out, err: errOut}
}

func (p *prompter) line(question string) (string, error) {
	if _, err := fmt.Fprint(p.out, question); err != nil {
		return "", err
	}
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimSuffix(p.in.Text(), "\r"), nil
}

// path keeps surrounding blanks, they are legal in file names.
func (p *prompter) path(question string) (string, error) {
	s, err := p.line(question)
	if err != nil {
		return "", WrapCLIError(ExitUsageError, "no file path given", err)
	}
	if s == "" {
		return "", NewCLIError(ExitUsageError, "file path must not be empty")
	}
	return s, nil
}

// chunkSize asks for the buffer size. Anything other than a positive
// integer, including an empty answer or end of input, is reported on the
// error stream and replaced by def.
func (p *prompter) chunkSize(def int) int {
	s, err := p.line(fmt.Sprintf("Enter buffer size in bytes (default %d): ", def))
	if err != nil {
		warnInvalidChunk(p.err, def)
		return def
	}
	n, ok := parseChunkSize(s)
	if !ok {
		warnInvalidChunk(p.err, def)
		return def
	}
	return n
}

func parseChunkSize(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || !validChunkSize(n) {
		return 0, false
	}
	return n, true
}

func validChunkSize(n int) bool {
	return n > 0 && n <= compare.MaxChunkSize
}
