package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// NgramSuffix is appended to an internal language code to form its n-gram file name.
const NgramSuffix = "-3grams.txt"

var ngramFilePattern = regexp.MustCompile(`^([\p{L}\p{N}_]+)` + regexp.QuoteMeta(NgramSuffix) + `$`)

const maxNgramLine = 64 * 1024

// ngramFileCode returns the internal language code encoded in an n-gram file
// name, or false when name is not an n-gram file.
func ngramFileCode(name string) (string, bool) {
	if name == MappingFile || !ngramFilePattern.MatchString(name) {
		return "", false
	}
	code, _, _ := strings.Cut(name, "-")
	return code, true
}

// ParseNgrams reads "<count> <ngram>" lines into a FreqDist. The count is a
// non-negative base-10 integer and the n-gram is everything after the first
// space. Blank lines are ignored. A repeated n-gram keeps its last count.
func ParseNgrams(r io.Reader, name string) (FreqDist, error) {
	dist := make(FreqDist)

	reader := bufio.NewScanner(r)
	reader.Buffer(make([]byte, 0, 4096), maxNgramLine)
	lineNo := 0
	for reader.Scan() {
		lineNo++
		raw := reader.Text()
		line := strings.TrimRight(raw, "\r\n")
		if line == "" {
			continue
		}
		if !utf8.ValidString(line) {
			return nil, &LineError{File: name, Line: lineNo, Text: raw, Reason: "invalid UTF-8"}
		}
		countText, ngram, ok := strings.Cut(line, " ")
		if !ok {
			return nil, &LineError{File: name, Line: lineNo, Text: raw, Reason: "missing space between count and n-gram"}
		}
		if ngram == "" {
			return nil, &LineError{File: name, Line: lineNo, Text: raw, Reason: "empty n-gram"}
		}
		count, err := strconv.Atoi(countText)
		if err != nil {
			return nil, &LineError{File: name, Line: lineNo, Text: raw, Reason: "invalid count", Err: err}
		}
		if count < 0 {
			return nil, &LineError{File: name, Line: lineNo, Text: raw, Reason: "negative count"}
		}
		dist[ngram] = count
	}
	if err := reader.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &LineError{File: name, Line: lineNo + 1, Reason: "line too long", Err: err}
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return dist, nil
}
