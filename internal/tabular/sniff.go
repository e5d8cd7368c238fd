package tabular

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"strings"
)

// delimiterCandidates, in tie-break order. Comma first: when two delimiters
// produce equally consistent tables the earlier candidate wins.
var delimiterCandidates = []rune{',', ';', '\t', '|'}

// sniffSampleLines caps how many lines feed the delimiter sniffer.
const sniffSampleLines = 10

// SniffDelimiter inspects a sample of the file and picks the delimiter that
// splits the sample into the most columns with a consistent count per line.
// Quoted fields are respected, so commas inside quotes don't vote. Falls
// back to comma when no candidate produces more than one column, so a
// single-column file still parses.
func SniffDelimiter(data []byte) rune {
	sample := sampleLines(data, sniffSampleLines)
	if sample == "" {
		return ','
	}

	best := ','
	bestFields := 1
	for _, cand := range delimiterCandidates {
		n, ok := consistentFieldCount(sample, cand)
		if ok && n > bestFields {
			best = cand
			bestFields = n
		}
	}
	return best
}

// consistentFieldCount parses the sample with the candidate delimiter and
// reports the per-record field count if every record agrees on it.
func consistentFieldCount(sample string, comma rune) (int, bool) {
	r := csv.NewReader(strings.NewReader(sample))
	r.Comma = comma
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil || len(records) == 0 {
		return 0, false
	}

	n := len(records[0])
	for _, rec := range records[1:] {
		if len(rec) != n {
			return 0, false
		}
	}
	return n, true
}

// sampleLines returns up to max non-empty lines from data, newline-joined.
func sampleLines(data []byte, max int) string {
	var b strings.Builder
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	count := 0
	for scanner.Scan() && count < max {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if count > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		count++
	}
	return b.String()
}
