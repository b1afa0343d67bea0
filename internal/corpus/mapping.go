package corpus

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"crubadan/internal/language"
)

// MappingFile is the name of the mapping table under the corpus root.
const MappingFile = "table.txt"

// MappingEntry pairs a corpus-internal language code with its ISO 639-3 code.
type MappingEntry struct {
	Crubadan string `json:"crubadan"`
	ISO      string `json:"iso"`
}

// MappingTable is the ordered contents of table.txt. Lookups are
// case-insensitive and return the first entry in file order when a code
// appears more than once.
type MappingTable struct {
	entries    []MappingEntry
	byISO      map[string]int
	byCrubadan map[string]int
	duplicates []string
}

// ParseMapping reads a mapping table. name is used in error messages only.
// Blank lines are ignored; any other line must hold exactly two non-empty
// tab-separated fields.
func ParseMapping(r io.Reader, name string) (*MappingTable, error) {
	table := &MappingTable{
		byISO:      make(map[string]int),
		byCrubadan: make(map[string]int),
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		line := strings.TrimRight(raw, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !utf8.ValidString(line) {
			return nil, &LineError{File: name, Line: lineNo, Text: raw, Reason: "invalid UTF-8"}
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 2 {
			return nil, &LineError{File: name, Line: lineNo, Text: raw,
				Reason: fmt.Sprintf("expected 2 tab-separated fields, got %d", len(fields))}
		}
		entry := MappingEntry{
			Crubadan: strings.TrimSpace(fields[0]),
			ISO:      strings.TrimSpace(fields[1]),
		}
		if entry.Crubadan == "" || entry.ISO == "" {
			return nil, &LineError{File: name, Line: lineNo, Text: raw, Reason: "empty language code"}
		}
		table.add(entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return table, nil
}

func (t *MappingTable) add(entry MappingEntry) {
	idx := len(t.entries)
	t.entries = append(t.entries, entry)

	isoKey := language.Fold(entry.ISO)
	if _, exists := t.byISO[isoKey]; exists {
		t.duplicates = append(t.duplicates, entry.ISO)
	} else {
		t.byISO[isoKey] = idx
	}
	codeKey := language.Fold(entry.Crubadan)
	if _, exists := t.byCrubadan[codeKey]; exists {
		t.duplicates = append(t.duplicates, entry.Crubadan)
	} else {
		t.byCrubadan[codeKey] = idx
	}
}

// ISOToCrubadan returns the internal code of the first entry whose ISO code matches.
func (t *MappingTable) ISOToCrubadan(iso string) (string, bool) {
	idx, ok := t.byISO[language.Fold(iso)]
	if !ok {
		return "", false
	}
	return t.entries[idx].Crubadan, true
}

// canonicalISO returns the ISO code as spelled in the first matching entry.
func (t *MappingTable) canonicalISO(iso string) (string, bool) {
	idx, ok := t.byISO[language.Fold(iso)]
	if !ok {
		return "", false
	}
	return t.entries[idx].ISO, true
}

// CrubadanToISO returns the ISO code of the first entry whose internal code matches.
func (t *MappingTable) CrubadanToISO(code string) (string, bool) {
	idx, ok := t.byCrubadan[language.Fold(code)]
	if !ok {
		return "", false
	}
	return t.entries[idx].ISO, true
}

// ISOCodes returns every ISO code in file order, duplicates included.
func (t *MappingTable) ISOCodes() []string {
	codes := make([]string, len(t.entries))
	for i, entry := range t.entries {
		codes[i] = entry.ISO
	}
	return codes
}

// Entries returns a copy of the table in file order.
func (t *MappingTable) Entries() []MappingEntry {
	return append([]MappingEntry(nil), t.entries...)
}

// NonISOCodes returns the ISO fields, in file order, that are not recognized
// three-letter ISO 639-3 codes. Such rows still take part in lookups.
func (t *MappingTable) NonISOCodes() []string {
	var out []string
	for _, entry := range t.entries {
		if !language.IsISO6393(entry.ISO) {
			out = append(out, entry.ISO)
		}
	}
	return out
}

// Duplicates lists codes that appeared after their first occurrence.
func (t *MappingTable) Duplicates() []string {
	return append([]string(nil), t.duplicates...)
}
