package corpus

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParseNgrams(t *testing.T) {
	input := "5 the\r\n3 and\n\n12 <a \n7 x y\n"
	dist, err := ParseNgrams(strings.NewReader(input), "test-3grams.txt")
	if err != nil {
		t.Fatalf("ParseNgrams: %v", err)
	}
	want := FreqDist{"the": 5, "and": 3, "<a ": 12, "x y": 7}
	if !reflect.DeepEqual(dist, want) {
		t.Fatalf("ParseNgrams = %v, want %v", dist, want)
	}
}

func TestParseNgramsRepeatedTokenKeepsLast(t *testing.T) {
	dist, err := ParseNgrams(strings.NewReader("1 abc\n4 abc\n"), "dup")
	if err != nil {
		t.Fatalf("ParseNgrams: %v", err)
	}
	if dist["abc"] != 4 {
		t.Fatalf("expected last count to win, got %v", dist)
	}
}

func TestParseNgramsMalformed(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		line   int
		reason string
	}{
		{"missing space", "5 the\nabc\n", 2, "missing space"},
		{"non integer", "five the\n", 1, "invalid count"},
		{"negative", "-1 the\n", 1, "negative count"},
		{"empty ngram", "5 \n", 1, "empty n-gram"},
		{"invalid utf8", "5 \xff\xfe\n", 1, "invalid UTF-8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseNgrams(strings.NewReader(tt.input), "bad-3grams.txt")
			if !errors.Is(err, ErrMalformedLine) {
				t.Fatalf("expected ErrMalformedLine, got %v", err)
			}
			var lineErr *LineError
			if !errors.As(err, &lineErr) {
				t.Fatalf("expected *LineError, got %T", err)
			}
			if lineErr.Line != tt.line || !strings.Contains(lineErr.Reason, tt.reason) {
				t.Fatalf("unexpected line error: %+v", lineErr)
			}
			if ErrorKind(err) != KindValidation {
				t.Fatalf("unexpected kind %q", ErrorKind(err))
			}
		})
	}
}

func TestParseMapping(t *testing.T) {
	input := "crh\tcrh\r\nen\tEng\n\n  \nsr_Latn\tsrp \n\n\n"
	table, err := ParseMapping(strings.NewReader(input), MappingFile)
	if err != nil {
		t.Fatalf("ParseMapping: %v", err)
	}
	want := []MappingEntry{{"crh", "crh"}, {"en", "Eng"}, {"sr_Latn", "srp"}}
	if got := table.Entries(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Entries = %+v, want %+v", got, want)
	}
	if code, ok := table.ISOToCrubadan("ENG"); !ok || code != "en" {
		t.Fatalf("ISOToCrubadan(ENG) = %q, %v", code, ok)
	}
	if iso, ok := table.CrubadanToISO("SR_LATN"); !ok || iso != "srp" {
		t.Fatalf("CrubadanToISO(SR_LATN) = %q, %v", iso, ok)
	}
	if _, ok := table.ISOToCrubadan("fra"); ok {
		t.Fatal("expected miss for fra")
	}
}

func TestParseMappingFirstMatchWins(t *testing.T) {
	input := "a\tdup\nb\tdup\na\tother\n"
	table, err := ParseMapping(strings.NewReader(input), MappingFile)
	if err != nil {
		t.Fatalf("ParseMapping: %v", err)
	}
	if code, _ := table.ISOToCrubadan("dup"); code != "a" {
		t.Fatalf("expected first internal code, got %q", code)
	}
	if iso, _ := table.CrubadanToISO("a"); iso != "dup" {
		t.Fatalf("expected first ISO code, got %q", iso)
	}
	if got := table.ISOCodes(); !reflect.DeepEqual(got, []string{"dup", "dup", "other"}) {
		t.Fatalf("ISOCodes = %v", got)
	}
	if got := table.Duplicates(); !reflect.DeepEqual(got, []string{"dup", "a"}) {
		t.Fatalf("Duplicates = %v", got)
	}
}

func TestParseMappingMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{"one field", "crh\tcrh\neng\n", 2},
		{"three fields", "crh\tcrh\textra\n", 1},
		{"empty field", "\tcrh\n", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMapping(strings.NewReader(tt.input), MappingFile)
			var lineErr *LineError
			if !errors.As(err, &lineErr) || lineErr.Line != tt.line {
				t.Fatalf("expected line error on line %d, got %v", tt.line, err)
			}
		})
	}
}

func TestNgramFileCode(t *testing.T) {
	tests := []struct {
		name string
		code string
		ok   bool
	}{
		{"en-3grams.txt", "en", true},
		{"sr_Latn-3grams.txt", "sr_Latn", true},
		{"ñu-3grams.txt", "ñu", true},
		{"sr-Latn-3grams.txt", "", false},
		{"en-3grams.txt.bak", "", false},
		{"-3grams.txt", "", false},
		{"table.txt", "", false},
		{"sub/en-3grams.txt", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := ngramFileCode(tt.name)
			if code != tt.code || ok != tt.ok {
				t.Fatalf("ngramFileCode(%q) = %q, %v; want %q, %v", tt.name, code, ok, tt.code, tt.ok)
			}
		})
	}
}

func TestArchiveElement(t *testing.T) {
	tests := []struct {
		root string
		ok   bool
	}{
		{"/data/crubadan.zip", true},
		{"/data/crubadan.zip/crubadan", true},
		{"/data/corpora.tar.gz", true},
		{"/data/crubadan", false},
		{"/data/.zip", false},
	}
	for _, tt := range tests {
		t.Run(tt.root, func(t *testing.T) {
			if _, ok := archiveElement(tt.root); ok != tt.ok {
				t.Fatalf("archiveElement(%q) = %v, want %v", tt.root, ok, tt.ok)
			}
		})
	}
}
