package corpus_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"crubadan/internal/corpus"
	"crubadan/internal/testsupport"
)

func sampleCorpus(t *testing.T) string {
	t.Helper()
	return testsupport.WriteCorpus(t, map[string]string{
		corpus.MappingFile: testsupport.MappingTable("crh", "crh", "en", "eng", "zz", "zzz"),
		"crh-3grams.txt":   testsupport.NgramLines("5 the", "3 and"),
		"en-3grams.txt":    testsupport.NgramLines("10 <th", "7 he>", "1 ing"),
		"xx-3grams.txt":    testsupport.NgramLines("1 abc"),
		"README":           "not an n-gram file\n",
	})
}

func mustOpen(t *testing.T, root string, opts ...corpus.Option) *corpus.Reader {
	t.Helper()
	reader, err := corpus.Open(root, opts...)
	if err != nil {
		t.Fatalf("Open(%s): %v", root, err)
	}
	return reader
}

func TestLangsFollowsMappingOrder(t *testing.T) {
	root := testsupport.WriteCorpus(t, map[string]string{
		corpus.MappingFile: "crh\tcrh\neng\teng\n",
	})
	reader := mustOpen(t, root)

	got := reader.Langs()
	want := []string{"crh", "eng"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Langs() = %v, want %v", got, want)
	}
}

func TestLangsIncludesCodesWithoutData(t *testing.T) {
	reader := mustOpen(t, sampleCorpus(t))

	want := []string{"crh", "eng", "zzz"}
	if got := reader.Langs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Langs() = %v, want %v", got, want)
	}
	if got := reader.Loaded(); !reflect.DeepEqual(got, []string{"crh", "eng"}) {
		t.Fatalf("Loaded() = %v", got)
	}
}

func TestLangFreqCounts(t *testing.T) {
	reader := mustOpen(t, sampleCorpus(t))

	counts, err := reader.LangFreq("crh")
	if err != nil {
		t.Fatalf("LangFreq: %v", err)
	}
	if counts["the"] != 5 || counts["and"] != 3 {
		t.Fatalf("unexpected counts: %v", counts)
	}
	if counts.B() != 2 || counts.N() != 8 {
		t.Fatalf("unexpected totals: B=%d N=%d", counts.B(), counts.N())
	}
}

func TestLangFreqIsCaseInsensitive(t *testing.T) {
	reader := mustOpen(t, sampleCorpus(t))

	counts, err := reader.LangFreq("ENG")
	if err != nil {
		t.Fatalf("LangFreq: %v", err)
	}
	if counts["<th"] != 10 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestLangFreqReturnsCopy(t *testing.T) {
	reader := mustOpen(t, sampleCorpus(t))

	first, err := reader.LangFreq("crh")
	if err != nil {
		t.Fatalf("LangFreq: %v", err)
	}
	first["the"] = 999

	second, err := reader.LangFreq("crh")
	if err != nil {
		t.Fatalf("LangFreq: %v", err)
	}
	if second["the"] != 5 {
		t.Fatalf("cache was mutated through returned distribution: %v", second)
	}
}

func TestLangFreqUnknownLanguage(t *testing.T) {
	reader := mustOpen(t, sampleCorpus(t))

	_, err := reader.LangFreq("fra")
	if !errors.Is(err, corpus.ErrLanguageNotFound) {
		t.Fatalf("expected ErrLanguageNotFound, got %v", err)
	}
	if corpus.ErrorKind(err) != corpus.KindNotFound {
		t.Fatalf("unexpected kind %q", corpus.ErrorKind(err))
	}
}

func TestMissingNgramFileDirectVersusBulk(t *testing.T) {
	reader := mustOpen(t, sampleCorpus(t))

	if _, err := reader.LoadLang("zzz"); !errors.Is(err, corpus.ErrNgramFileMissing) {
		t.Fatalf("LoadLang: expected ErrNgramFileMissing, got %v", err)
	}
	if _, err := reader.LangFreq("zzz"); !errors.Is(err, corpus.ErrLanguageNotFound) {
		t.Fatalf("LangFreq: expected ErrLanguageNotFound, got %v", err)
	}
	for _, iso := range reader.Loaded() {
		if iso == "zzz" {
			t.Fatal("zzz should not be cached")
		}
	}
}

func TestLoadLangUnmapped(t *testing.T) {
	reader := mustOpen(t, sampleCorpus(t))

	if _, err := reader.LoadLang("fra"); !errors.Is(err, corpus.ErrLanguageNotFound) {
		t.Fatalf("expected ErrLanguageNotFound, got %v", err)
	}
}

func TestLoadLangReadsFromDisk(t *testing.T) {
	root := sampleCorpus(t)
	reader := mustOpen(t, root)

	testsupport.WriteFile(t, filepath.Join(root, "crh-3grams.txt"), testsupport.NgramLines("9 new"))

	fresh, err := reader.LoadLang("crh")
	if err != nil {
		t.Fatalf("LoadLang: %v", err)
	}
	if fresh["new"] != 9 || fresh.B() != 1 {
		t.Fatalf("unexpected fresh counts: %v", fresh)
	}
	cached, err := reader.LangFreq("crh")
	if err != nil {
		t.Fatalf("LangFreq: %v", err)
	}
	if cached["the"] != 5 {
		t.Fatalf("cache should keep the constructor snapshot, got %v", cached)
	}
}

func TestBulkLoadRecordsSkippedFiles(t *testing.T) {
	root := testsupport.WriteCorpus(t, map[string]string{
		corpus.MappingFile: testsupport.MappingTable("crh", "crh", "bad", "bad"),
		"crh-3grams.txt":   testsupport.NgramLines("5 the"),
		"bad-3grams.txt":   testsupport.NgramLines("five the"),
		"xx-3grams.txt":    testsupport.NgramLines("1 abc"),
	})
	reader := mustOpen(t, root)

	skipped := reader.Skipped()
	if len(skipped) != 2 {
		t.Fatalf("expected 2 skipped files, got %+v", skipped)
	}
	byFile := map[string]corpus.Skipped{}
	for _, s := range skipped {
		byFile[s.File] = s
	}
	if s := byFile["bad-3grams.txt"]; s.Reason != corpus.SkipLoadFailed || !errors.Is(s.Err, corpus.ErrMalformedLine) {
		t.Fatalf("unexpected skip for bad file: %+v", s)
	}
	if s := byFile["xx-3grams.txt"]; s.Reason != corpus.SkipUnmapped || s.Code != "xx" {
		t.Fatalf("unexpected skip for unmapped file: %+v", s)
	}
	if got := reader.Loaded(); !reflect.DeepEqual(got, []string{"crh"}) {
		t.Fatalf("Loaded() = %v", got)
	}
}

func TestDuplicateISOCacheMatchesDirectLoad(t *testing.T) {
	root := testsupport.WriteCorpus(t, map[string]string{
		corpus.MappingFile: testsupport.MappingTable("a", "x", "b", "x"),
		"a-3grams.txt":     testsupport.NgramLines("5 aaa"),
		"b-3grams.txt":     testsupport.NgramLines("7 bbb"),
	})
	reader := mustOpen(t, root)

	if code, _ := reader.ISOToCrubadan("x"); code != "a" {
		t.Fatalf("ISOToCrubadan(x) = %q, want a", code)
	}
	cached, err := reader.LangFreq("x")
	if err != nil {
		t.Fatalf("LangFreq: %v", err)
	}
	direct, err := reader.LoadLang("x")
	if err != nil {
		t.Fatalf("LoadLang: %v", err)
	}
	if !reflect.DeepEqual(cached, direct) || cached["aaa"] != 5 {
		t.Fatalf("cache %v disagrees with direct load %v", cached, direct)
	}

	skipped := reader.Skipped()
	if len(skipped) != 1 || skipped[0].File != "b-3grams.txt" || skipped[0].Reason != corpus.SkipShadowed {
		t.Fatalf("expected b-3grams.txt shadowed, got %+v", skipped)
	}
}

func TestFileIDsOverrideListing(t *testing.T) {
	root := sampleCorpus(t)
	reader := mustOpen(t, root, corpus.WithFileIDs([]string{corpus.MappingFile, "en-3grams.txt", "gone-3grams.txt"}))

	if got := reader.Loaded(); !reflect.DeepEqual(got, []string{"eng"}) {
		t.Fatalf("Loaded() = %v", got)
	}
	if _, err := reader.LangFreq("crh"); !errors.Is(err, corpus.ErrLanguageNotFound) {
		t.Fatalf("crh should be absent when not listed, got %v", err)
	}
}

func TestListedButAbsentFileIsSkipped(t *testing.T) {
	root := sampleCorpus(t)
	if err := os.Remove(filepath.Join(root, "en-3grams.txt")); err != nil {
		t.Fatalf("remove: %v", err)
	}

	reader := mustOpen(t, root, corpus.WithFileIDs([]string{corpus.MappingFile, "crh-3grams.txt", "en-3grams.txt"}))
	skipped := reader.Skipped()
	if len(skipped) != 1 || skipped[0].Reason != corpus.SkipMissing || skipped[0].File != "en-3grams.txt" {
		t.Fatalf("expected one missing skip, got %+v", skipped)
	}
}

func TestOpenMissingMappingFile(t *testing.T) {
	root := testsupport.WriteCorpus(t, map[string]string{
		"crh-3grams.txt": testsupport.NgramLines("5 the"),
	})

	_, err := corpus.Open(root)
	if !errors.Is(err, corpus.ErrMappingFileMissing) {
		t.Fatalf("expected ErrMappingFileMissing, got %v", err)
	}
	if corpus.ErrorKind(err) != corpus.KindConfiguration {
		t.Fatalf("unexpected kind %q", corpus.ErrorKind(err))
	}
}

func TestOpenMappingFileNotListed(t *testing.T) {
	root := sampleCorpus(t)

	_, err := corpus.Open(root, corpus.WithFileIDs([]string{"crh-3grams.txt"}))
	if !errors.Is(err, corpus.ErrMappingFileMissing) {
		t.Fatalf("expected ErrMappingFileMissing, got %v", err)
	}
}

func TestOpenMalformedMappingFails(t *testing.T) {
	root := testsupport.WriteCorpus(t, map[string]string{
		corpus.MappingFile: "crh\tcrh\nbroken-line\n",
	})

	_, err := corpus.Open(root)
	if !errors.Is(err, corpus.ErrMalformedLine) {
		t.Fatalf("expected ErrMalformedLine, got %v", err)
	}
	var lineErr *corpus.LineError
	if !errors.As(err, &lineErr) || lineErr.Line != 2 || lineErr.File != corpus.MappingFile {
		t.Fatalf("unexpected line error: %#v", lineErr)
	}
}

func TestOpenRejectsNonLocalRoots(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "crubadan.zip")
	testsupport.WriteFile(t, archive, "PK\x03\x04")
	plainFile := filepath.Join(dir, "corpus.txt")
	testsupport.WriteFile(t, plainFile, "x")

	tests := []struct {
		name string
		root string
	}{
		{"archive file", archive},
		{"inside archive", filepath.Join(archive, "crubadan")},
		{"missing", filepath.Join(dir, "missing")},
		{"regular file", plainFile},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := corpus.Open(tt.root)
			if !errors.Is(err, corpus.ErrCorpusNotInstalled) {
				t.Fatalf("expected ErrCorpusNotInstalled, got %v", err)
			}
		})
	}
}

func TestRoundTripCodes(t *testing.T) {
	reader := mustOpen(t, sampleCorpus(t))

	for _, iso := range reader.Langs() {
		code, ok := reader.ISOToCrubadan(iso)
		if !ok {
			t.Fatalf("ISOToCrubadan(%q) missing", iso)
		}
		back, ok := reader.CrubadanToISO(code)
		if !ok || back != iso {
			t.Fatalf("round trip %q -> %q -> %q", iso, code, back)
		}
	}
	if _, ok := reader.CrubadanToISO("nope"); ok {
		t.Fatal("expected miss for unknown internal code")
	}
}

func TestOpenIsDeterministic(t *testing.T) {
	root := sampleCorpus(t)
	first := mustOpen(t, root)
	second := mustOpen(t, root)

	if !reflect.DeepEqual(first.Langs(), second.Langs()) {
		t.Fatalf("Langs differ: %v vs %v", first.Langs(), second.Langs())
	}
	if !reflect.DeepEqual(first.Loaded(), second.Loaded()) {
		t.Fatalf("Loaded differ: %v vs %v", first.Loaded(), second.Loaded())
	}
	for _, iso := range first.Loaded() {
		a, err := first.LangFreq(iso)
		if err != nil {
			t.Fatalf("LangFreq(%s): %v", iso, err)
		}
		b, err := second.LangFreq(iso)
		if err != nil {
			t.Fatalf("LangFreq(%s): %v", iso, err)
		}
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("distributions differ for %s: %v vs %v", iso, a, b)
		}
	}
}

func TestReadersDoNotShareCache(t *testing.T) {
	full := mustOpen(t, sampleCorpus(t))
	partial := mustOpen(t, sampleCorpus(t), corpus.WithFileIDs([]string{corpus.MappingFile, "crh-3grams.txt"}))

	if len(full.Loaded()) != 2 || len(partial.Loaded()) != 1 {
		t.Fatalf("unexpected loaded sets: %v / %v", full.Loaded(), partial.Loaded())
	}
	if _, err := partial.LangFreq("eng"); !errors.Is(err, corpus.ErrLanguageNotFound) {
		t.Fatalf("partial reader should not see eng, got %v", err)
	}
}

func TestLangFreqReloadsEmptyCache(t *testing.T) {
	root := testsupport.WriteCorpus(t, map[string]string{
		corpus.MappingFile: testsupport.MappingTable("crh", "crh"),
	})
	reader := mustOpen(t, root, corpus.WithFileIDs([]string{corpus.MappingFile, "crh-3grams.txt"}))
	if len(reader.Loaded()) != 0 {
		t.Fatalf("expected empty cache, got %v", reader.Loaded())
	}

	testsupport.WriteFile(t, filepath.Join(root, "crh-3grams.txt"), testsupport.NgramLines("4 abc"))

	counts, err := reader.LangFreq("crh")
	if err != nil {
		t.Fatalf("LangFreq after reload: %v", err)
	}
	if counts["abc"] != 4 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestMappingReturnsEntries(t *testing.T) {
	reader := mustOpen(t, sampleCorpus(t))

	entries := reader.Mapping()
	if len(entries) != 3 || entries[1] != (corpus.MappingEntry{Crubadan: "en", ISO: "eng"}) {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	if reader.Root() == "" {
		t.Fatal("expected root")
	}
}
