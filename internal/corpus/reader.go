package corpus

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"sort"
	"sync"
	"time"

	"crubadan/internal/language"
	"crubadan/internal/logging"
)

// Reasons recorded on Skipped entries.
const (
	SkipUnmapped   = "unmapped"
	SkipMissing    = "missing"
	SkipLoadFailed = "load_failed"
	// SkipShadowed marks a file whose ISO code is claimed by an earlier
	// mapping row with a different internal code.
	SkipShadowed = "shadowed"
)

// Skipped describes an n-gram file that the bulk load left out of the cache.
type Skipped struct {
	File   string `json:"file"`
	Code   string `json:"code"`
	Reason string `json:"reason"`
	Err    error  `json:"-"`
}

// Reader serves the mapping table and per-language frequency distributions of
// one corpus root.
type Reader struct {
	root    string
	fsys    fs.FS
	fileIDs []string
	logger  *slog.Logger
	mapping *MappingTable

	mu      sync.RWMutex
	freqs   map[string]FreqDist
	skipped []Skipped
}

// Option customizes Open.
type Option func(*Reader)

// WithFileIDs replaces the directory listing used to locate the mapping file
// and discover n-gram files. Names are relative to the root.
func WithFileIDs(fileIDs []string) Option {
	return func(r *Reader) {
		r.fileIDs = append([]string(nil), fileIDs...)
	}
}

// WithLogger sets the logger used for load diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reader) {
		r.logger = logger
	}
}

// Open validates root, loads the mapping table, and bulk loads every n-gram
// file that can be mapped to an ISO code.
func Open(root string, opts ...Option) (*Reader, error) {
	if err := checkRoot(root); err != nil {
		return nil, err
	}

	r := &Reader{root: root, fsys: os.DirFS(root)}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.NewComponentLogger(r.logger, "corpus")

	if r.fileIDs == nil {
		names, err := listFiles(root)
		if err != nil {
			return nil, err
		}
		r.fileIDs = names
	}

	if err := r.loadMapping(); err != nil {
		return nil, err
	}
	r.loadAll()
	return r, nil
}

func (r *Reader) loadMapping() error {
	if !slices.Contains(r.fileIDs, MappingFile) {
		return fmt.Errorf("%w: %s not found in %s", ErrMappingFileMissing, MappingFile, r.root)
	}
	file, err := r.fsys.Open(MappingFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s not found in %s", ErrMappingFileMissing, MappingFile, r.root)
		}
		return fmt.Errorf("open %s: %w", MappingFile, err)
	}
	defer file.Close()

	table, err := ParseMapping(file, MappingFile)
	if err != nil {
		return err
	}
	if dups := table.Duplicates(); len(dups) > 0 {
		r.logger.Debug("duplicate codes in mapping table; first entry wins",
			logging.String(logging.FieldEventType, "mapping_duplicates"),
			logging.Any("codes", dups))
	}
	if codes := table.NonISOCodes(); len(codes) > 0 {
		logging.WarnWithContext(r.logger, "mapping table has codes that are not ISO 639-3", "mapping_non_iso",
			logging.Any("codes", codes),
			logging.String(logging.FieldImpact, "lookups use these codes verbatim"),
			logging.String(logging.FieldErrorHint, "correct the ISO column of "+MappingFile))
	}
	r.mapping = table
	return nil
}

// loadAll rebuilds the frequency cache from the file listing. Files that
// cannot be mapped, found, or parsed are recorded as skipped.
func (r *Reader) loadAll() {
	started := time.Now()
	freqs := make(map[string]FreqDist)
	var skipped []Skipped

	for _, name := range r.fileIDs {
		code, ok := ngramFileCode(name)
		if !ok {
			continue
		}
		iso, ok := r.mapping.CrubadanToISO(code)
		if !ok {
			skipped = append(skipped, r.skip(name, code, SkipUnmapped, nil))
			continue
		}
		if first, _ := r.mapping.ISOToCrubadan(iso); language.Fold(first) != language.Fold(code) {
			skipped = append(skipped, r.skip(name, code, SkipShadowed, nil))
			continue
		}
		if canonical, ok := r.mapping.canonicalISO(iso); ok {
			iso = canonical
		}
		if !r.isFile(name) {
			skipped = append(skipped, r.skip(name, code, SkipMissing, nil))
			continue
		}
		dist, err := r.loadFile(name)
		if err != nil {
			skipped = append(skipped, r.skip(name, code, SkipLoadFailed, err))
			continue
		}
		freqs[iso] = dist
	}

	r.mu.Lock()
	r.freqs = freqs
	r.skipped = skipped
	r.mu.Unlock()

	r.logger.Info("corpus loaded",
		logging.String("root", r.root),
		logging.Int("languages", len(freqs)),
		logging.Int("skipped", len(skipped)),
		logging.Duration("elapsed", time.Since(started)))
}

func (r *Reader) skip(name, code, reason string, err error) Skipped {
	attrs := []logging.Attr{
		logging.String(logging.FieldFile, name),
		logging.String("code", code),
		logging.String("reason", reason),
		logging.String(logging.FieldImpact, "language unavailable from this reader"),
	}
	if err != nil {
		attrs = append(attrs, logging.Error(err),
			logging.String(logging.FieldErrorHint, "fix or remove the malformed n-gram file"))
	} else if reason == SkipUnmapped {
		attrs = append(attrs, logging.String(logging.FieldErrorHint, "add the code to "+MappingFile))
	} else if reason == SkipShadowed {
		attrs = append(attrs, logging.String(logging.FieldErrorHint, "remove the duplicate ISO code from "+MappingFile))
	}
	logging.WarnWithContext(r.logger, "n-gram file skipped", "ngram_file_skipped", attrs...)
	return Skipped{File: name, Code: code, Reason: reason, Err: err}
}

func (r *Reader) isFile(name string) bool {
	info, err := fs.Stat(r.fsys, name)
	return err == nil && info.Mode().IsRegular()
}

func (r *Reader) loadFile(name string) (FreqDist, error) {
	file, err := r.fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer file.Close()
	return ParseNgrams(file, name)
}

// LoadLang reads the n-gram file for iso from disk, bypassing the cache.
func (r *Reader) LoadLang(iso string) (FreqDist, error) {
	code, ok := r.mapping.ISOToCrubadan(iso)
	if !ok {
		return nil, fmt.Errorf("%w: no mapping for %q", ErrLanguageNotFound, iso)
	}
	name := code + NgramSuffix
	if !r.isFile(name) {
		return nil, fmt.Errorf("%w: %s for language %q", ErrNgramFileMissing, name, iso)
	}
	r.logger.Debug("loading n-gram file",
		logging.String(logging.FieldLanguage, iso),
		logging.String(logging.FieldFile, name))
	return r.loadFile(name)
}

// LangFreq returns a copy of the cached distribution for iso. An empty cache
// triggers a fresh bulk load first.
func (r *Reader) LangFreq(iso string) (FreqDist, error) {
	r.mu.RLock()
	empty := len(r.freqs) == 0
	r.mu.RUnlock()
	if empty {
		r.loadAll()
	}

	key := iso
	if canonical, ok := r.mapping.canonicalISO(iso); ok {
		key = canonical
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	dist, ok := r.freqs[key]
	if !ok {
		return nil, fmt.Errorf("%w: no frequency data for %q", ErrLanguageNotFound, iso)
	}
	return dist.Clone(), nil
}

// Langs returns the ISO codes of the mapping table in file order, whether or
// not frequency data was loaded for them.
func (r *Reader) Langs() []string {
	return r.mapping.ISOCodes()
}

// ISOToCrubadan maps an ISO 639-3 code to the corpus-internal code.
func (r *Reader) ISOToCrubadan(iso string) (string, bool) {
	return r.mapping.ISOToCrubadan(iso)
}

// CrubadanToISO maps a corpus-internal code to its ISO 639-3 code.
func (r *Reader) CrubadanToISO(code string) (string, bool) {
	return r.mapping.CrubadanToISO(code)
}

// Mapping returns the mapping table entries in file order.
func (r *Reader) Mapping() []MappingEntry {
	return r.mapping.Entries()
}

// NonISOCodes returns mapping-table ISO fields that are not recognized ISO
// 639-3 codes.
func (r *Reader) NonISOCodes() []string {
	return r.mapping.NonISOCodes()
}

// Loaded returns the sorted ISO codes that have cached frequency data.
func (r *Reader) Loaded() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	codes := make([]string, 0, len(r.freqs))
	for iso := range r.freqs {
		codes = append(codes, iso)
	}
	sort.Strings(codes)
	return codes
}

// Skipped returns the files left out by the most recent bulk load.
func (r *Reader) Skipped() []Skipped {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Skipped(nil), r.skipped...)
}

// Root returns the corpus root directory.
func (r *Reader) Root() string {
	return r.root
}

// FileIDs returns the file listing the reader was built from.
func (r *Reader) FileIDs() []string {
	return append([]string(nil), r.fileIDs...)
}
