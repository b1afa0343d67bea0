package corpus

import "sort"

// FreqDist maps an n-gram to the number of times it was observed.
type FreqDist map[string]int

// NgramCount is a single FreqDist entry.
type NgramCount struct {
	Ngram string `json:"ngram"`
	Count int    `json:"count"`
}

// Count returns the count for ngram, or zero when it was never observed.
func (d FreqDist) Count(ngram string) int {
	return d[ngram]
}

// N returns the total of all counts.
func (d FreqDist) N() int {
	total := 0
	for _, count := range d {
		total += count
	}
	return total
}

// B returns the number of distinct n-grams.
func (d FreqDist) B() int {
	return len(d)
}

// Freq returns the relative frequency of ngram. It is zero for an empty distribution.
func (d FreqDist) Freq(ngram string) float64 {
	total := d.N()
	if total == 0 {
		return 0
	}
	return float64(d[ngram]) / float64(total)
}

// MostCommon returns the n highest counts, ties broken by n-gram. n <= 0 returns every entry.
func (d FreqDist) MostCommon(n int) []NgramCount {
	out := make([]NgramCount, 0, len(d))
	for ngram, count := range d {
		out = append(out, NgramCount{Ngram: ngram, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Ngram < out[j].Ngram
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// Clone returns an independent copy of d.
func (d FreqDist) Clone() FreqDist {
	if d == nil {
		return nil
	}
	out := make(FreqDist, len(d))
	for ngram, count := range d {
		out[ngram] = count
	}
	return out
}
