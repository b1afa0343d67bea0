// Package language provides language code normalization and display helpers.
//
// Codes used by the corpus are ISO 639-3; this package validates them,
// converts two-letter input to its three-letter form, case-folds codes for
// lookups, and resolves English display names. All of it is backed by the
// golang.org/x/text language tables so no code list is maintained here.
package language
