// Package testsupport builds on-disk corpus fixtures and configs for tests.
package testsupport
