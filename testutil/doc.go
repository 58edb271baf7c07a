// Package testutil provides value kinds and fakes for tests.
package testutil
