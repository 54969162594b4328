// Package testutil provides deterministic random data generation for tests.
package testutil
