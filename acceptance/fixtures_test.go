//go:build acceptance
// +build acceptance

package acceptance

import (
	"testing"

	"github.com/networkteam/shopcheck"
)

// TestFixtures bundles all commonly needed test fixtures.
type TestFixtures struct {
	Store *Storefront
	Suite *shopcheck.Suite
}

// WithTestFixtures creates all fixtures, registers cleanup with t.Cleanup(), and calls the test function.
func WithTestFixtures(t *testing.T, fn func(t *testing.T, f *TestFixtures)) {
	t.Helper()

	store := NewStorefront(t)
	t.Cleanup(store.Close)

	suite := NewSuite(t, store)

	fn(t, &TestFixtures{
		Store: store,
		Suite: suite,
	})
}
