//go:build acceptance
// +build acceptance

package acceptance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/shopcheck/pages"
	"github.com/networkteam/shopcheck/scenario"
)

func TestFailure_CapturesPageAndTearsDown(t *testing.T) {
	t.Parallel()

	WithTestFixtures(t, func(t *testing.T, f *TestFixtures) {
		home := f.Suite.Env().Home
		tornDown := false

		s := scenario.New("failing checkout", "test_failure",
			scenario.Step{
				Name: "should go to FO home page",
				ID:   "goToFo",
				Do: func(sc *scenario.Context) error {
					return home.GoToFO(sc.Page())
				},
			},
			scenario.Step{
				Name: "should show the cart",
				ID:   "checkTitle",
				Do: func(sc *scenario.Context) error {
					title, err := pages.PageTitle(sc.Page())
					if err != nil {
						return err
					}
					assert.Equal(sc, pages.CartPageTitle, title)
					return nil
				},
			},
			scenario.Step{
				Name: "should never run",
				ID:   "skipped",
				Do:   func(sc *scenario.Context) error { return nil },
			},
		).After(scenario.New("cleanup", "test_failure_postTest_0", scenario.Step{
			Name: "should open a fresh page",
			ID:   "cleanup",
			Do: func(sc *scenario.Context) error {
				tornDown = true
				return home.GoToFO(sc.Page())
			},
		}))

		result := f.Suite.Run(context.Background(), s)

		var failure *scenario.AssertionFailure
		require.ErrorAs(t, result.Err(), &failure)
		assert.Equal(t, "test_failure_checkTitle", failure.Tag)

		failed := result.Steps[1]
		assert.Equal(t, scenario.StatusFailed, failed.Status)
		assert.FileExists(t, failed.Screenshot)
		assert.Contains(t, failed.Snapshot, `id="index"`)
		assert.Equal(t, scenario.StatusSkipped, result.Steps[2].Status)

		assert.True(t, tornDown)
		require.Len(t, result.Teardown, 1)
		assert.True(t, result.Teardown[0].Passed())
	})
}
