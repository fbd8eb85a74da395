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

func TestViewMyShop_HandsOffTab(t *testing.T) {
	t.Parallel()

	WithTestFixtures(t, func(t *testing.T, f *TestFixtures) {
		env := f.Suite.Env()

		s := scenario.New("view my shop", "test_tabs",
			scenario.Step{
				Name: "should open the back office",
				ID:   "goToBo",
				Do: func(sc *scenario.Context) error {
					return pages.GoTo(sc.Page(), f.Store.BOURL)
				},
			},
			scenario.Step{
				Name: "should view my shop",
				ID:   "viewMyShop",
				Do: func(sc *scenario.Context) error {
					page, err := pages.ViewMyShop(sc)
					if err != nil {
						return err
					}
					assert.Same(sc, page, sc.Page())
					assert.True(sc, env.Home.IsHomePage(page), "Home page is not displayed")
					return nil
				},
			},
			scenario.Step{
				Name: "should return to the back office",
				ID:   "closePageFo",
				Do: func(sc *scenario.Context) error {
					page, err := pages.ClosePage(sc, 0)
					if err != nil {
						return err
					}
					title, err := pages.PageTitle(page)
					if err != nil {
						return err
					}
					assert.Contains(sc, title, pages.DashboardPageTitle)
					return nil
				},
			},
		)

		result := f.Suite.Run(context.Background(), s)
		require.NoError(t, result.Err())
	})
}
