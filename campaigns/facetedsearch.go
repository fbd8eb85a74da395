package campaigns

import (
	"fmt"
	"regexp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/shopcheck/data"
	"github.com/networkteam/shopcheck/fileutil"
	"github.com/networkteam/shopcheck/pages"
	"github.com/networkteam/shopcheck/scenario"
)

const (
	facetedSearchUninstallContext = "modules_ps_facetedsearch_installation_uninstallAndDeleteModule"
	paperTypeFilterContext        = "modules_ps_facetedsearch_configuration_editTemplatePaperTypeFilter"
)

// FacetedSearchUninstallAndDelete uninstalls the faceted search module and checks that the
// clothes category has no filters anymore. The module is installed again from its release
// afterwards, also when a step failed.
func FacetedSearchUninstallAndDelete(env *Env) *scenario.Scenario {
	module := data.ModuleFacetedSearch
	category := data.CategoryClothes

	return scenario.New("Faceted search module - Uninstall and delete module", facetedSearchUninstallContext,
		LoginBO(env),
		goToModuleManager(),
		searchModule(module, "searchModule"),
		scenario.Step{
			Name: "should display the uninstall modal and cancel it",
			ID:   "resetModuleAndCancel",
			Do: func(sc *scenario.Context) error {
				page := sc.Page()
				msg, err := pages.ModuleManager.SetActionInModule(page, module, "uninstall", true, false)
				if err != nil {
					return err
				}
				assert.Empty(sc, msg)
				assert.True(sc, pages.ModuleManager.IsModuleVisible(page, module))
				assert.False(sc, pages.ModuleManager.IsModalActionVisible(page, module, "uninstall"))
				assert.True(sc, fileutil.DoesFileExist(env.Config.ModulePath(module.Tag), fileutil.DefaultExistTimeout), "module directory is missing")
				return nil
			},
		},
		uninstallModule(env, module),
		scenario.Step{
			Name: "should go to the front office",
			ID:   "goToFo",
			Do: func(sc *scenario.Context) error {
				page, err := pages.ViewMyShop(sc)
				if err != nil {
					return err
				}
				if err := env.Home.ChangeLanguage(page, "en"); err != nil {
					return err
				}
				assert.True(sc, env.Home.IsHomePage(page), "Home page is not displayed")
				return nil
			},
		},
		scenario.Step{
			Name: fmt.Sprintf("should go to the category page %s", category.Name),
			ID:   "goToCategoryPage",
			Do: func(sc *scenario.Context) error {
				page := sc.Page()
				if err := env.Home.GoToCategory(page, category.ID); err != nil {
					return err
				}

				title, err := pages.PageTitle(page)
				if err != nil {
					return err
				}
				assert.Equal(sc, category.Name, title)
				return nil
			},
		},
		scenario.Step{
			Name: "should check that the faceted search filters are not shown",
			ID:   "checkModuleNotPresent",
			Do: func(sc *scenario.Context) error {
				assert.False(sc, env.Category.HasSearchFilters(sc.Page()))
				return nil
			},
		},
	).After(InstallModule(env, module, facetedSearchUninstallContext+"_postTest_0"))
}

// PaperTypeFilter is a configuration of the "Paper Type" filter of the first template and
// how the filter is expected to render in the front office.
type PaperTypeFilter struct {
	Enabled bool
	// Type is checkbox, radio or dropdown; empty keeps the current type.
	Type string
	// Limit is the number of values shown; empty keeps the current limit.
	Limit string

	HasSearchFilters bool
	IsRadio          bool
	IsDropdown       bool
	IsCheckbox       bool
	// NumCheckbox is the expected number of checkboxes; 0 means at least one.
	NumCheckbox int
}

// PaperTypeFilters are the configurations checked by FacetedSearchPaperTypeFilter.
var PaperTypeFilters = []PaperTypeFilter{
	{Enabled: false, HasSearchFilters: true},
	{Enabled: true, Type: "radio", HasSearchFilters: true, IsRadio: true},
	{Enabled: true, Type: "dropdown", HasSearchFilters: true, IsDropdown: true},
	{Enabled: true, Type: "checkbox", HasSearchFilters: true, IsCheckbox: true},
	{Enabled: true, Type: "checkbox", Limit: "2", HasSearchFilters: true, IsCheckbox: true, NumCheckbox: 2},
	{Enabled: true, Type: "checkbox", Limit: "0", HasSearchFilters: true, IsCheckbox: true},
}

const (
	paperTypeFilterName = "Attribute group: Paper Type"
	paperTypeFacetKind  = "attribute_group"
	paperTypeFacetName  = "Paper Type"
)

var filterUpdatedMessage = regexp.MustCompile(`× Your filter "[-A-Za-z0-9\s]+" was updated successfully.`)

// FacetedSearchPaperTypeFilter returns one scenario per paper type filter configuration.
// The scenarios change the same template and must not run concurrently.
func FacetedSearchPaperTypeFilter(env *Env) []*scenario.Scenario {
	return scenario.Table(PaperTypeFilters, func(i int, rec PaperTypeFilter) *scenario.Scenario {
		return paperTypeFilterScenario(env, i, rec)
	})
}

func paperTypeFilterScenario(env *Env, i int, rec PaperTypeFilter) *scenario.Scenario {
	module := data.ModuleFacetedSearch
	name := fmt.Sprintf("Faceted search module - Edit template - Paper type filter #%d (enabled: %t, type: %q, limit: %q)",
		i, rec.Enabled, rec.Type, rec.Limit)

	return scenario.New(name, paperTypeFilterContext,
		LoginBO(env),
		goToModuleManager(),
		searchModule(module, "searchModule"),
		scenario.Step{
			Name: fmt.Sprintf("should go to the configuration page of %s", module.Name),
			ID:   "goToConfigurationPage",
			Do: func(sc *scenario.Context) error {
				page := sc.Page()
				if err := pages.ModuleManager.GoToConfigurationPage(page, module.Tag); err != nil {
					return err
				}

				subtitle, err := pages.FacetedSearch.PageSubtitle(page)
				if err != nil {
					return err
				}
				assert.Contains(sc, subtitle, pages.FacetedSearchPageSubTitle)
				return nil
			},
		},
		scenario.Step{
			Name: "should edit the filter template",
			ID:   scenario.Indexed("editFilterTemplate", i),
			Do: func(sc *scenario.Context) error {
				page := sc.Page()
				if err := pages.FacetedSearch.EditFilterTemplate(page, 1); err != nil {
					return err
				}

				title, err := pages.FilterTemplate.PanelTitle(page)
				if err != nil {
					return err
				}
				assert.Contains(sc, title, pages.FilterTemplateTitle)
				return nil
			},
		},
		scenario.Step{
			Name: fmt.Sprintf("should set the filter %q", paperTypeFilterName),
			ID:   scenario.Indexed("setProductBrandFilter", i),
			Do: func(sc *scenario.Context) error {
				page := sc.Page()
				if err := pages.FilterTemplate.SetTemplateFilterForm(page, paperTypeFilterName, rec.Enabled, rec.Type, rec.Limit); err != nil {
					return err
				}

				msg, err := pages.FilterTemplate.SaveTemplate(page)
				if err != nil {
					return err
				}
				assert.Regexp(sc, filterUpdatedMessage, msg)
				return nil
			},
		},
		scenario.Step{
			Name: "should view my shop",
			ID:   scenario.Indexed("viewMyShop", i),
			Do: func(sc *scenario.Context) error {
				page, err := pages.ViewMyShop(sc)
				if err != nil {
					return err
				}
				if err := env.Home.ChangeLanguage(page, "en"); err != nil {
					return err
				}
				assert.True(sc, env.Home.IsHomePage(page), "Home page is not displayed")
				return nil
			},
		},
		scenario.Step{
			Name: "should check the search filters of the all products page",
			ID:   scenario.Indexed("goToAllProductsPage", i),
			Do: func(sc *scenario.Context) error {
				return checkPaperTypeFilter(sc, env, rec)
			},
		},
		scenario.Step{
			Name: "should close the front office page",
			ID:   scenario.Indexed("closePageFo", i),
			Do: func(sc *scenario.Context) error {
				page, err := pages.ClosePage(sc, 0)
				if err != nil {
					return err
				}

				subtitle, err := pages.FacetedSearch.PageSubtitle(page)
				if err != nil {
					return err
				}
				assert.Contains(sc, subtitle, pages.FacetedSearchPageSubTitle)
				return nil
			},
		},
	)
}

func checkPaperTypeFilter(sc *scenario.Context, env *Env, rec PaperTypeFilter) error {
	page := sc.Page()
	if err := env.Home.GoToAllProductsBlockPage(page, 1); err != nil {
		return err
	}
	require.True(sc, env.Category.IsCategoryPage(page), "category page is not displayed")

	assert.Equal(sc, rec.HasSearchFilters, env.Category.HasSearchFilters(page), "search filters")

	radio, err := env.Category.IsSearchFilterRadio(page, paperTypeFacetKind, paperTypeFacetName)
	if err != nil {
		return err
	}
	assert.Equal(sc, rec.IsRadio, radio, "radio filter")

	dropdown, err := env.Category.IsSearchFilterDropdown(page, paperTypeFacetKind, paperTypeFacetName)
	if err != nil {
		return err
	}
	assert.Equal(sc, rec.IsDropdown, dropdown, "dropdown filter")

	checkbox, err := env.Category.IsSearchFilterCheckbox(page, paperTypeFacetKind, paperTypeFacetName)
	if err != nil {
		return err
	}
	assert.Equal(sc, rec.IsCheckbox, checkbox, "checkbox filter")

	if rec.Limit == "" {
		return nil
	}
	n, err := env.Category.NumSearchFiltersCheckbox(page, paperTypeFacetKind, paperTypeFacetName)
	if err != nil {
		return err
	}
	if rec.NumCheckbox > 0 {
		assert.Equal(sc, rec.NumCheckbox, n, "number of checkboxes")
	} else {
		assert.Greater(sc, n, 0, "number of checkboxes")
	}
	return nil
}
