package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// FacetedSearchPage is the configuration page of the faceted search module.
type FacetedSearchPage struct{}

var FacetedSearch FacetedSearchPage

const (
	FacetedSearchPageSubTitle = "Filters templates"
	facetedSearchSubtitle     = "#content .panel-heading.filters-templates, #content #form-filters-templates .panel-heading"
)

// PageSubtitle returns the heading of the template list.
func (FacetedSearchPage) PageSubtitle(page playwright.Page) (string, error) {
	return TextContent(page, facetedSearchSubtitle)
}

// EditFilterTemplate opens the template in row, starting at 1.
func (FacetedSearchPage) EditFilterTemplate(page playwright.Page, row int) error {
	return ClickAndWaitForLoad(page, fmt.Sprintf("#table-filters-templates tbody tr:nth-child(%d) a.edit", row))
}

// FilterTemplatePage edits the filters of one template.
type FilterTemplatePage struct{}

var FilterTemplate FilterTemplatePage

const (
	FilterTemplateTitle  = "Template"
	filterTemplatePanel  = "#configuration_form .panel-heading"
	filterTemplateSave   = "#configuration_form button[name='submitLayeredFilter']"
	filterTemplateFilter = "#selected_filters li.filter_list_item"
)

// Filter types of a template filter.
var filterTypes = map[string]string{
	"checkbox": "0",
	"radio":    "1",
	"dropdown": "2",
}

// PanelTitle returns the panel heading of the template form.
func (FilterTemplatePage) PanelTitle(page playwright.Page) (string, error) {
	return TextContent(page, filterTemplatePanel)
}

// SetTemplateFilterForm enables or disables filter and sets its type and limit when not empty.
func (FilterTemplatePage) SetTemplateFilterForm(page playwright.Page, filter string, enabled bool, filterType, limit string) error {
	row := page.Locator(filterTemplateFilter).Filter(playwright.LocatorFilterOptions{HasText: filter})

	if err := row.Locator("input[type='checkbox']").First().SetChecked(enabled); err != nil {
		return fmt.Errorf("toggling filter %s: %w", filter, err)
	}

	if filterType != "" {
		value, ok := filterTypes[filterType]
		if !ok {
			return fmt.Errorf("unknown filter type %q", filterType)
		}
		if _, err := row.Locator("select[name$='_filter_type']").SelectOption(playwright.SelectOptionValues{
			Values: playwright.StringSlice(value),
		}); err != nil {
			return fmt.Errorf("selecting filter type %s: %w", filterType, err)
		}
	}

	if limit != "" {
		if _, err := row.Locator("select[name$='_filter_show_limit']").SelectOption(playwright.SelectOptionValues{
			Values: playwright.StringSlice(limit),
		}); err != nil {
			return fmt.Errorf("selecting filter limit %s: %w", limit, err)
		}
	}
	return nil
}

// SaveTemplate saves the template and returns the success message.
func (FilterTemplatePage) SaveTemplate(page playwright.Page) (string, error) {
	if err := ClickAndWaitForLoad(page, filterTemplateSave); err != nil {
		return "", err
	}
	return AlertSuccessText(page)
}
