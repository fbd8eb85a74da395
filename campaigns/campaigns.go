package campaigns

import "github.com/networkteam/shopcheck/scenario"

// All returns every campaign. Campaigns that change the shop configuration are
// not safe to run concurrently with each other.
func All(env *Env) []*scenario.Scenario {
	all := []*scenario.Scenario{
		QuickViewAddToCart(env),
		EmailAlertsUninstallAndDelete(env),
		FacetedSearchUninstallAndDelete(env),
	}
	all = append(all, FacetedSearchPaperTypeFilter(env)...)
	return append(all, HummingbirdAllProducts(env))
}
