// Package campaigns contains the end-to-end scenarios of the shop and the
// common scenarios they use as pre- and post-conditions.
package campaigns

import (
	"time"

	"github.com/networkteam/shopcheck/data"
	"github.com/networkteam/shopcheck/fileutil"
	"github.com/networkteam/shopcheck/internal/config"
	"github.com/networkteam/shopcheck/journal"
	"github.com/networkteam/shopcheck/pages"
)

// ModuleArchive is the file name module downloads are stored under.
const ModuleArchive = "module.zip"

// ThemeArchive is the file name theme downloads are stored under.
const ThemeArchive = "theme.zip"

const downloadTimeout = 3 * time.Minute

// Env carries the configuration and page objects shared by all campaigns.
type Env struct {
	Config   *config.Config
	Employee data.Employee
	// Downloader fetches release archives. Requests are logged with the running step.
	Downloader *fileutil.Downloader

	Login pages.LoginPage

	Home          pages.HomePage
	Category      pages.CategoryPage
	Product       pages.ProductPage
	QuickView     pages.QuickViewModal
	SearchResults pages.SearchResultsPage

	HummingbirdHome     pages.HomePage
	HummingbirdCategory pages.CategoryPage
}

// NewEnv creates the campaign environment from cfg.
func NewEnv(cfg *config.Config) *Env {
	return &Env{
		Config:     cfg,
		Employee:   data.DefaultEmployee(cfg),
		Downloader: fileutil.NewDownloader(journal.Transport(nil)),

		Login: pages.NewLoginPage(cfg.BO.URL),

		Home:          pages.NewHomePage(cfg.FO.URL, pages.Classic),
		Category:      pages.CategoryPage{Theme: pages.Classic},
		Product:       pages.ProductPage{Theme: pages.Classic},
		QuickView:     pages.QuickViewModal{Theme: pages.Classic},
		SearchResults: pages.SearchResultsPage{Theme: pages.Classic},

		HummingbirdHome:     pages.NewHomePage(cfg.FO.URL, pages.Hummingbird),
		HummingbirdCategory: pages.CategoryPage{Theme: pages.Hummingbird},
	}
}

// DownloadPath returns where an archive is downloaded to.
func (e *Env) DownloadPath(name string) string {
	return e.Config.DownloadPath(name)
}
