// Package browser provides playwright-backed sessions for scenario runs.
package browser

import (
	"errors"
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/networkteam/shopcheck/scenario"
)

// LaunchOptions configures the browser started by Launch.
type LaunchOptions struct {
	// Browser is chromium, firefox or webkit. Defaults to chromium.
	Browser  string
	Headless bool
	// SlowMo delays each browser operation by the given milliseconds.
	SlowMo float64
	// Install downloads the driver and the browser before starting.
	Install bool
}

// Launcher holds a running playwright driver and one launched browser.
type Launcher struct {
	PW      *playwright.Playwright
	Browser playwright.Browser
}

// Launch starts playwright and launches the configured browser.
func Launch(opts LaunchOptions) (*Launcher, error) {
	name := opts.Browser
	if name == "" {
		name = "chromium"
	}

	if opts.Install {
		if err := playwright.Install(&playwright.RunOptions{Browsers: []string{name}, Verbose: false}); err != nil {
			return nil, &scenario.EnvironmentError{Op: "installing playwright", Err: err}
		}
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, &scenario.EnvironmentError{Op: "starting playwright", Err: err}
	}

	var browserType playwright.BrowserType
	switch name {
	case "chromium":
		browserType = pw.Chromium
	case "firefox":
		browserType = pw.Firefox
	case "webkit":
		browserType = pw.WebKit
	default:
		_ = pw.Stop()
		return nil, &scenario.EnvironmentError{Op: "launching browser", Err: fmt.Errorf("unsupported browser %q", name)}
	}

	b, err := browserType.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		SlowMo:   playwright.Float(opts.SlowMo),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, &scenario.EnvironmentError{Op: "launching " + name, Err: err}
	}

	return &Launcher{PW: pw, Browser: b}, nil
}

// Close closes the browser and stops playwright.
func (l *Launcher) Close() error {
	return errors.Join(l.Browser.Close(), l.PW.Stop())
}
