package views

import "github.com/networkteam/shopcheck/scenario"

var statusClasses = map[scenario.Status]string{
	scenario.StatusPassed:  "badge-success",
	scenario.StatusFailed:  "badge-error",
	scenario.StatusAborted: "badge-warning",
	scenario.StatusSkipped: "badge-outline",
}

func statusClass(status scenario.Status) string {
	if class, ok := statusClasses[status]; ok {
		return class
	}
	return "badge-secondary"
}

const badgeCSS = `
.badge { display: inline-flex; align-items: center; border-radius: 9999px; border: 1px solid transparent; padding: 0.1rem 0.6rem; font: 600 0.75rem monospace; }
.badge-secondary { background: #e5e5e5; color: #000; }
.badge-success { background: #16a34a; color: #fff; }
.badge-warning { background: #fb923c; color: #fff; }
.badge-error { background: #ef4444; color: #fff; }
.badge-outline { border-color: #d4d4d4; color: #404040; }
`
