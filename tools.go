//go:build tools

package shopcheck

// Pins the templ generator for "go run github.com/a-h/templ/cmd/templ generate".
import (
	_ "github.com/a-h/templ/cmd/templ"
)
