package views

//go:generate go run github.com/a-h/templ/cmd/templ generate

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/a-h/templ"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

type optionsKey struct{}

// Options are the render options passed through the context.
type Options struct {
	// PathPrefix is where the report handler is mounted, empty for static files.
	PathPrefix string
	Title      string
}

// WithOptions stores render options in ctx.
func WithOptions(ctx context.Context, opts Options) context.Context {
	return context.WithValue(ctx, optionsKey{}, opts)
}

func optionsFromContext(ctx context.Context) Options {
	opts, _ := ctx.Value(optionsKey{}).(Options)
	if opts.Title == "" {
		opts.Title = "shopcheck"
	}
	return opts
}

func formatDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "-"
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return d.Round(time.Second).String()
	}
}

// MaxSnapshotBytes caps how much of a page snapshot is highlighted.
const MaxSnapshotBytes = 256 << 10

var snapshotChroma = sync.OnceValues(func() (*html.Formatter, *chroma.Style) {
	style := styles.Get("github")
	if style == nil {
		style = styles.Fallback
	}
	return html.New(html.WithClasses(true), html.WithLineNumbers(true), html.TabWidth(2)), style
})

// Snapshot renders the HTML of a failed page with syntax highlighting.
func Snapshot(content string) templ.Component {
	truncated := len(content) > MaxSnapshotBytes
	if truncated {
		content = truncateUTF8(content, MaxSnapshotBytes)
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		lexer := lexers.Get("html")
		if lexer == nil {
			lexer = lexers.Fallback
		}
		iterator, err := chroma.Coalesce(lexer).Tokenise(nil, content)
		if err != nil {
			return fmt.Errorf("tokenising snapshot: %w", err)
		}
		formatter, style := snapshotChroma()
		if err := formatter.Format(w, style, iterator); err != nil {
			return err
		}
		if truncated {
			_, err = fmt.Fprintf(w, `<p class="truncated">Snapshot truncated to %d KiB</p>`, MaxSnapshotBytes>>10)
		}
		return err
	})
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// pageStyles writes the style element of the report page.
func pageStyles() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<style>"+badgeCSS+pageCSS); err != nil {
			return err
		}
		formatter, style := snapshotChroma()
		if err := formatter.WriteCSS(w, style); err != nil {
			return err
		}
		_, err := io.WriteString(w, ".chroma { white-space: pre-wrap; max-height: 30rem; overflow: auto; }\n</style>")
		return err
	})
}
