package cli

import (
	"io"
	"strings"

	errfmt "github.com/robinvdvleuten/ledger-import/errors"
	"github.com/robinvdvleuten/ledger-import/formatter"
	"github.com/robinvdvleuten/ledger-import/output"
)

// ErrorRenderer renders errors with terminal styling and source context.
type ErrorRenderer struct {
	styles *output.Styles
	text   *errfmt.TextFormatter
}

// NewErrorRenderer creates a renderer styled for w. Source, when non-nil, is
// the journal the errors point into.
func NewErrorRenderer(w io.Writer, source []byte, f *formatter.Formatter) *ErrorRenderer {
	var opts []errfmt.TextFormatterOption
	if source != nil {
		opts = append(opts, errfmt.WithSource(source))
	}
	return &ErrorRenderer{
		styles: output.NewStyles(w),
		text:   errfmt.NewTextFormatter(f, opts...),
	}
}

// Render formats a single error. The message is styled; the context lines
// below it are dimmed, except for the offending line.
func (r *ErrorRenderer) Render(err error) string {
	message, context, found := strings.Cut(r.text.Format(err), "\n")
	if !found {
		return r.styles.Error(message)
	}

	lines := strings.Split(context, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, " > "):
			lines[i] = r.styles.Error(line)
		case line != "":
			lines[i] = r.styles.Dim(line)
		}
	}
	return r.styles.Error(message) + "\n" + strings.Join(lines, "\n")
}

// RenderAll formats multiple errors, separating them with blank lines.
func (r *ErrorRenderer) RenderAll(errs []error) string {
	if len(errs) == 0 {
		return ""
	}

	var buf strings.Builder
	for i, err := range errs {
		buf.WriteString(r.Render(err))

		if i < len(errs)-1 {
			buf.WriteString("\n\n")
		}
	}

	return buf.String()
}
