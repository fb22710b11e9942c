package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"

	errfmt "github.com/robinvdvleuten/ledger-import/errors"
	"github.com/robinvdvleuten/ledger-import/parser"
)

const brokenSource = "account Assets:Cash\n\n2016/03/01 Coffee\n    Assets:Cash  $abc\n\n"

func parseFailure(t *testing.T) error {
	t.Helper()
	_, err := parser.Parse(context.Background(), "broken.ledger", []byte(brokenSource))
	assert.Error(t, err)
	return err
}

func TestErrorRendererMatchesTextFormatter(t *testing.T) {
	err := parseFailure(t)

	// Writers that are not terminals get no styling.
	var buf bytes.Buffer
	renderer := NewErrorRenderer(&buf, []byte(brokenSource), nil)

	expected := errfmt.NewTextFormatter(nil, errfmt.WithSource([]byte(brokenSource))).Format(err)
	assert.Equal(t, expected, renderer.Render(err))
	assert.Contains(t, renderer.Render(err), " >     Assets:Cash  $abc")
}

func TestErrorRendererWithoutSource(t *testing.T) {
	var buf bytes.Buffer
	renderer := NewErrorRenderer(&buf, nil, nil)

	assert.Equal(t, "boom", renderer.Render(errors.New("boom")))
	assert.Contains(t, renderer.Render(parseFailure(t)), "\n\n       Assets:Cash  $abc\n")
}

func TestErrorRendererRenderAll(t *testing.T) {
	var buf bytes.Buffer
	renderer := NewErrorRenderer(&buf, nil, nil)

	assert.Equal(t, "", renderer.RenderAll(nil))
	assert.Equal(t, "first\n\nsecond", renderer.RenderAll([]error{errors.New("first"), errors.New("second")}))
}
