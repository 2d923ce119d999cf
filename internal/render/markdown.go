package render

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"

	foundationerrors "git.home.luguber.info/inful/glossgen/internal/foundation/errors"
)

// Markdown converts the optional index introduction to HTML. Raw HTML in the
// source is passed through; the intro is authored by the site owner.
func Markdown(src []byte) (string, error) {
	md := goldmark.New(goldmark.WithRendererOptions(html.WithUnsafe()))
	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		return "", foundationerrors.WrapError(err, foundationerrors.CategoryValidation, "convert intro markdown").
			Fatal().
			Build()
	}
	return string(bytes.TrimSpace(buf.Bytes())), nil
}
