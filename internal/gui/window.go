// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gui

import (
	"context"
	"strings"
	"time"

	"cogentcore.org/core/base/fileinfo/mimedata"
	"cogentcore.org/core/core"
	"cogentcore.org/core/events"
	"cogentcore.org/core/icons"
	"cogentcore.org/core/styles"
	"cogentcore.org/core/styles/units"
	"cogentcore.org/core/text/textcore"
	"cogentcore.org/core/text/textpos"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/latex2svg/pkg/types"
)

const (
	convertLabel = "Convert & copy"
	copiedLabel  = "Copied!"
	copiedFor    = 2 * time.Second
)

// Run opens the main window and blocks until it is closed. Conversions run
// on the event loop; the window does not respond while one is in progress.
func Run(conv Converter, base types.Params, log *logrus.Logger) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &session{conv: conv, base: base}

	b := core.NewBody("latex2svg")

	ed := textcore.NewEditor(b)
	ed.Lines.SetString(Placeholder)
	ed.Styler(func(st *styles.Style) {
		st.Min.Set(units.Em(32), units.Em(8))
		st.Grow.Set(1, 1)
	})

	bar := core.NewFrame(b)
	bar.Styler(func(st *styles.Style) {
		st.Direction = styles.Row
		st.Align.Items = styles.Center
	})

	core.NewText(bar).SetText("Font size")
	size := core.NewSpinner(bar).SetMin(1).SetStep(1).SetValue(types.DefaultFontSize)

	core.NewButton(bar).SetText("Clear").SetIcon(icons.Close).
		OnClick(func(e events.Event) {
			ed.Lines.SetString(Placeholder)
			ed.SetCursorShow(textpos.Pos{Line: 0, Char: placeholderCursor})
			ed.SetFocus()
		})

	copyButton := core.NewButton(bar).SetText(convertLabel).SetIcon(icons.ContentCopy)
	copyButton.OnClick(func(e events.Event) {
		code := strings.TrimSpace(ed.Lines.String())
		svg, err := s.convert(context.Background(), code, int(size.Value))
		if err != nil {
			log.WithError(err).Warn("conversion failed")
			core.MessageDialog(copyButton, errorMessage(code, err), "Conversion failed")
			return
		}
		if err := copyButton.Clipboard().Write(mimedata.NewText(svg)); err != nil {
			core.ErrorDialog(copyButton, err, "Could not copy SVG")
			return
		}
		copyButton.SetText(copiedLabel).Update()
		time.AfterFunc(copiedFor, func() {
			copyButton.AsyncLock()
			copyButton.SetText(convertLabel).Update()
			copyButton.AsyncUnlock()
		})
	})

	b.RunMainWindow()
}
