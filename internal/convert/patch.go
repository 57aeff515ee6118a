// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"fmt"
	"os"

	"github.com/beevik/etree"
)

// Patch sets width, height and vertical-align on the root element of an
// SVG document, in em, and drops all comments. Everything else is written
// back as parsed. Patching twice with the same metrics is a no-op.
func Patch(svg []byte, m Metrics) ([]byte, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(svg); err != nil {
		return nil, fmt.Errorf("parsing SVG: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, errors.New("parsing SVG: no root element")
	}

	stripComments(&doc.Element)

	root.CreateAttr("width", fmt.Sprintf("%.6fem", m.Width))
	root.CreateAttr("height", fmt.Sprintf("%.6fem", m.Height))
	root.CreateAttr("style", fmt.Sprintf("vertical-align:%.6fem", m.Baseline()))

	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("writing SVG: %w", err)
	}
	return out, nil
}

// PatchFile applies Patch to the SVG at path, rewriting it in place.
func PatchFile(path string, m Metrics) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	out, err := Patch(data, m)
	if err != nil {
		return fmt.Errorf("patching %s: %w", path, err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func stripComments(e *etree.Element) {
	for _, tok := range append([]etree.Token(nil), e.Child...) {
		switch t := tok.(type) {
		case *etree.Comment:
			e.RemoveChild(t)
		case *etree.Element:
			stripComments(t)
		}
	}
}
