// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"strconv"
	"strings"

	"github.com/pdiddy/latex2svg/pkg/types"
)

// Assemble fills the {{ preamble }}, {{ fontsize }} and {{ code }} markers
// of p.Template. Substitution is a single pass, so marker text inside the
// preamble or the code is left alone. The code is not validated; malformed
// LaTeX surfaces as a typesetting failure.
func Assemble(code string, p types.Params) string {
	return strings.NewReplacer(
		"{{ preamble }}", p.Preamble,
		"{{ fontsize }}", strconv.Itoa(p.FontSize),
		"{{ code }}", code,
	).Replace(p.Template)
}
