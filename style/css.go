// SPDX-License-Identifier: Unlicense OR MIT

package style

import (
	"bytes"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"

	"github.com/vog/stll/stllerr"
)

// ParseCSS tokenizes src with tdewolff/parse/v2/css and feeds every
// ruleset's selector/declaration pairs into sheet via AddRule, leaving
// selector syntax itself (tag, .class, descendant, attribute match) to
// Sheet's own parseSelector. At-rules (@media, @font-face, @import, ...)
// are skipped whole: spec.md's CSS subset has no at-rule support.
func ParseCSS(sheet *Sheet, src []byte) error {
	input := parse.NewInput(bytes.NewReader(src))
	p := css.NewParser(input, false)
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := p.Err(); err != nil && err.Error() != "EOF" {
				return stllerr.Wrap(stllerr.ParseError, "", err)
			}
			return nil
		case css.BeginAtRuleGrammar:
			skipAtRuleBlock(p)
		case css.BeginRulesetGrammar:
			selectors := splitSelectors(data, p.Values())
			decls := parseDeclarations(p)
			for _, sel := range selectors {
				for _, d := range decls {
					sheet.AddRule(sel, d.property, d.value)
				}
			}
		}
	}
}

// splitSelectors rebuilds the raw selector-group text preceding a ruleset's
// '{' and splits it on top-level commas.
func splitSelectors(data []byte, values []css.Token) []string {
	var b strings.Builder
	b.Write(data)
	for _, v := range values {
		b.Write(v.Data)
	}
	var out []string
	for _, s := range strings.Split(b.String(), ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// parseDeclarations reads property/value pairs until the ruleset's closing
// brace, joining each declaration's value tokens with every whitespace
// token written as a single space (the raw text EvalSize/EvalColor/
// EvalShadows expect).
func parseDeclarations(p *css.Parser) []declaration {
	var decls []declaration
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return decls
		case css.DeclarationGrammar:
			var b strings.Builder
			for _, v := range p.Values() {
				if v.TokenType == css.WhitespaceToken {
					b.WriteByte(' ')
					continue
				}
				b.Write(v.Data)
			}
			decls = append(decls, declaration{property: string(data), value: strings.TrimSpace(b.String())})
		}
	}
}

// skipAtRuleBlock discards a braced at-rule body, tracking nesting depth so
// a nested ruleset (as @media contains) doesn't end the skip early.
func skipAtRuleBlock(p *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := p.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}
