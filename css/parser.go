package css

import (
	"bytes"
	"maps"
	"strconv"
	"strings"
	"unicode"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS stylesheets into structured rules.
type Parser struct {
	log   *zap.Logger
	order int
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{
		Items:    make([]StylesheetItem, 0),
		Warnings: make([]string, 0),
	}
	p.order = 0

	// Log parsing start with source identifier if provided
	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	input := parse.NewInput(bytes.NewReader(data))
	parser := css.NewParser(input, false)

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			// End of input or error
			if parser.Err() != nil && parser.Err().Error() != "EOF" {
				p.log.Debug("CSS parse error", zap.Error(parser.Err()))
			}
			return sheet

		case css.BeginAtRuleGrammar:
			atRule := string(data)
			if atRule == "@media" {
				mq := p.parseMediaQueryFromTokens(parser.Values())
				rules := p.parseMediaBlockRules(parser, sheet)
				p.log.Debug("Parsed @media block", zap.String("query", mq.Raw), zap.Int("rules", len(rules)))
				sheet.Items = append(sheet.Items, StylesheetItem{
					MediaBlock: &MediaBlock{Query: mq, Rules: rules},
				})
				continue
			}
			// Skip other @-rules with blocks
			p.skipAtRuleBlock(parser)
			sheet.Warnings = append(sheet.Warnings, "unsupported at-rule: "+atRule)
			p.log.Debug("Skipping @-rule", zap.String("rule", atRule))

		case css.AtRuleGrammar:
			// Simple @-rule without block (e.g., @import, @charset)
			sheet.Warnings = append(sheet.Warnings, "unsupported at-rule: "+string(data))
			p.log.Debug("Skipping @-rule", zap.String("rule", string(data)))

		case css.BeginRulesetGrammar:
			selectors := p.parseSelectors(data, parser.Values())
			props := p.parseDeclarations(parser)
			for _, rule := range p.makeRules(selectors, props, sheet) {
				sheet.Items = append(sheet.Items, StylesheetItem{Rule: &rule})
			}
		}
	}
}

// makeRules creates rule for every supported selector of the group.
func (p *Parser) makeRules(selectors []string, props map[string]Value, sheet *Stylesheet) []Rule {
	var rules []Rule
	for _, selStr := range selectors {
		sel, ok := p.parseSelector(selStr, sheet)
		if !ok {
			continue
		}
		// Clone properties for each rule
		propsCopy := make(map[string]Value, len(props))
		maps.Copy(propsCopy, props)
		p.order++
		rules = append(rules, Rule{Selector: sel, Properties: propsCopy, Order: p.order})
	}
	return rules
}

// parseSelectors extracts selector strings from token data.
func (p *Parser) parseSelectors(data []byte, values []css.Token) []string {
	// Build full selector string from data and values
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	// Split by comma for grouped selectors
	var selectors []string
	for s := range strings.SplitSeq(sb.String(), ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// parseDeclarations parses property declarations until EndRulesetGrammar.
// Shorthands we care about are expanded into longhand properties, later
// declarations override earlier ones.
func (p *Parser) parseDeclarations(parser *css.Parser) map[string]Value {
	props := make(map[string]Value)

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return props

		case css.DeclarationGrammar:
			propName := strings.ToLower(string(data))
			values := parser.Values()
			if len(values) == 0 {
				continue
			}
			for name, val := range expandShorthand(propName, values) {
				props[name] = val
			}

		case css.CustomPropertyGrammar:
			// CSS custom properties (--var) - skip for now
			continue
		}
	}
}

// splitValues groups tokens into whitespace separated components. Function
// tokens keep their arguments.
func splitValues(tokens []css.Token) [][]css.Token {
	var (
		parts [][]css.Token
		cur   []css.Token
		depth int
	)
	for _, t := range tokens {
		switch t.TokenType {
		case css.FunctionToken, css.LeftParenthesisToken:
			depth++
		case css.RightParenthesisToken:
			depth--
		case css.WhitespaceToken:
			if depth == 0 {
				if len(cur) > 0 {
					parts = append(parts, cur)
					cur = nil
				}
				continue
			}
		}
		cur = append(cur, t)
	}
	if len(cur) > 0 {
		parts = append(parts, cur)
	}
	return parts
}

var sides = [4]string{"top", "right", "bottom", "left"}

// boxValues distributes 1-4 values over box sides the way margin and padding
// shorthands do.
func boxValues(vals []Value) (res [4]Value, ok bool) {
	switch len(vals) {
	case 1:
		return [4]Value{vals[0], vals[0], vals[0], vals[0]}, true
	case 2:
		return [4]Value{vals[0], vals[1], vals[0], vals[1]}, true
	case 3:
		return [4]Value{vals[0], vals[1], vals[2], vals[1]}, true
	case 4:
		return [4]Value{vals[0], vals[1], vals[2], vals[3]}, true
	}
	return res, false
}

// borderWidth picks width component of border shorthand, "none" yields zero.
func borderWidth(parts []Value) (Value, bool) {
	for _, v := range parts {
		if v.IsNumeric() {
			return v, true
		}
		switch v.Keyword {
		case "none", "hidden":
			return Value{Raw: "0"}, true
		case "thin":
			return Value{Raw: "1px", Value: 1, Unit: "px"}, true
		case "medium":
			return Value{Raw: "3px", Value: 3, Unit: "px"}, true
		case "thick":
			return Value{Raw: "5px", Value: 5, Unit: "px"}, true
		}
	}
	// style without width means medium
	for _, v := range parts {
		if v.Keyword != "" {
			return Value{Raw: "3px", Value: 3, Unit: "px"}, true
		}
	}
	return Value{}, false
}

var borderStyles = map[string]bool{
	"none": true, "hidden": true, "dotted": true, "dashed": true, "solid": true,
	"double": true, "groove": true, "ridge": true, "inset": true, "outset": true,
	"thin": true, "medium": true, "thick": true,
}

// borderColor picks color component of border or background shorthand.
func borderColor(parts []Value) (Value, bool) {
	for _, v := range parts {
		if v.IsNumeric() || v.Keyword == "" || borderStyles[v.Keyword] {
			continue
		}
		return v, true
	}
	return Value{}, false
}

func expandShorthand(name string, tokens []css.Token) map[string]Value {
	whole := parsePropertyValue(tokens)
	res := map[string]Value{name: whole}

	parts := splitValues(tokens)
	vals := make([]Value, 0, len(parts))
	for _, part := range parts {
		vals = append(vals, parsePropertyValue(part))
	}

	switch name {
	case "margin", "padding":
		if box, ok := boxValues(vals); ok {
			for i, side := range sides {
				res[name+"-"+side] = box[i]
			}
		}
	case "border":
		if w, ok := borderWidth(vals); ok {
			for _, side := range sides {
				res["border-"+side+"-width"] = w
			}
		}
		if c, ok := borderColor(vals); ok {
			for _, side := range sides {
				res["border-"+side+"-color"] = c
			}
		}
	case "border-top", "border-right", "border-bottom", "border-left":
		if w, ok := borderWidth(vals); ok {
			res[name+"-width"] = w
		}
		if c, ok := borderColor(vals); ok {
			res[name+"-color"] = c
		}
	case "background":
		// only plain colors are of any use for static rendering
		if c, ok := borderColor(vals); ok {
			res["background-color"] = c
		}
	case "border-width":
		if box, ok := boxValues(vals); ok {
			for i, side := range sides {
				res["border-"+side+"-width"] = box[i]
			}
		}
	case "gap":
		if len(vals) > 0 {
			res["row-gap"] = vals[0]
			res["column-gap"] = vals[len(vals)-1]
		}
	case "flex":
		// flex: <grow> [<shrink>] [<basis>] or keyword
		if len(vals) > 0 {
			switch {
			case vals[0].Keyword == "none":
				res["flex-grow"] = Value{Raw: "0"}
			case vals[0].Keyword == "auto":
				res["flex-grow"] = Value{Raw: "1", Value: 1}
			case vals[0].IsNumeric() && vals[0].Unit == "":
				res["flex-grow"] = vals[0]
			}
		}
	}
	return res
}

// parsePropertyValue converts CSS tokens to a Value.
func parsePropertyValue(tokens []css.Token) Value {
	if len(tokens) == 0 {
		return Value{}
	}

	// Build raw value string
	var rawParts []string
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			rawParts = append(rawParts, string(t.Data))
		} else if len(rawParts) > 0 {
			// Add space between non-whitespace tokens
			rawParts = append(rawParts, " ")
		}
	}
	raw := strings.TrimSpace(strings.Join(rawParts, ""))

	val := Value{Raw: raw}

	// Handle single token cases
	if len(tokens) == 1 || (len(tokens) == 2 && tokens[1].TokenType == css.WhitespaceToken) {
		t := tokens[0]
		switch t.TokenType {
		case css.DimensionToken:
			val.Value, val.Unit = parseDimension(string(t.Data))
		case css.PercentageToken:
			val.Value, _ = strconv.ParseFloat(strings.TrimSuffix(string(t.Data), "%"), 64)
			val.Unit = "%"
		case css.NumberToken:
			val.Value, _ = strconv.ParseFloat(string(t.Data), 64)
		case css.IdentToken:
			val.Keyword = strings.ToLower(string(t.Data))
		case css.StringToken:
			val.Keyword = unquote(string(t.Data))
		case css.HashToken:
			// Color value
			val.Keyword = string(t.Data)
		}
		return val
	}

	// Function tokens (rgb(), url(), etc.) and multi-value properties are
	// stored as keyword with raw value
	val.Keyword = raw
	return val
}

// parseDimension extracts numeric value and unit from dimension token.
func parseDimension(s string) (float64, string) {
	// Find where number ends
	numEnd := 0
	for i, r := range s {
		if unicode.IsDigit(r) || r == '.' || r == '-' || r == '+' {
			numEnd = i + 1
		} else {
			break
		}
	}

	if numEnd == 0 {
		return 0, ""
	}

	num, _ := strconv.ParseFloat(s[:numEnd], 64)
	unit := strings.ToLower(s[numEnd:])
	return num, unit
}

// parseSelector parses a single selector string into a Selector. Selectors
// which could never match a static document (dynamic pseudo-classes) or which
// we do not support are reported and dropped.
func (p *Parser) parseSelector(selStr string, sheet *Stylesheet) (Selector, bool) {
	selStr = strings.TrimSpace(selStr)

	// Check for unsupported selector patterns first
	if strings.ContainsAny(selStr, "+~>") {
		// Sibling/child combinators
		sheet.Warnings = append(sheet.Warnings, "unsupported combinator selector: "+selStr)
		p.log.Debug("Skipping combinator selector", zap.String("selector", selStr))
		return Selector{Raw: selStr}, false
	}
	if strings.Contains(selStr, "[") {
		// Attribute selector
		sheet.Warnings = append(sheet.Warnings, "unsupported attribute selector: "+selStr)
		p.log.Debug("Skipping attribute selector", zap.String("selector", selStr))
		return Selector{Raw: selStr}, false
	}

	parts := strings.Fields(selStr)
	if len(parts) == 0 {
		return Selector{Raw: selStr}, false
	}

	var sel *Selector
	for _, part := range parts {
		s, ok := p.parseCompoundSelector(part, sheet)
		if !ok {
			return Selector{Raw: selStr}, false
		}
		s.Ancestor = sel
		sel = &s
	}
	sel.Raw = selStr
	return *sel, true
}

// parseCompoundSelector parses element with optional classes and structural
// pseudo-class, e.g. "div.news-item.new:last-child".
func (p *Parser) parseCompoundSelector(selStr string, sheet *Stylesheet) (Selector, bool) {
	sel := Selector{Raw: selStr}

	remaining := selStr
	if before, pseudo, found := strings.Cut(selStr, ":"); found {
		remaining = before
		switch strings.ToLower(strings.TrimLeft(pseudo, ":")) {
		case "first-child":
			sel.Pseudo = PseudoFirstChild
		case "last-child":
			sel.Pseudo = PseudoLastChild
		default:
			// :hover, ::after and friends - never match static layout
			sheet.Warnings = append(sheet.Warnings, "unsupported pseudo selector: "+selStr)
			p.log.Debug("Skipping pseudo selector", zap.String("selector", selStr))
			return sel, false
		}
	}

	if remaining == "" {
		return sel, false
	}

	names := strings.Split(remaining, ".")
	sel.Element = strings.ToLower(names[0])
	for _, c := range names[1:] {
		if c != "" {
			sel.Classes = append(sel.Classes, c)
		}
	}
	return sel, sel.IsSimple()
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
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

// parseMediaQueryFromTokens parses a media query from CSS tokens.
// Handles queries like "screen", "(max-width: 480px)", "screen and
// (min-width: 300px) and (max-width: 900px)".
func (p *Parser) parseMediaQueryFromTokens(tokens []css.Token) MediaQuery {
	mq := MediaQuery{}

	// Build raw string for logging
	var rawParts []string
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			rawParts = append(rawParts, string(t.Data))
		} else if len(rawParts) > 0 {
			rawParts = append(rawParts, " ")
		}
	}
	mq.Raw = strings.TrimSpace(strings.Join(rawParts, ""))

	var (
		inParens bool
		feature  string
	)
	for _, t := range tokens {
		switch t.TokenType {
		case css.LeftParenthesisToken:
			inParens, feature = true, ""
		case css.RightParenthesisToken:
			if feature != "" {
				// feature without value, e.g. (color)
				mq.Unknown = true
			}
			inParens = false
		case css.IdentToken:
			id := strings.ToLower(string(t.Data))
			switch {
			case inParens && feature == "":
				feature = id
			case inParens:
				mq.Unknown = true
			case id == "and", id == "only":
			case id == "not":
				mq.Unknown = true
			default:
				mq.Type = id
			}
		case css.DimensionToken, css.NumberToken:
			if !inParens {
				mq.Unknown = true
				continue
			}
			v, unit := parseDimension(string(t.Data))
			if unit == "em" || unit == "rem" {
				v *= RootFontSize
			}
			switch feature {
			case "max-width":
				mq.MaxWidth = v
			case "min-width":
				mq.MinWidth = v
			default:
				mq.Unknown = true
			}
			feature = ""
		}
	}
	return mq
}

// parseMediaBlockRules parses rules inside an @media block and returns them.
func (p *Parser) parseMediaBlockRules(parser *css.Parser, sheet *Stylesheet) []Rule {
	var rules []Rule

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndAtRuleGrammar:
			return rules

		case css.BeginRulesetGrammar:
			selectors := p.parseSelectors(data, parser.Values())
			props := p.parseDeclarations(parser)
			rules = append(rules, p.makeRules(selectors, props, sheet)...)
		}
	}
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
