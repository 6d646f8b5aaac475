package css

import (
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"
	"unicode"
)

// Value represents a parsed CSS property value.
type Value struct {
	Raw     string  // Original CSS value string (e.g., "1.2em", "bold", "#ff0000")
	Value   float64 // Numeric value if applicable
	Unit    string  // Unit if applicable: "em", "px", "%", "pt", etc.
	Keyword string  // Keyword if applicable: "bold", "flex", "none", etc.
}

// IsNumeric returns true if the value has a numeric component.
// This includes explicit zero values like "0" or "0px".
func (v Value) IsNumeric() bool {
	// If there's a unit, it's definitely numeric
	if v.Unit != "" {
		return true
	}
	// Non-zero value with no keyword is numeric
	if v.Value != 0 && v.Keyword == "" {
		return true
	}
	// Check if Raw looks like a numeric value (handles "0" case)
	if v.Raw != "" && v.Keyword == "" {
		firstChar := rune(v.Raw[0])
		if unicode.IsDigit(firstChar) || firstChar == '.' || firstChar == '-' || firstChar == '+' {
			return true
		}
	}
	return false
}

// IsKeyword returns true if the value is a keyword (no numeric component).
func (v Value) IsKeyword() bool {
	return v.Keyword != "" && v.Unit == ""
}

// Length resolves value to pixels. Relative units are resolved against em
// (current font size) and base (containing block size, for percentages).
// Unitless numbers are treated as pixels. ok is false for keywords.
func (v Value) Length(em, base float64) (px float64, ok bool) {
	if !v.IsNumeric() {
		return 0, false
	}
	switch v.Unit {
	case "", "px":
		return v.Value, true
	case "em":
		return v.Value * em, true
	case "rem":
		return v.Value * RootFontSize, true
	case "%":
		return v.Value * base / 100, true
	case "pt":
		return v.Value * 4 / 3, true
	default:
		return 0, false
	}
}

// RootFontSize is font size of document root in pixels.
const RootFontSize = 16

// Pseudo represents structural pseudo-class a rule is restricted to.
type Pseudo int

const (
	PseudoNone       Pseudo = iota // No pseudo-class
	PseudoFirstChild               // :first-child
	PseudoLastChild                // :last-child
)

// String returns the CSS representation of the pseudo-class.
func (p Pseudo) String() string {
	switch p {
	case PseudoFirstChild:
		return ":first-child"
	case PseudoLastChild:
		return ":last-child"
	default:
		return ""
	}
}

// Selector represents a parsed CSS selector with its components.
type Selector struct {
	Raw      string    // Original selector string
	Element  string    // Element name (e.g., "div", "*") or empty for class-only
	Classes  []string  // Class names without dots, all must match
	Pseudo   Pseudo    // Structural pseudo-class if present
	Ancestor *Selector // Ancestor selector for descendant selectors (e.g., ".a .b" -> Ancestor is ".a")
}

// IsSimple returns true if this is a simple selector (element, classes or both).
func (s Selector) IsSimple() bool {
	return s.Element != "" || len(s.Classes) > 0
}

// IsDescendant returns true if this is a descendant selector.
func (s Selector) IsDescendant() bool {
	return s.Ancestor != nil
}

// Specificity returns selector weight as used by the cascade: classes and
// pseudo-classes count 10 each, type selectors 1.
func (s Selector) Specificity() int {
	n := 10 * len(s.Classes)
	if s.Pseudo != PseudoNone {
		n += 10
	}
	if s.Element != "" && s.Element != "*" {
		n++
	}
	if s.Ancestor != nil {
		n += s.Ancestor.Specificity()
	}
	return n
}

// Node is an element selectors are matched against.
type Node interface {
	Tag() string
	HasClass(name string) bool
	IsFirstChild() bool
	IsLastChild() bool
	// ParentNode returns nil for root.
	ParentNode() Node
}

// matchCompound checks selector without its ancestor part.
func (s *Selector) matchCompound(n Node) bool {
	if s.Element != "" && s.Element != "*" && !strings.EqualFold(s.Element, n.Tag()) {
		return false
	}
	for _, c := range s.Classes {
		if !n.HasClass(c) {
			return false
		}
	}
	switch s.Pseudo {
	case PseudoFirstChild:
		return n.IsFirstChild()
	case PseudoLastChild:
		return n.IsLastChild()
	}
	return true
}

// Matches reports whether selector applies to the node.
func (s *Selector) Matches(n Node) bool {
	if !s.matchCompound(n) {
		return false
	}
	if s.Ancestor == nil {
		return true
	}
	for p := n.ParentNode(); p != nil; p = p.ParentNode() {
		if s.Ancestor.Matches(p) {
			return true
		}
	}
	return false
}

// Rule represents a single CSS rule (selector + properties).
type Rule struct {
	Selector   Selector         // Parsed selector
	Properties map[string]Value // Property name -> value, shorthands expanded
	Order      int              // Position in source, later rules win on equal specificity
}

// GetProperty returns the value for a property, or empty Value if not found.
func (r Rule) GetProperty(name string) (Value, bool) {
	v, ok := r.Properties[name]
	return v, ok
}

// MediaQuery represents a parsed @media query condition. Only width
// features are evaluated, anything else never matches.
type MediaQuery struct {
	Raw      string  // Original media query string
	Type     string  // Media type ("screen", "all", "print") or empty
	MinWidth float64 // 0 when absent
	MaxWidth float64 // 0 when absent
	Unknown  bool    // query has features we do not understand
}

// Evaluate returns true if this media query matches viewport of given width.
func (mq MediaQuery) Evaluate(width float64) bool {
	if mq.Unknown {
		return false
	}
	switch mq.Type {
	case "", "all", "screen":
	default:
		return false
	}
	if mq.MinWidth > 0 && width < mq.MinWidth {
		return false
	}
	if mq.MaxWidth > 0 && width > mq.MaxWidth {
		return false
	}
	return true
}

// MediaBlock represents a @media block with its query and nested rules.
type MediaBlock struct {
	Query MediaQuery
	Rules []Rule
}

// StylesheetItem is a single top-level item in a stylesheet.
// Exactly one of Rule or MediaBlock is non-nil.
type StylesheetItem struct {
	Rule       *Rule       // A plain rule (selector + properties)
	MediaBlock *MediaBlock // A @media block containing nested rules
}

// Stylesheet represents a parsed CSS stylesheet.
type Stylesheet struct {
	Items    []StylesheetItem // All top-level items in source order
	Warnings []string         // Warnings for unsupported features
}

// RulesBySelector returns all top-level rules matching the given selector string.
func (s *Stylesheet) RulesBySelector(selector string) []Rule {
	var matches []Rule
	for _, item := range s.Items {
		if item.Rule != nil && item.Rule.Selector.Raw == selector {
			matches = append(matches, *item.Rule)
		}
	}
	return matches
}

// Cascade returns rules applicable to viewport of given width ordered from
// the weakest to the strongest.
func (s *Stylesheet) Cascade(width float64) *Cascade {
	var rules []Rule
	for _, item := range s.Items {
		switch {
		case item.Rule != nil:
			rules = append(rules, *item.Rule)
		case item.MediaBlock != nil && item.MediaBlock.Query.Evaluate(width):
			rules = append(rules, item.MediaBlock.Rules...)
		}
	}
	slices.SortStableFunc(rules, func(a, b Rule) int {
		if d := a.Selector.Specificity() - b.Selector.Specificity(); d != 0 {
			return d
		}
		return a.Order - b.Order
	})
	return &Cascade{rules: rules}
}

// Cascade is ordered set of rules for a particular viewport.
type Cascade struct {
	rules []Rule
}

// Compute returns properties declared for the node, inheritance is left to
// the caller.
func (c *Cascade) Compute(n Node) map[string]Value {
	props := make(map[string]Value)
	for i := range c.rules {
		if c.rules[i].Selector.Matches(n) {
			for k, v := range c.rules[i].Properties {
				props[k] = v
			}
		}
	}
	return props
}

// WriteTo writes the stylesheet to w in source order, implementing io.WriterTo.
// Property order within a rule is sorted alphabetically for deterministic output.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i, item := range s.Items {
		var n int
		var err error

		switch {
		case item.MediaBlock != nil:
			n, err = writeMediaBlock(w, item.MediaBlock)
		case item.Rule != nil:
			n, err = writeRule(w, item.Rule, "")
		}

		total += int64(n)
		if err != nil {
			return total, err
		}

		// Add blank line between items (except after last)
		if i < len(s.Items)-1 {
			n, err = fmt.Fprint(w, "\n")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// writeRule writes a single CSS rule to w.
func writeRule(w io.Writer, rule *Rule, indent string) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "%s%s {\n", indent, rule.Selector.Raw)
	total += n
	if err != nil {
		return total, err
	}

	// Sort property names for deterministic output
	names := make([]string, 0, len(rule.Properties))
	for name := range rule.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		n, err = fmt.Fprintf(w, "%s  %s: %s;\n", indent, name, rule.Properties[name].Raw)
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err = fmt.Fprintf(w, "%s}\n", indent)
	total += n
	return total, err
}

// writeMediaBlock writes an @media block to w.
func writeMediaBlock(w io.Writer, mb *MediaBlock) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "@media %s {\n", mb.Query.Raw)
	total += n
	if err != nil {
		return total, err
	}

	for i := range mb.Rules {
		n, err = writeRule(w, &mb.Rules[i], "  ")
		total += n
		if err != nil {
			return total, err
		}
	}

	n, err = fmt.Fprint(w, "}\n")
	total += n
	return total, err
}
