package css

import (
	"bytes"
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS stylesheets into ordered rules.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// ParseStylesheet parses CSS text with a no-op logger.
func ParseStylesheet(text string) *Stylesheet {
	return NewParser(nil).Parse([]byte(text))
}

// Parse parses CSS text into a Stylesheet. Malformed rules, unsupported
// selectors and @-rules are skipped and noted in Warnings.
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{
		Rules:    make([]Rule, 0),
		Warnings: make([]string, 0),
	}
	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	parser := css.NewParser(parse.NewInput(bytes.NewReader(data)), false)
	order := 0
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && err.Error() != "EOF" {
				p.log.Debug("CSS parse error", zap.Error(err))
			}
			return sheet

		case css.BeginAtRuleGrammar:
			p.log.Debug("Skipping @-rule", zap.String("rule", string(data)))
			skipBlock(parser)

		case css.AtRuleGrammar:
			p.log.Debug("Skipping @-rule", zap.String("rule", string(data)))

		case css.BeginRulesetGrammar:
			tokens := rulesetPrelude(data, parser.Values())
			selectors := p.parseSelectors(tokens, sheet)
			decls := p.parseDeclarations(parser)
			if len(selectors) == 0 {
				continue
			}
			for _, sel := range selectors {
				sheet.Rules = append(sheet.Rules, Rule{
					Selector:     sel,
					Declarations: append([]Declaration(nil), decls...),
					SourceOrder:  order,
				})
			}
			order++

		case css.QualifiedRuleGrammar:
			sheet.Warnings = append(sheet.Warnings, "rule without declaration block")
		}
	}
}

// rulesetPrelude returns the selector tokens of a rule set. Depending on
// the parser state the grammar data is either the opening brace or the
// first selector token, which may or may not be repeated in values.
func rulesetPrelude(data []byte, values []css.Token) []css.Token {
	if len(data) == 0 || string(data) == "{" {
		return values
	}
	if len(values) > 0 && bytes.Equal(values[0].Data, data) {
		return values
	}
	return append(lex(string(data)), values...)
}

func lex(raw string) []css.Token {
	lexer := css.NewLexer(parse.NewInputString(raw))
	var tokens []css.Token
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			return tokens
		}
		tokens = append(tokens, css.Token{TokenType: tt, Data: append([]byte(nil), data...)})
	}
}

// ParseInlineStyle parses the contents of a style attribute.
func ParseInlineStyle(attr string) []Declaration {
	parser := css.NewParser(parse.NewInputString(attr), true)
	decls := make([]Declaration, 0)
	for {
		gt, _, data := parser.Next()
		if gt == css.ErrorGrammar {
			return decls
		}
		if gt == css.DeclarationGrammar {
			decls = appendDeclaration(decls, string(data), parser.Values())
		}
	}
}

// ParseValue parses a single property value such as "10px", "#fff" or "auto".
func ParseValue(raw string) Value {
	components := splitComponents(lex(raw))
	if len(components) == 0 {
		return Keyword("")
	}
	if len(components) > 1 {
		return Keyword(strings.ToLower(strings.TrimSpace(raw)))
	}
	return componentValue(components[0])
}

// ParseValues parses a space separated list of component values.
func ParseValues(raw string) []Value {
	components := splitComponents(lex(raw))
	values := make([]Value, len(components))
	for i, c := range components {
		values[i] = componentValue(c)
	}
	return values
}

func (p *Parser) parseDeclarations(parser *css.Parser) []Declaration {
	decls := make([]Declaration, 0)
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return decls
		case css.DeclarationGrammar:
			decls = appendDeclaration(decls, string(data), parser.Values())
		case css.CustomPropertyGrammar:
			p.log.Debug("Skipping custom property", zap.String("name", string(data)))
		}
	}
}

// appendDeclaration converts one declaration's tokens and appends its
// longhand expansion.
func appendDeclaration(decls []Declaration, name string, tokens []css.Token) []Declaration {
	name = strings.ToLower(strings.TrimSpace(name))
	components := splitComponents(stripImportant(tokens))
	if name == "" || len(components) == 0 {
		return decls
	}
	values := make([]Value, len(components))
	for i, c := range components {
		values[i] = componentValue(c)
	}
	return append(decls, expandShorthand(name, values)...)
}

// stripImportant drops a trailing "!important"; importance is not modelled.
func stripImportant(tokens []css.Token) []css.Token {
	for i, t := range tokens {
		if t.TokenType == css.DelimToken && string(t.Data) == "!" {
			return tokens[:i]
		}
	}
	return tokens
}

// splitComponents groups value tokens into whitespace-separated component
// values. A function token absorbs everything up to its closing parenthesis.
func splitComponents(tokens []css.Token) [][]css.Token {
	var (
		out   [][]css.Token
		cur   []css.Token
		depth int
	)
	flush := func() {
		if len(cur) > 0 {
			out = append(out, cur)
			cur = nil
		}
	}
	for _, t := range tokens {
		if depth > 0 {
			cur = append(cur, t)
			switch t.TokenType {
			case css.FunctionToken, css.LeftParenthesisToken:
				depth++
			case css.RightParenthesisToken:
				depth--
				if depth == 0 {
					flush()
				}
			}
			continue
		}
		switch t.TokenType {
		case css.WhitespaceToken, css.CommaToken, css.CommentToken:
			flush()
		case css.FunctionToken:
			flush()
			cur = append(cur, t)
			depth = 1
		default:
			flush()
			cur = append(cur, t)
		}
	}
	flush()
	return out
}

// componentValue converts one component value to a Value. Anything that
// is not a recognizable length or color stays a keyword.
func componentValue(tokens []css.Token) Value {
	var raw strings.Builder
	for _, t := range tokens {
		raw.Write(t.Data)
	}
	text := raw.String()

	t := tokens[0]
	switch t.TokenType {
	case css.DimensionToken:
		num, unit := splitDimension(string(t.Data))
		if u, ok := ParseUnit(unit); ok {
			return Length(num, u)
		}
	case css.PercentageToken:
		if num, err := strconv.ParseFloat(strings.TrimSuffix(string(t.Data), "%"), 64); err == nil {
			return Length(num, UnitPercent)
		}
	case css.NumberToken:
		// Unitless numbers are read as pixels.
		if num, err := strconv.ParseFloat(string(t.Data), 64); err == nil {
			return Px(num)
		}
	case css.HashToken, css.FunctionToken:
		if c, ok := ParseColor(text); ok {
			return ColorValue(c)
		}
	case css.IdentToken:
		kw := strings.ToLower(text)
		if c, ok := namedColors[kw]; ok {
			return ColorValue(c)
		}
		return Keyword(kw)
	case css.StringToken:
		return Keyword(strings.Trim(text, `"'`))
	}
	return Keyword(strings.ToLower(text))
}

func splitDimension(s string) (float64, string) {
	end := 0
	for i, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || ((r == '-' || r == '+') && i == 0) {
			end = i + 1
			continue
		}
		if (r == 'e' || r == 'E') && i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '9' {
			end = i + 1
			continue
		}
		break
	}
	num, _ := strconv.ParseFloat(s[:end], 64)
	return num, s[end:]
}

// parseSelectors parses a comma separated selector list. Groups that use
// combinators, attributes or pseudo-classes are dropped with a warning.
func (p *Parser) parseSelectors(tokens []css.Token, sheet *Stylesheet) []SimpleSelector {
	var (
		selectors []SimpleSelector
		group     []css.Token
	)
	finish := func() {
		sel, ok := parseSimpleSelector(group)
		raw := tokensString(group)
		switch {
		case !ok:
			sheet.Warnings = append(sheet.Warnings, "unsupported selector: "+raw)
			p.log.Debug("Skipping selector", zap.String("selector", raw))
		case sel.IsEmpty():
			sheet.Warnings = append(sheet.Warnings, "empty selector")
		default:
			selectors = append(selectors, sel)
		}
		group = nil
	}
	for _, t := range tokens {
		if t.TokenType == css.CommaToken {
			finish()
			continue
		}
		group = append(group, t)
	}
	finish()
	return selectors
}

func parseSimpleSelector(tokens []css.Token) (SimpleSelector, bool) {
	tokens = trimWhitespace(tokens)
	var sel SimpleSelector
	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		switch t.TokenType {
		case css.IdentToken:
			// A type selector must lead the compound.
			if i != 0 {
				return sel, false
			}
			sel.Tag = string(t.Data)
		case css.HashToken:
			if sel.ID != "" {
				return sel, false
			}
			sel.ID = strings.TrimPrefix(string(t.Data), "#")
		case css.DelimToken:
			switch string(t.Data) {
			case ".":
				if i+1 >= len(tokens) || tokens[i+1].TokenType != css.IdentToken {
					return sel, false
				}
				sel.Classes = append(sel.Classes, string(tokens[i+1].Data))
				i++
			case "*":
				if i != 0 {
					return sel, false
				}
				sel.Universal = true
			default:
				return sel, false
			}
		default:
			return sel, false
		}
	}
	if sel.Tag != "" || sel.ID != "" || len(sel.Classes) > 0 {
		sel.Universal = false
	}
	return sel, true
}

func trimWhitespace(tokens []css.Token) []css.Token {
	for len(tokens) > 0 && tokens[0].TokenType == css.WhitespaceToken {
		tokens = tokens[1:]
	}
	for len(tokens) > 0 && tokens[len(tokens)-1].TokenType == css.WhitespaceToken {
		tokens = tokens[:len(tokens)-1]
	}
	return tokens
}

func tokensString(tokens []css.Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.Write(t.Data)
	}
	return strings.TrimSpace(sb.String())
}

// skipBlock skips tokens until the matching end of an @-rule block.
func skipBlock(parser *css.Parser) {
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
