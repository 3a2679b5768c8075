/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package query evaluates the small subset of the query language used
// against resource feeds:
//
//	SELECT * FROM <source> [[AS] <alias>] [WHERE <alias>.<path> = <value> [AND ...]]
//
// Values are @parameters, quoted strings, numbers, true, false or null.
// Keywords are case insensitive.
package query

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/unikorn-cloud/docdb/pkg/openapi"
)

var ErrInvalidQuery = errors.New("invalid query")

type tokenKind int

const (
	tokenIdentifier tokenKind = iota
	tokenParameter
	tokenString
	tokenNumber
	tokenSymbol
)

type token struct {
	kind  tokenKind
	value string
}

func isIdentifierRune(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

//nolint:cyclop
func tokenize(s string) ([]token, error) {
	var tokens []token

	runes := []rune(s)

	for i := 0; i < len(runes); {
		r := runes[i]

		switch {
		case unicode.IsSpace(r):
			i++
		case r == '*' || r == '=' || r == '.':
			tokens = append(tokens, token{kind: tokenSymbol, value: string(r)})
			i++
		case r == '\'' || r == '"':
			j := i + 1

			var value strings.Builder

			for ; j < len(runes) && runes[j] != r; j++ {
				if runes[j] == '\\' && j+1 < len(runes) {
					j++
				}

				value.WriteRune(runes[j])
			}

			if j >= len(runes) {
				return nil, fmt.Errorf("%w: unterminated string", ErrInvalidQuery)
			}

			tokens = append(tokens, token{kind: tokenString, value: value.String()})
			i = j + 1
		case r == '@':
			j := i + 1
			for j < len(runes) && isIdentifierRune(runes[j]) {
				j++
			}

			if j == i+1 {
				return nil, fmt.Errorf("%w: empty parameter name", ErrInvalidQuery)
			}

			tokens = append(tokens, token{kind: tokenParameter, value: string(runes[i:j])})
			i = j
		case r == '-' || unicode.IsDigit(r):
			j := i + 1
			for j < len(runes) && (unicode.IsDigit(runes[j]) || runes[j] == '.' || runes[j] == 'e' || runes[j] == 'E') {
				j++
			}

			tokens = append(tokens, token{kind: tokenNumber, value: string(runes[i:j])})
			i = j
		case isIdentifierRune(r):
			j := i + 1
			for j < len(runes) && isIdentifierRune(runes[j]) {
				j++
			}

			tokens = append(tokens, token{kind: tokenIdentifier, value: string(runes[i:j])})
			i = j
		default:
			return nil, fmt.Errorf("%w: unexpected character %q", ErrInvalidQuery, r)
		}
	}

	return tokens, nil
}

// Condition is a single equality predicate.
type Condition struct {
	// Path is the property path below the alias.
	Path []string
	// Value is what the property must equal after JSON decoding.
	Value any
}

// Query is a compiled query.
type Query struct {
	Source     string
	Alias      string
	Conditions []Condition
}

type parser struct {
	tokens     []token
	position   int
	parameters map[string]any
}

func (p *parser) peek() *token {
	if p.position >= len(p.tokens) {
		return nil
	}

	return &p.tokens[p.position]
}

func (p *parser) next() (*token, error) {
	t := p.peek()
	if t == nil {
		return nil, fmt.Errorf("%w: unexpected end of query", ErrInvalidQuery)
	}

	p.position++

	return t, nil
}

func (p *parser) keyword(keyword string) error {
	t, err := p.next()
	if err != nil {
		return err
	}

	if t.kind != tokenIdentifier || !strings.EqualFold(t.value, keyword) {
		return fmt.Errorf("%w: expected %s, got %q", ErrInvalidQuery, keyword, t.value)
	}

	return nil
}

func (p *parser) isKeyword(keyword string) bool {
	t := p.peek()

	return t != nil && t.kind == tokenIdentifier && strings.EqualFold(t.value, keyword)
}

func (p *parser) symbol(symbol string) error {
	t, err := p.next()
	if err != nil {
		return err
	}

	if t.kind != tokenSymbol || t.value != symbol {
		return fmt.Errorf("%w: expected %q, got %q", ErrInvalidQuery, symbol, t.value)
	}

	return nil
}

func (p *parser) identifier() (string, error) {
	t, err := p.next()
	if err != nil {
		return "", err
	}

	if t.kind != tokenIdentifier {
		return "", fmt.Errorf("%w: expected identifier, got %q", ErrInvalidQuery, t.value)
	}

	return t.value, nil
}

func (p *parser) value() (any, error) {
	t, err := p.next()
	if err != nil {
		return nil, err
	}

	switch t.kind {
	case tokenParameter:
		value, ok := p.parameters[t.value]
		if !ok {
			return nil, fmt.Errorf("%w: parameter %s is not defined", ErrInvalidQuery, t.value)
		}

		return normalize(value), nil
	case tokenString:
		return t.value, nil
	case tokenNumber:
		n, err := strconv.ParseFloat(t.value, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed number %q", ErrInvalidQuery, t.value)
		}

		return n, nil
	case tokenIdentifier:
		switch strings.ToLower(t.value) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		case "null":
			return nil, nil
		}
	case tokenSymbol:
	}

	return nil, fmt.Errorf("%w: expected value, got %q", ErrInvalidQuery, t.value)
}

func (p *parser) condition(alias string) (*Condition, error) {
	root, err := p.identifier()
	if err != nil {
		return nil, err
	}

	if root != alias {
		return nil, fmt.Errorf("%w: %q is not the query alias %q", ErrInvalidQuery, root, alias)
	}

	var path []string

	for {
		if err := p.symbol("."); err != nil {
			return nil, err
		}

		segment, err := p.identifier()
		if err != nil {
			return nil, err
		}

		path = append(path, segment)

		if t := p.peek(); t == nil || t.kind != tokenSymbol || t.value != "." {
			break
		}
	}

	if err := p.symbol("="); err != nil {
		return nil, err
	}

	value, err := p.value()
	if err != nil {
		return nil, err
	}

	return &Condition{Path: path, Value: value}, nil
}

// Compile parses a query and binds its parameters.
func Compile(spec *openapi.QuerySpec) (*Query, error) {
	if spec == nil || strings.TrimSpace(spec.Query) == "" {
		return nil, fmt.Errorf("%w: query is empty", ErrInvalidQuery)
	}

	tokens, err := tokenize(spec.Query)
	if err != nil {
		return nil, err
	}

	p := &parser{
		tokens:     tokens,
		parameters: map[string]any{},
	}

	for _, parameter := range spec.Parameters {
		if !strings.HasPrefix(parameter.Name, "@") {
			return nil, fmt.Errorf("%w: parameter name %q must start with @", ErrInvalidQuery, parameter.Name)
		}

		p.parameters[parameter.Name] = parameter.Value
	}

	if err := p.keyword("select"); err != nil {
		return nil, err
	}

	if err := p.symbol("*"); err != nil {
		return nil, err
	}

	if err := p.keyword("from"); err != nil {
		return nil, err
	}

	q := &Query{}

	if q.Source, err = p.identifier(); err != nil {
		return nil, err
	}

	q.Alias = q.Source

	if p.isKeyword("as") {
		p.position++
	}

	if t := p.peek(); t != nil && t.kind == tokenIdentifier && !strings.EqualFold(t.value, "where") {
		q.Alias = t.value
		p.position++
	}

	if p.peek() == nil {
		return q, nil
	}

	if err := p.keyword("where"); err != nil {
		return nil, err
	}

	for {
		condition, err := p.condition(q.Alias)
		if err != nil {
			return nil, err
		}

		q.Conditions = append(q.Conditions, *condition)

		if p.peek() == nil {
			break
		}

		if err := p.keyword("and"); err != nil {
			return nil, err
		}
	}

	return q, nil
}

// normalize maps Go values onto the types JSON decoding yields so they can
// be compared with documents.
func normalize(value any) any {
	switch t := value.(type) {
	case int:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case float32:
		return float64(t)
	}

	return value
}

func lookup(document map[string]any, path []string) (any, bool) {
	var current any = document

	for _, segment := range path {
		object, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}

		if current, ok = object[segment]; !ok {
			return nil, false
		}
	}

	return current, true
}

func equal(a, b any) bool {
	switch a.(type) {
	case nil, string, float64, bool:
	default:
		return false
	}

	switch b.(type) {
	case nil, string, float64, bool:
	default:
		return false
	}

	return a == b
}

// Matches evaluates the query against a JSON decoded document.
func (q *Query) Matches(document map[string]any) bool {
	for _, condition := range q.Conditions {
		value, ok := lookup(document, condition.Path)
		if !ok || !equal(value, condition.Value) {
			return false
		}
	}

	return true
}
