package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Term splits assets and liabilities by maturity.
type Term string

const (
	TermCurrent    Term = "current"
	TermNonCurrent Term = "non_current"
)

// ParseTerm normalizes a term label.
func ParseTerm(s string) (Term, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "current", "corriente":
		return TermCurrent, nil
	case "non_current", "non-current", "noncurrent", "no_corriente", "no corriente":
		return TermNonCurrent, nil
	default:
		return "", fmt.Errorf("invalid term %q", s)
	}
}

// DefaultPrefixTypes is the chart numbering used when no table is configured.
var DefaultPrefixTypes = map[string]AccountType{
	"1": AccountTypeAsset,
	"2": AccountTypeLiability,
	"3": AccountTypeEquity,
	"4": AccountTypeExpense,
	"5": AccountTypeIncome,
	"6": AccountTypeCost,
}

type prefixRule[T any] struct {
	prefix string
	value  T
}

// Classifier resolves account types and terms from explicit prefix tables.
// The longest matching prefix wins. Catalog types always take precedence.
type Classifier struct {
	types []prefixRule[AccountType]
	terms []prefixRule[Term]
}

// NewClassifier builds a classifier from prefix tables. A nil types table
// falls back to DefaultPrefixTypes; a nil terms table disables the
// current/non-current split.
func NewClassifier(types map[string]AccountType, terms map[string]Term) *Classifier {
	if types == nil {
		types = DefaultPrefixTypes
	}

	c := &Classifier{}
	for p, t := range types {
		c.types = append(c.types, prefixRule[AccountType]{prefix: p, value: t})
	}
	for p, t := range terms {
		c.terms = append(c.terms, prefixRule[Term]{prefix: p, value: t})
	}

	sortRules(c.types)
	sortRules(c.terms)

	return c
}

// ParsePrefixTable converts a raw prefix table, as read from configuration,
// into typed classifier tables.
func ParsePrefixTable(types, terms map[string]string) (map[string]AccountType, map[string]Term, error) {
	var typeTable map[string]AccountType
	if len(types) > 0 {
		typeTable = make(map[string]AccountType, len(types))
		for prefix, raw := range types {
			t, err := ParseAccountType(raw)
			if err != nil {
				return nil, nil, fmt.Errorf("prefix %q: %w", prefix, err)
			}
			typeTable[strings.TrimSpace(prefix)] = t
		}
	}

	var termTable map[string]Term
	if len(terms) > 0 {
		termTable = make(map[string]Term, len(terms))
		for prefix, raw := range terms {
			t, err := ParseTerm(raw)
			if err != nil {
				return nil, nil, fmt.Errorf("prefix %q: %w", prefix, err)
			}
			termTable[strings.TrimSpace(prefix)] = t
		}
	}

	return typeTable, termTable, nil
}

// longest prefixes first, ties broken alphabetically for determinism
func sortRules[T any](rules []prefixRule[T]) {
	sort.Slice(rules, func(i, j int) bool {
		if len(rules[i].prefix) != len(rules[j].prefix) {
			return len(rules[i].prefix) > len(rules[j].prefix)
		}
		return rules[i].prefix < rules[j].prefix
	})
}

func match[T any](rules []prefixRule[T], code string) (T, bool) {
	for _, r := range rules {
		if strings.HasPrefix(code, r.prefix) {
			return r.value, true
		}
	}
	var zero T
	return zero, false
}

// TypeOf returns the account type for code, preferring the catalog entry.
func (c *Classifier) TypeOf(code string, catalog *Catalog) (AccountType, bool) {
	if a, ok := catalog.Lookup(code); ok && a.Type != "" {
		return a.Type, true
	}
	return match(c.types, code)
}

// TermOf returns the maturity term for code.
func (c *Classifier) TermOf(code string) (Term, bool) {
	return match(c.terms, code)
}

// HasTerms reports whether the classifier supplies the current/non-current dimension.
func (c *Classifier) HasTerms() bool {
	return len(c.terms) > 0
}
