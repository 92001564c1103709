package feature

import (
	"fmt"
	"strings"

	"gopkg.in/fatih/set.v0"
)

// Scope says which genome a filter applies to.
type Scope int

const (
	Both Scope = iota
	ReferenceOnly
	ComparisonOnly
)

func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(s) {
	case "", "both":
		return Both, nil
	case "r", "ref", "reference":
		return ReferenceOnly, nil
	case "c", "comp", "comparison":
		return ComparisonOnly, nil
	}
	return Both, fmt.Errorf("unknown species scope %q", s)
}

type BoolOp int

const (
	Or BoolOp = iota
	And
)

func ParseBoolOp(s string) (BoolOp, error) {
	switch strings.ToLower(s) {
	case "or":
		return Or, nil
	case "and":
		return And, nil
	}
	return Or, fmt.Errorf("unknown operator %q", s)
}

// Match is a gene picked out by a filter, from either genome.
type Match struct {
	GeneID    string `json:"gene_id"`
	Symbol    string `json:"gene_symbol"`
	Type      string `json:"type"`
	Reference bool   `json:"reference"`
}

// Operand pairs a match list with the operator joining it to the result so far.
type Operand struct {
	Op      BoolOp
	Matches []Match
}

func geneIDSet(ms []Match) set.Interface {
	s := set.New(set.NonThreadSafe)
	for _, m := range ms {
		s.Add(m.GeneID)
	}
	return s
}

// pick keeps the first match for each id in s, in order of appearance.
func pick(s set.Interface, lists ...[]Match) []Match {
	var out []Match
	taken := set.New(set.NonThreadSafe)
	for _, l := range lists {
		for _, m := range l {
			if s.Has(m.GeneID) && !taken.Has(m.GeneID) {
				taken.Add(m.GeneID)
				out = append(out, m)
			}
		}
	}
	return out
}

// Union keeps every gene that is in a or b.
func Union(a, b []Match) []Match {
	return pick(set.Union(geneIDSet(a), geneIDSet(b)), a, b)
}

// Intersect keeps the genes of a that are also in b.
func Intersect(a, b []Match) []Match {
	return pick(set.Intersection(geneIDSet(a), geneIDSet(b)), a)
}

// Combine folds the operands into first from left to right.
func Combine(first []Match, rest ...Operand) []Match {
	out := first
	for _, o := range rest {
		if o.Op == And {
			out = Intersect(out, o.Matches)
		} else {
			out = Union(out, o.Matches)
		}
	}
	return out
}

// InScope drops matches from the genome the scope excludes.
func InScope(ms []Match, s Scope) []Match {
	if s == Both {
		return ms
	}
	var out []Match
	for _, m := range ms {
		if m.Reference == (s == ReferenceOnly) {
			out = append(out, m)
		}
	}
	return out
}

// ByType matches every gene of the given type in the loaded data.
func ByType(d *ChromosomeData, geneType string, s Scope) []Match {
	var out []Match
	if s != ComparisonOnly {
		for _, g := range d.Reference {
			if strings.EqualFold(g.Type, geneType) {
				out = append(out, Match{GeneID: g.GeneID, Symbol: g.Symbol, Type: g.Type, Reference: true})
			}
		}
	}
	if s != ReferenceOnly {
		for _, g := range d.Comparison {
			if strings.EqualFold(g.Type, geneType) {
				out = append(out, Match{GeneID: g.GeneID, Symbol: g.Symbol, Type: g.Type})
			}
		}
	}
	return out
}

// BySymbol matches genes whose symbol contains the query, ignoring case.
func BySymbol(d *ChromosomeData, query string, s Scope) []Match {
	q := strings.ToLower(query)
	var out []Match
	if s != ComparisonOnly {
		for _, g := range d.Reference {
			if strings.Contains(strings.ToLower(g.Symbol), q) {
				out = append(out, Match{GeneID: g.GeneID, Symbol: g.Symbol, Type: g.Type, Reference: true})
			}
		}
	}
	if s != ReferenceOnly {
		for _, g := range d.Comparison {
			if strings.Contains(strings.ToLower(g.Symbol), q) {
				out = append(out, Match{GeneID: g.GeneID, Symbol: g.Symbol, Type: g.Type})
			}
		}
	}
	return out
}
