// Package parser reduces raw schema validation messages to problem errors.
//
// Parsers are tried in priority order and the first one accepting a message
// produces its errors. The default parser always comes last.
package parser

import (
	"fmt"
	"math"
	"sort"

	"github.com/JonnyWalker81/librarium/backend/internal/apierror"
	"github.com/JonnyWalker81/librarium/backend/internal/schema"
)

const pointerDelimiter = "/"

// Parser converts one kind of validation message into problem errors.
type Parser interface {
	// CanParse reports whether the parser handles msg.
	CanParse(msg schema.RawMessage) bool
	// ExtractErrors builds the errors for a message CanParse accepted.
	ExtractErrors(msg schema.RawMessage) []apierror.ProblemError
}

// Ordered is implemented by parsers with an explicit priority.
// Lower values are tried first; parsers without one sort after all ordered parsers.
type Ordered interface {
	Order() int
}

// Priorities of the built-in parsers.
const (
	OrderRequiredBodyProperty   = 0
	OrderRequiredParameter      = 2
	OrderNonNullableBodyElement = 3
	OrderParameterConstraint    = 4
)

const unordered = math.MaxInt

// Chain is an immutable, ordered list of parsers safe for concurrent use.
type Chain struct {
	parsers []Parser
}

// NewChain sorts parsers by priority, keeping the given order for equal
// priorities, and appends the default parser.
func NewChain(parsers ...Parser) *Chain {
	sorted := make([]Parser, 0, len(parsers)+1)
	for _, p := range parsers {
		if _, isDefault := p.(*defaultParser); isDefault || p == nil {
			continue
		}
		sorted = append(sorted, p)
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return order(sorted[i]) < order(sorted[j])
	})

	return &Chain{parsers: append(sorted, Default())}
}

// DefaultChain returns the chain with every built-in parser.
func DefaultChain() *Chain {
	return NewChain(
		RequiredBodyProperty(),
		RequiredParameter(),
		NonNullableBodyElement(),
		ParameterConstraint(),
	)
}

func order(p Parser) int {
	if o, ok := p.(Ordered); ok {
		return o.Order()
	}
	return unordered
}

// Parse returns the errors of the first parser accepting msg, or nil when
// none does.
func (c *Chain) Parse(msg schema.RawMessage) []apierror.ProblemError {
	for _, p := range c.parsers {
		if p.CanParse(msg) {
			return p.ExtractErrors(msg)
		}
	}
	return nil
}

// ParseAll concatenates the errors of every message, preserving message order.
func (c *Chain) ParseAll(msgs []schema.RawMessage) []apierror.ProblemError {
	var errs []apierror.ProblemError
	for _, m := range msgs {
		errs = append(errs, c.Parse(m)...)
	}
	return errs
}

// Names lists the parsers in dispatch order.
func (c *Chain) Names() []string {
	names := make([]string, len(c.parsers))
	for i, p := range c.parsers {
		if s, ok := p.(fmt.Stringer); ok {
			names[i] = s.String()
		} else {
			names[i] = fmt.Sprintf("%T", p)
		}
	}
	return names
}
