package parser

import (
	"regexp"

	"github.com/JonnyWalker81/librarium/backend/internal/apierror"
	"github.com/JonnyWalker81/librarium/backend/internal/schema"
)

// patternParser matches the message text against a pattern and builds the
// errors from its capture groups. A text that does not match degrades to a
// DefaultError carrying the raw text.
type patternParser struct {
	name    string
	order   int
	pattern *regexp.Regexp
	accept  func(msg schema.RawMessage) bool
	extract func(groups []string) []apierror.ProblemError
}

func (p *patternParser) CanParse(msg schema.RawMessage) bool {
	return p.accept(msg)
}

func (p *patternParser) ExtractErrors(msg schema.RawMessage) []apierror.ProblemError {
	var errs []apierror.ProblemError
	if groups := p.pattern.FindStringSubmatch(msg.Text); groups != nil {
		errs = p.extract(groups)
	}
	if len(errs) == 0 {
		return []apierror.ProblemError{apierror.NewDefaultError(msg.Text)}
	}
	return errs
}

func (p *patternParser) Order() int {
	return p.order
}

func (p *patternParser) String() string {
	return p.name
}

func always(schema.RawMessage) bool {
	return true
}
