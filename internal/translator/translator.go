// Package translator turns validation failures into invalid-request problem
// responses. Schema messages and constraint violations both leave through here.
package translator

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/librarium/backend/internal/apierror"
	"github.com/JonnyWalker81/librarium/backend/internal/constraint"
	"github.com/JonnyWalker81/librarium/backend/internal/logger"
	"github.com/JonnyWalker81/librarium/backend/internal/metrics"
	"github.com/JonnyWalker81/librarium/backend/internal/parser"
	"github.com/JonnyWalker81/librarium/backend/internal/schema"
)

// Translator builds problem responses. It is immutable and safe for concurrent use.
type Translator struct {
	chain *parser.Chain
}

// New returns a Translator using chain, or the default chain when chain is nil.
func New(chain *parser.Chain) *Translator {
	if chain == nil {
		chain = parser.DefaultChain()
	}
	return &Translator{chain: chain}
}

// FromMessages builds the problem for schema validation messages.
func (t *Translator) FromMessages(requestID string, msgs []schema.RawMessage) *apierror.ProblemDetails {
	return apierror.NewInvalidRequestError(requestID, t.chain.ParseAll(msgs))
}

// FromViolations builds the problem for constraint violations.
func (t *Translator) FromViolations(requestID string, violations []constraint.Violation) *apierror.ProblemDetails {
	return apierror.NewInvalidRequestError(requestID, constraint.ToProblemErrors(violations))
}

// Translate builds the problem for err when it is a validation failure.
// The second result is false for any other error.
func (t *Translator) Translate(ctx context.Context, requestID string, err error) (*apierror.ProblemDetails, bool) {
	var (
		schemaErr     *schema.ValidationError
		constraintErr *constraint.ValidationError
		problem       *apierror.ProblemDetails
		source        string
	)

	switch {
	case errors.As(err, &schemaErr):
		problem, source = t.FromMessages(requestID, schemaErr.Messages), metrics.SourceSchema
	case errors.As(err, &constraintErr):
		problem, source = t.FromViolations(requestID, constraintErr.Violations), metrics.SourceConstraint
	default:
		return nil, false
	}

	metrics.RecordRejection(source, len(problem.Errors))
	logger.Ctx(ctx).Debug("request rejected",
		logger.String("source", source),
		logger.Int("errors", len(problem.Errors)),
		logger.Strings("problems", describe(problem.Errors)),
		logger.Err(err),
	)
	return problem, true
}

// describe renders each error as "<location>: <detail>", or just the detail
// when the error has no location.
func describe(errs []apierror.ProblemError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		if loc := apierror.Location(e); loc != "" {
			out = append(out, loc+": "+apierror.Detail(e))
			continue
		}
		out = append(out, apierror.Detail(e))
	}
	return out
}

// Abort writes the problem for a validation failure and aborts the gin chain.
// It returns false, writing nothing, when err is not a validation failure.
func (t *Translator) Abort(c *gin.Context, err error) bool {
	problem, ok := t.Translate(c.Request.Context(), apierror.GetRequestID(c), err)
	if !ok {
		return false
	}
	problem.Instance = c.Request.URL.Path
	apierror.WriteProblem(c, problem)
	c.Abort()
	return true
}
