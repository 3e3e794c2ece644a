package errors

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type for problem documents.
const ContentTypeProblemJSON = "application/problem+json"

// Mapper translates an application error into a Problem. It reports false when
// the error is not one it recognizes, letting the next mapper try.
type Mapper func(err error) (Problem, bool)

// Responder writes problem documents for a handler group. Each domain hands it
// the mappers that understand that domain's errors; anything unmapped becomes
// a generic 500.
type Responder struct {
	baseURI string
	mappers []Mapper
}

// NewResponder builds a responder. baseURI, when non-empty, is prefixed to the
// relative problem type URIs.
func NewResponder(baseURI string, mappers ...Mapper) *Responder {
	return &Responder{baseURI: baseURI, mappers: mappers}
}

// Write renders the problem on the gin context, filling Instance from the
// request path when unset.
func (r *Responder) Write(c *gin.Context, problem Problem) {
	if r != nil && r.baseURI != "" && len(problem.Type) > 0 && problem.Type[0] == '/' {
		problem.Type = r.baseURI + problem.Type
	}
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.JSON(problem.Status, problem)
}

// WriteError maps err through the responder's mappers and renders the result.
// Errors that are already a Problem pass through untouched; everything else
// falls back to a generic 500.
func (r *Responder) WriteError(c *gin.Context, err error) {
	var problem Problem
	if errors.As(err, &problem) {
		r.Write(c, problem)
		return
	}
	if r != nil {
		for _, mapper := range r.mappers {
			if mapped, ok := mapper(err); ok {
				r.Write(c, mapped)
				return
			}
		}
	}
	r.Write(c, Internal())
}
