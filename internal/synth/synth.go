package synth

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/apismoke/apismoke/internal/models"
	"github.com/apismoke/apismoke/internal/parser"
	v3 "github.com/pb33f/libopenapi/datamodel/high/v3"
)

var placeholderPattern = regexp.MustCompile(`\{([^{}/]+)\}`)

// Violation describes why an endpoint could not be synthesized from its
// declared parameters.
type Violation struct {
	Path      string `json:"path"`
	Method    string `json:"method"`
	Parameter string `json:"parameter,omitempty"`
	Message   string `json:"message"`
}

func (v Violation) String() string {
	if v.Parameter != "" {
		return fmt.Sprintf("%s %s: parameter %q: %s", v.Method, v.Path, v.Parameter, v.Message)
	}
	return fmt.Sprintf("%s %s: %s", v.Method, v.Path, v.Message)
}

// SynthesisError reports all parameter violations found for one operation
type SynthesisError struct {
	Violations []Violation
}

func (e *SynthesisError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.String()
	}
	return "synthesis failed: " + strings.Join(msgs, "; ")
}

// Synthesize produces a concrete request plan for one operation. endpoint is
// the server URL joined with the raw path template.
//
// For GET, every {name} placeholder is replaced with the matching path
// parameter's schema const, and query parameters are appended in declared
// order, each resolved via schema const, then schema default, then the
// parameter-level example. Parameters declared in "header" or "cookie" are
// ignored. Before anything is substituted the parameters are validated as a
// whole; a *SynthesisError carrying every violation is returned instead of a
// partially resolved URL.
//
// POST/PUT/PATCH/DELETE return a nil plan without error: callers treat those
// operations as declared but not runnable. Any other method is rejected.
func Synthesize(endpoint string, details *parser.OperationDetails, method string) (*models.Endpoint, error) {
	switch strings.ToLower(method) {
	case "get":
	case "post", "put", "patch", "delete":
		return nil, nil
	default:
		return nil, fmt.Errorf("invalid method: %s", method)
	}

	if details == nil {
		return nil, fmt.Errorf("operation details is nil")
	}

	if violations := validate(endpoint, details); len(violations) > 0 {
		return nil, &SynthesisError{Violations: violations}
	}

	url := endpoint
	firstQueryParam := true
	for _, param := range details.Parameters {
		if param == nil {
			continue
		}
		switch param.In {
		case "path":
			value, _ := constValue(param)
			url = strings.ReplaceAll(url, "{"+param.Name+"}", value)
		case "query":
			value, _ := queryValue(param)
			if firstQueryParam {
				url += "?"
				firstQueryParam = false
			} else {
				url += "&"
			}
			url += param.Name + "=" + value
		}
	}

	return &models.Endpoint{URL: url, Method: http.MethodGet}, nil
}

// validate checks that every placeholder in the template maps to a
// constant-valued path parameter and that every query parameter has a
// resolvable value. All violations are collected, not just the first.
func validate(endpoint string, details *parser.OperationDetails) []Violation {
	var violations []Violation

	pathParams := make(map[string]*v3.Parameter)
	for _, param := range details.Parameters {
		if param != nil && param.In == "path" {
			pathParams[param.Name] = param
		}
	}

	for _, match := range placeholderPattern.FindAllStringSubmatch(endpoint, -1) {
		name := match[1]
		param, ok := pathParams[name]
		if !ok {
			violations = append(violations, Violation{
				Path:      details.Path,
				Method:    details.Method,
				Parameter: name,
				Message:   "no path parameter declared for placeholder",
			})
			continue
		}
		if _, ok := constValue(param); !ok {
			violations = append(violations, Violation{
				Path:      details.Path,
				Method:    details.Method,
				Parameter: name,
				Message:   "path parameter has no constant value in its schema",
			})
		}
	}

	for _, param := range details.Parameters {
		if param == nil || param.In != "query" {
			continue
		}
		if _, ok := queryValue(param); !ok {
			violations = append(violations, Violation{
				Path:      details.Path,
				Method:    details.Method,
				Parameter: param.Name,
				Message:   "query parameter has no const, default, or example value",
			})
		}
	}

	return violations
}

// constValue returns the schema const for a parameter, if declared
func constValue(param *v3.Parameter) (string, bool) {
	if param.Schema == nil {
		return "", false
	}
	schema := param.Schema.Schema()
	if schema == nil || schema.Const == nil {
		return "", false
	}
	return schema.Const.Value, true
}

// queryValue resolves a query parameter value: schema const wins, then
// schema default, then the parameter-level example
func queryValue(param *v3.Parameter) (string, bool) {
	if param.Schema != nil {
		if schema := param.Schema.Schema(); schema != nil {
			if schema.Const != nil {
				return schema.Const.Value, true
			}
			if schema.Default != nil {
				return schema.Default.Value, true
			}
		}
	}
	if param.Example != nil {
		return param.Example.Value, true
	}
	return "", false
}
