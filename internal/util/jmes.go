package util

import (
	"encoding/json"
	"fmt"

	"github.com/jmespath/go-jmespath"
)

// StringPath is a compiled JMESPath expression expected to select a string.
type StringPath struct {
	expr string
	jp   *jmespath.JMESPath
}

// CompileStringPath compiles expr once so it can be evaluated many times.
func CompileStringPath(expr string) (*StringPath, error) {
	jp, err := jmespath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile jmespath %q: %w", expr, err)
	}
	return &StringPath{expr: expr, jp: jp}, nil
}

// MustCompileStringPath is like CompileStringPath but panics on error.
func MustCompileStringPath(expr string) *StringPath {
	p, err := CompileStringPath(expr)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *StringPath) String() string { return p.expr }

// Find decodes raw as JSON and evaluates the expression against it.
// Returns (value, true, nil) when the result is a non-empty string;
// ("", false, nil) when it is missing, empty, or not a string; or an error
// when raw is not valid JSON.
func (p *StringPath) Find(raw []byte) (string, bool, error) {
	if len(raw) == 0 {
		return "", false, nil
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", false, fmt.Errorf("decode json: %w", err)
	}
	res, err := p.jp.Search(doc)
	if err != nil {
		return "", false, fmt.Errorf("jmespath search failed: %w", err)
	}
	s, ok := res.(string)
	if !ok || s == "" {
		return "", false, nil
	}
	return s, true, nil
}
