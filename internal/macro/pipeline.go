package macro

import (
	"fmt"
	"reflect"
)

// Pipeline is an ordered chain of macros.
//
// Registration happens before rendering starts; Process only reads the chain
// and may be called concurrently for different slides.
type Pipeline struct {
	macros []Macro
}

// NewPipeline creates a pipeline holding macros in the given order.
func NewPipeline(macros ...Macro) *Pipeline {
	p := &Pipeline{}
	p.macros = append(p.macros, macros...)
	return p
}

// Register appends v to the chain. v must be a Macro or a function with the
// signature of Macro.Process; anything else, including a typed nil, is
// rejected with ErrNotAMacro.
func (p *Pipeline) Register(v any) error {
	if v == nil {
		return fmt.Errorf("%w: nil", ErrNotAMacro)
	}
	if isNilValue(v) {
		return fmt.Errorf("%w: nil %T", ErrNotAMacro, v)
	}
	switch m := v.(type) {
	case Macro:
		p.macros = append(p.macros, m)
	case func(content, baseDir string) (string, []string, error):
		p.macros = append(p.macros, Func(m))
	default:
		return fmt.Errorf("%w: %T", ErrNotAMacro, v)
	}
	return nil
}

func isNilValue(v any) bool {
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Slice, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// Len returns the number of registered macros.
func (p *Pipeline) Len() int {
	return len(p.macros)
}

// Macros returns a copy of the chain.
func (p *Pipeline) Macros() []Macro {
	out := make([]Macro, len(p.macros))
	copy(out, p.macros)
	return out
}

// Process threads content through every macro in registration order.
// The first error stops the chain and no content is returned with it.
func (p *Pipeline) Process(content, baseDir string) (string, []string, error) {
	var classes []string
	for _, m := range p.macros {
		out, cls, err := m.Process(content, baseDir)
		if err != nil {
			return "", nil, err
		}
		content = out
		classes = append(classes, cls...)
	}
	return content, classes, nil
}
