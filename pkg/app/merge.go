package app

import (
	"reflect"

	"dario.cat/mergo"

	"github.com/blaubaer/transcriber/pkg/common"
)

var patternType = reflect.TypeOf(common.Pattern{})

// mergeTransformers replaces patterns as a whole; mergo would otherwise descend
// into the compiled regexp.
type mergeTransformers struct{}

func (mergeTransformers) Transformer(t reflect.Type) func(dst, src reflect.Value) error {
	if t != patternType {
		return nil
	}
	return func(dst, src reflect.Value) error {
		if dst.CanSet() && !src.Interface().(common.Pattern).IsZero() {
			dst.Set(src)
		}
		return nil
	}
}

// mergeFlags lets every explicitly set flag override what was loaded from file.
func mergeFlags(dst *Configuration, fromFlags Configuration) error {
	return mergo.Merge(dst, fromFlags, mergo.WithOverride, mergo.WithTransformers(mergeTransformers{}))
}
