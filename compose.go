package ember

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Layer overrides a subset of the fields of a config value. Fields a layer
// does not touch keep whatever an earlier layer (or the default) set.
type Layer[T any] func(*T)

// Compose copies base and applies layers in order. Later layers win only for
// the fields they set. Nil layers are skipped.
func Compose[T any](base T, layers ...Layer[T]) T {
	Apply(&base, layers...)
	return base
}

// Apply applies layers to dst in order.
func Apply[T any](dst *T, layers ...Layer[T]) {
	for _, l := range layers {
		if l != nil {
			l(dst)
		}
	}
}

// YAMLLayer returns a layer that decodes data onto the target. Only the keys
// present in the document are written; absent keys leave the target alone.
// The document is checked against T up front, so unknown keys and type
// mismatches are reported here rather than when the layer is applied.
func YAMLLayer[T any](data []byte) (Layer[T], error) {
	var probe T
	if err := decodeStrict(data, &probe); err != nil {
		return nil, err
	}
	doc := bytes.Clone(data)
	return func(dst *T) {
		// Validated above; a second decode of the same bytes cannot fail.
		_ = decodeStrict(doc, dst)
	}, nil
}

// LoadLayer reads a YAML file and returns it as a layer.
func LoadLayer[T any](path string) (Layer[T], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load layer %s: %w", path, err)
	}
	l, err := YAMLLayer[T](data)
	if err != nil {
		return nil, fmt.Errorf("load layer %s: %w", path, err)
	}
	return l, nil
}

func decodeStrict(data []byte, dst any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			// Empty document: nothing to override.
			return nil
		}
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}
