package output

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/lizzyg/envparse"
	moderr "github.com/lizzyg/envparse/errors"
)

// Writer renders a parsed map.
type Writer interface {
	Write(w io.Writer, m map[string]string) error
}

// Formats lists the names NewWriter accepts.
var Formats = []string{"env", "json", "yaml"}

// NewWriter returns the writer for format.
func NewWriter(format string) (Writer, error) {
	switch format {
	case "env", "":
		return envWriter{}, nil
	case "json":
		return jsonWriter{}, nil
	case "yaml":
		return yamlWriter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", moderr.ErrUnknownFormat, format)
	}
}

type envWriter struct{}

func (envWriter) Write(w io.Writer, m map[string]string) error {
	return envparse.MarshalWriter(w, m)
}

type jsonWriter struct{}

func (jsonWriter) Write(w io.Writer, m map[string]string) error {
	return Encode(w, "json", m)
}

type yamlWriter struct{}

func (yamlWriter) Write(w io.Writer, m map[string]string) error {
	return Encode(w, "yaml", m)
}

// Encode writes any value as json or yaml. Map keys come out sorted in both.
func Encode(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", moderr.ErrUnknownFormat, format)
	}
}
