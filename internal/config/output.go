package config

import "git.home.luguber.info/inful/sitenav/internal/foundation/normalization"

// OutputFormat selects the report renderer.
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
)

var outputFormatNormalizer = normalization.NewNormalizer("output format", map[string]OutputFormat{
	"text":  OutputFormatText,
	"human": OutputFormatText,
	"json":  OutputFormatJSON,
}, OutputFormatText)

// ParseOutputFormat maps raw to an OutputFormat and rejects unknown values.
func ParseOutputFormat(raw string) (OutputFormat, error) {
	return outputFormatNormalizer.Parse(raw)
}
