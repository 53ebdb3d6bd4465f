package site

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/util/sets"
)

// DecodeProblem is one wrongly shaped value found while decoding.
type DecodeProblem struct {
	Line    int
	Message string
}

// DecodeError collects every type mismatch in a site file.
type DecodeError struct {
	File     string
	Problems []DecodeProblem
}

func (e *DecodeError) Error() string {
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		parts = append(parts, fmt.Sprintf("line %d: %s", p.Line, p.Message))
	}
	prefix := "site document"
	if e.File != "" {
		prefix = e.File
	}
	return fmt.Sprintf("%s: %d shape problem(s): %s", prefix, len(e.Problems), strings.Join(parts, "; "))
}

var typeErrorLine = regexp.MustCompile(`^line (\d+): (.*)$`)

// Decode parses a site document (YAML or JSON). Type mismatches are returned
// as a *DecodeError listing all of them; syntax errors are returned as-is.
func Decode(data []byte) (*Config, error) {
	doc, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}
	return doc.config(), nil
}

func decodeDocument(data []byte) (*document, error) {
	var doc document
	if len(bytes.TrimSpace(data)) == 0 {
		return &doc, nil
	}
	err := yaml.Unmarshal(data, &doc)
	if err == nil {
		return &doc, nil
	}

	var typeErr *yaml.TypeError
	if !stderrors.As(err, &typeErr) {
		return nil, errors.WrapError(err, errors.CategoryConfig, "invalid site document syntax").UserAction().Build()
	}
	decodeErr := &DecodeError{}
	for _, msg := range typeErr.Errors {
		p := DecodeProblem{Message: msg}
		if m := typeErrorLine.FindStringSubmatch(msg); m != nil {
			p.Line, _ = strconv.Atoi(m[1])
			p.Message = m[2]
		}
		decodeErr.Problems = append(decodeErr.Problems, p)
	}
	return nil, decodeErr
}

// Encode renders cfg in the generator layout.
func Encode(cfg *Config) ([]byte, error) {
	return yaml.Marshal(documentFor(cfg))
}

// envRef matches ${NAME} references. A bare $ is literal text.
var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

func expandEnv(data []byte) []byte {
	return envRef.ReplaceAllFunc(data, func(m []byte) []byte {
		return []byte(os.Getenv(string(m[2 : len(m)-1])))
	})
}

// LoadFile reads a site document, expands ${VAR} references and resolves its
// extends chain. Relative extends paths are resolved against the extending file.
func LoadFile(path string) (*Config, error) {
	return loadFile(path, sets.New[string]())
}

func loadFile(path string, seen sets.Set[string]) (*Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "cannot resolve site file path").
			WithContext("file", path).Build()
	}
	if seen.Has(abs) {
		return nil, errors.ConfigError("extends cycle detected").WithContext("file", path).Build()
	}
	seen.Add(abs)

	data, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewError(errors.CategoryNotFound, "site file not found").
				WithContext("file", path).WithCause(err).Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "cannot read site file").
			WithContext("file", path).Build()
	}

	doc, err := decodeDocument(expandEnv(data))
	if err != nil {
		var decodeErr *DecodeError
		if stderrors.As(err, &decodeErr) {
			decodeErr.File = path
			return nil, decodeErr
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	cfg := doc.config()
	if doc.Extends == "" {
		return cfg, nil
	}

	basePath := doc.Extends
	if !filepath.IsAbs(basePath) {
		basePath = filepath.Join(filepath.Dir(abs), basePath)
	}
	base, err := loadFile(basePath, seen)
	if err != nil {
		return nil, err
	}
	return base.Override(cfg)
}
