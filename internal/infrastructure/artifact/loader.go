// Package artifact loads model parameter artifacts from JSON or YAML files,
// validates them against the embedded artifact schema and converts them into
// domain ModelParameters.
package artifact

import (
	"bytes"
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/bibbank/creditrisk/internal/domain/model"
	"github.com/bibbank/creditrisk/internal/domain/valueobject"
)

// Version is the only artifact_version this loader accepts.
const Version = 1

//go:embed schema.json
var schemaDocument []byte

var schema = mustCompileSchema()

func mustCompileSchema() *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaDocument))
	if err != nil {
		panic(fmt.Sprintf("artifact: compile embedded schema: %v", err))
	}
	return s
}

// Format is the serialisation of an artifact file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the format from the file extension. Anything that is
// not .yaml or .yml is read as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Artifact is a validated parameter set together with its provenance.
type Artifact struct {
	Parameters model.ModelParameters
	Path       string
	Digest     string
	Format     Format
}

// Load reads, validates and converts the artifact at path.
func Load(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Stage: "read", Cause: err}
	}
	return Parse(path, data, FormatForPath(path))
}

// Parse validates and converts raw artifact bytes. path is only used for
// error messages and provenance.
func Parse(path string, data []byte, format Format) (*Artifact, error) {
	doc, err := normalise(data, format)
	if err != nil {
		return nil, &LoadError{Path: path, Stage: "decode", Cause: err}
	}

	if err := validateSchema(doc); err != nil {
		return nil, &LoadError{Path: path, Stage: "validate", Cause: err}
	}

	var d document
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return nil, &LoadError{Path: path, Stage: "decode", Cause: err}
	}

	spec, err := d.toSpec()
	if err != nil {
		return nil, &LoadError{Path: path, Stage: "convert", Cause: err}
	}

	params, err := model.NewModelParameters(spec)
	if err != nil {
		return nil, &LoadError{Path: path, Stage: "convert", Cause: err}
	}

	sum := sha256.Sum256(data)
	return &Artifact{
		Parameters: params,
		Path:       path,
		Digest:     "sha256:" + hex.EncodeToString(sum[:]),
		Format:     format,
	}, nil
}

// normalise returns the document as JSON bytes so that a single schema and
// decoder serve both formats.
func normalise(data []byte, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		if !json.Valid(data) {
			return nil, fmt.Errorf("malformed JSON")
		}
		return data, nil
	case FormatYAML:
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("malformed YAML: %w", err)
		}
		out, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("convert YAML to JSON: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported artifact format %q", format)
	}
}

func validateSchema(doc []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}

	violation := &SchemaViolation{Fields: make([]FieldViolation, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		violation.Fields = append(violation.Fields, FieldViolation{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return violation
}

// ---------------------------------------------------------------------------
// Wire document
// ---------------------------------------------------------------------------

type document struct {
	ModelVersion    string         `json:"model_version"`
	FeatureSchema   string         `json:"feature_schema"`
	Features        []string       `json:"features"`
	Coefficients    []float64      `json:"coefficients"`
	FeatureScaling  []scalingEntry `json:"feature_scaling"`
	RatingBands     []bandEntry    `json:"rating_bands"`
	ScoreScale      scaleEntry     `json:"score_scale"`
	Intercept       float64        `json:"intercept"`
	ArtifactVersion int            `json:"artifact_version"`
}

type scalingEntry struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type scaleEntry struct {
	Offset   float64 `json:"offset"`
	Factor   float64 `json:"factor"`
	MinScore int     `json:"min_score"`
	MaxScore int     `json:"max_score"`
}

type bandEntry struct {
	Rating   string `json:"rating"`
	MaxScore int    `json:"max_score"`
}

func (d document) toSpec() (model.ParameterSpec, error) {
	if d.ArtifactVersion != Version {
		return model.ParameterSpec{}, fmt.Errorf("artifact_version %d, want %d", d.ArtifactVersion, Version)
	}

	var scaling []model.FeatureScaling
	if len(d.FeatureScaling) > 0 {
		scaling = make([]model.FeatureScaling, len(d.FeatureScaling))
		for i, s := range d.FeatureScaling {
			scaling[i] = model.FeatureScaling{Min: s.Min, Max: s.Max}
		}
	}

	bands := make([]model.RatingBand, len(d.RatingBands))
	for i, b := range d.RatingBands {
		rating, err := valueobject.RatingFromString(b.Rating)
		if err != nil {
			return model.ParameterSpec{}, fmt.Errorf("rating_bands[%d]: %w", i, err)
		}
		bands[i] = model.RatingBand{Rating: rating, MaxScore: b.MaxScore}
	}

	return model.ParameterSpec{
		ModelVersion:   d.ModelVersion,
		FeatureSchema:  d.FeatureSchema,
		FeatureNames:   d.Features,
		Coefficients:   d.Coefficients,
		Intercept:      d.Intercept,
		FeatureScaling: scaling,
		RatingBands:    bands,
		ScoreScale: model.ScoreScale{
			Offset:   d.ScoreScale.Offset,
			Factor:   d.ScoreScale.Factor,
			MinScore: d.ScoreScale.MinScore,
			MaxScore: d.ScoreScale.MaxScore,
		},
	}, nil
}
