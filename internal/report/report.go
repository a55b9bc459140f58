package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	lerrors "github.com/vango-dev/memolab/internal/errors"
	"github.com/vango-dev/memolab/internal/lessons"
)

// Supported encodings.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Report is one run of the scenario catalog.
type Report struct {
	ID        string            `json:"id" yaml:"id"`
	Tool      string            `json:"tool" yaml:"tool"`
	Version   string            `json:"version" yaml:"version"`
	Generated time.Time         `json:"generated" yaml:"generated"`
	Passed    int               `json:"passed" yaml:"passed"`
	Failed    int               `json:"failed" yaml:"failed"`
	Outcomes  []lessons.Outcome `json:"outcomes" yaml:"outcomes"`
}

// New builds a report for outcomes.
func New(version string, outcomes []lessons.Outcome) *Report {
	r := &Report{
		ID:        uuid.NewString(),
		Tool:      "memolab",
		Version:   version,
		Generated: time.Now().UTC(),
		Outcomes:  outcomes,
	}
	for _, o := range outcomes {
		if o.OK {
			r.Passed++
		} else {
			r.Failed++
		}
	}
	return r
}

// OK reports whether every scenario met its expectation.
func (r *Report) OK() bool {
	return r.Failed == 0
}

// Encode writes the report in format.
func (r *Report) Encode(w io.Writer, format string) error {
	data, err := r.Marshal(format)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return lerrors.New(lerrors.CodeReportEncode).Wrap(err)
	}
	return nil
}

// Marshal returns the report encoded in format.
func (r *Report) Marshal(format string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatJSON, "":
		data, err = json.MarshalIndent(r, "", "  ")
		data = append(data, '\n')
	case FormatYAML:
		data, err = yaml.Marshal(r)
	default:
		return nil, lerrors.New(lerrors.CodeReportEncode).WithDetailf("unknown format %q", format)
	}
	if err != nil {
		return nil, lerrors.New(lerrors.CodeReportEncode).Wrap(err)
	}
	return data, nil
}

// ContentType returns the MIME type for format.
func ContentType(format string) string {
	if format == FormatYAML {
		return "application/yaml"
	}
	return "application/json"
}

// Extension returns the file extension for format, with the dot.
func Extension(format string) string {
	if format == FormatYAML {
		return ".yaml"
	}
	return ".json"
}
