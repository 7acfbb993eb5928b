package scenario

import (
	"bytes"
	"io"
	"os"

	"github.com/vango-dev/reactor/internal/errors"
	"gopkg.in/yaml.v3"
)

// File is the YAML layout of a scenario file:
//
//	scenarios:
//	  - name: reverse
//	    strategy: keyed
//	    old: [a, b, c]
//	    new: [c, b, a]
type File struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// Decode reads a scenario file from r. Unknown fields are rejected.
func Decode(r io.Reader) ([]Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, errors.New("X002").WithDetail("empty scenario file")
		}
		return nil, errors.New("X002").Wrap(err)
	}
	for i := range f.Scenarios {
		if err := f.Scenarios[i].Validate(); err != nil {
			return nil, errors.New("X002").WithDetail("scenario %d", i).Wrap(err)
		}
	}
	return f.Scenarios, nil
}

// LoadFile reads a scenario file from disk.
func LoadFile(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("X002").WithDetail("%s", path).Wrap(err)
	}
	return Decode(bytes.NewReader(data))
}

// Encode writes scenarios in the format Decode reads.
func Encode(w io.Writer, scenarios []Scenario) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(File{Scenarios: scenarios}); err != nil {
		return err
	}
	return enc.Close()
}
