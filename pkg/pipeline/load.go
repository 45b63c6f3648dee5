package pipeline

import (
	"io"
	"os"

	errs "github.com/matzehuels/strata/pkg/errors"
	"github.com/matzehuels/strata/pkg/graph"
)

// LoadGraph reads a graph file. An empty format is taken from the file
// extension. The path "-" reads standard input and requires a format.
func LoadGraph(path, format string) (*graph.Graph, error) {
	if path == "-" {
		if format == "" {
			return nil, errs.New(errs.ErrCodeInvalidInput, "reading stdin requires an explicit input format")
		}
		return ReadGraph(os.Stdin, format)
	}
	if format == "" {
		return graph.ReadFile(path)
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, err
	}
	defer f.Close()
	return ReadGraph(f, format)
}

// ReadGraph decodes a graph in the named format (json, yaml, dot).
func ReadGraph(r io.Reader, format string) (*graph.Graph, error) {
	return graph.Read(r, graph.Format(format))
}
