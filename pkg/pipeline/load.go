package pipeline

import (
	stderrors "errors"
	"io/fs"

	"github.com/matzehuels/coursemap/pkg/dag"
	"github.com/matzehuels/coursemap/pkg/errors"
	"github.com/matzehuels/coursemap/pkg/graph"
)

// LoadMap reads a map file (.json, .yaml or .yml) and checks its node IDs
// and stored coordinates.
func LoadMap(path string) (graph.Map, error) {
	if err := errors.ValidateMapFilename(path); err != nil {
		return graph.Map{}, err
	}
	m, err := graph.ReadMapFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return graph.Map{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "map file not found")
		}
		return graph.Map{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read map %s", path)
	}
	if err := CheckMap(m); err != nil {
		return graph.Map{}, err
	}
	return m, nil
}

// CheckMap validates the input-level constraints of a map: node IDs must be
// well formed and unique, and stored coordinates must lie in [0,100].
// Structural problems such as cycles are not errors; see [Runner.Validate].
func CheckMap(m graph.Map) error {
	if _, err := graph.ParseKind(string(m.Kind)); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid map kind")
	}
	for i, n := range m.Nodes {
		if err := errors.ValidateNodeID(n.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidNodeID, err, "node %d", i)
		}
		for _, v := range []*float64{n.X, n.Y} {
			if v == nil {
				continue
			}
			if err := errors.ValidatePosition(*v); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidPosition, err, "node %q", n.ID)
			}
		}
	}
	return nil
}

// BuildGraph checks m and converts it to a prerequisite graph.
func BuildGraph(m graph.Map) (*dag.Graph, error) {
	if err := CheckMap(m); err != nil {
		return nil, err
	}
	g, err := graph.ToGraph(m)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "build graph")
	}
	return g, nil
}
