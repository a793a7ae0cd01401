package bbox

import (
	"encoding/json"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// MarshalJSON encodes the rectangle as [xMin, yMin, xMax, yMax].
func (r Rectangle) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Coords())
}

// UnmarshalJSON decodes [xMin, yMin, xMax, yMax] and recomputes the sides.
// Anything other than a four element integer array fails with ErrNotRectangle.
func (r *Rectangle) UnmarshalJSON(data []byte) error {
	var coords []int
	if err := json.Unmarshal(data, &coords); err != nil {
		return errors.Wrapf(ErrNotRectangle, "decode %s: %v", data, err)
	}
	return r.setCoords(coords)
}

// MarshalYAML encodes the rectangle as a flow sequence of its coordinates.
func (r Rectangle) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{}
	if err := node.Encode(r.Coords()); err != nil {
		return nil, err
	}
	node.Style = yaml.FlowStyle
	return node, nil
}

// UnmarshalYAML decodes a four element integer sequence.
func (r *Rectangle) UnmarshalYAML(value *yaml.Node) error {
	var coords []int
	if err := value.Decode(&coords); err != nil {
		return errors.Wrapf(ErrNotRectangle, "line %d: %v", value.Line, err)
	}
	return r.setCoords(coords)
}

func (r *Rectangle) setCoords(coords []int) error {
	if len(coords) != 4 {
		return errors.Wrapf(ErrNotRectangle, "expected 4 coordinates, got %d", len(coords))
	}
	*r = NewRectangle(coords[0], coords[1], coords[2], coords[3])
	return nil
}
