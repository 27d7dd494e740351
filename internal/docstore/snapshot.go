package docstore

import (
	"encoding/json"
	"fmt"
)

// Snapshot is an immutable read of the value stored at Path.
type Snapshot struct {
	Path   string
	value  any
	exists bool
}

func (s Snapshot) Exists() bool {
	return s.exists
}

// ID returns the last segment of the snapshot's path.
func (s Snapshot) ID() string {
	segs := splitPath(s.Path)
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}

// Value returns a deep copy of the raw value.
func (s Snapshot) Value() any {
	return cloneValue(s.value)
}

// Data returns the snapshot as a map, or nil when the value is not an object.
func (s Snapshot) Data() map[string]any {
	m, _ := cloneValue(s.value).(map[string]any)
	return m
}

// DataTo decodes the snapshot into out using its json field tags.
func (s Snapshot) DataTo(out any) error {
	if !s.exists {
		return fmt.Errorf("decode %s: %w", s.Path, ErrNotExist)
	}
	raw, err := json.Marshal(s.value)
	if err != nil {
		return fmt.Errorf("decode %s: %w", s.Path, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", s.Path, err)
	}
	return nil
}

// MarshalJSON renders the raw value, so snapshots can be pushed to clients as-is.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Path   string `json:"path"`
		Exists bool   `json:"exists"`
		Value  any    `json:"value"`
	}{s.Path, s.exists, s.value})
}
