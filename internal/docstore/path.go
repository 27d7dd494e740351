package docstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidPath = errors.New("invalid document path")
	ErrNotExist    = errors.New("document does not exist")
)

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// parsePath splits path into its collection, document id and nested field segments.
func parsePath(path string) (collection, id string, field []string, err error) {
	segs := splitPath(path)
	if len(segs) == 0 {
		return "", "", nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	for _, s := range segs {
		if s == "" {
			return "", "", nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
		}
	}
	collection = segs[0]
	if len(segs) > 1 {
		id = segs[1]
	}
	if len(segs) > 2 {
		field = segs[2:]
	}
	return collection, id, field, nil
}

// normalize converts v into plain maps, slices, strings, float64s and bools
// using its json encoding.
func normalize(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func getIn(node any, segs []string) (any, bool) {
	for _, seg := range segs {
		switch n := node.(type) {
		case map[string]any:
			child, ok := n[seg]
			if !ok {
				return nil, false
			}
			node = child
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(n) {
				return nil, false
			}
			node = n[i]
		default:
			return nil, false
		}
	}
	return node, node != nil
}

// setIn writes v at segs below node and returns the new node. A nil v removes the key.
func setIn(node any, segs []string, v any) any {
	if len(segs) == 0 {
		return v
	}
	switch n := node.(type) {
	case map[string]any:
		if v == nil {
			if _, ok := n[segs[0]]; !ok {
				return n
			}
			if len(segs) == 1 {
				delete(n, segs[0])
				return n
			}
		}
		n[segs[0]] = setIn(n[segs[0]], segs[1:], v)
		return n
	case []any:
		if i, err := strconv.Atoi(segs[0]); err == nil && i >= 0 && i < len(n) {
			if len(segs) == 1 && v == nil {
				n[i] = nil
				return n
			}
			n[i] = setIn(n[i], segs[1:], v)
			return n
		}
	}
	if v == nil {
		return node
	}
	return map[string]any{segs[0]: setIn(nil, segs[1:], v)}
}

func cloneValue(v any) any {
	switch n := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(n))
		for k, child := range n {
			out[k] = cloneValue(child)
		}
		return out
	case []any:
		out := make([]any, len(n))
		for i, child := range n {
			out[i] = cloneValue(child)
		}
		return out
	default:
		return v
	}
}

// related reports whether a change at one path is visible from the other.
func related(a, b []string) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
