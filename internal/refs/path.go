package refs

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment is one traversal step: a map key or a zero-based list index.
type Segment struct {
	Key   string
	Index int
	IsKey bool
}

func keySegment(k string) Segment { return Segment{Key: k, IsKey: true} }

func indexSegment(i int) Segment { return Segment{Index: i} }

func (s Segment) String() string {
	if s.IsKey {
		return s.Key
	}
	return "[" + strconv.Itoa(s.Index) + "]"
}

// ParsePath splits a dotted reference like "vpc.subnets[0].id" into
// segments. Bracketed indexes may follow a key or another index.
func ParsePath(path string) ([]Segment, error) {
	if path == "" {
		return nil, fmt.Errorf("empty reference")
	}

	var segs []Segment
	for _, part := range strings.Split(path, ".") {
		rem := part
		for {
			open := strings.IndexByte(rem, '[')
			if open < 0 {
				break
			}
			if open > 0 {
				segs = append(segs, keySegment(rem[:open]))
			}
			closing := strings.IndexByte(rem[open:], ']')
			if closing < 0 {
				return nil, fmt.Errorf("reference %q: unmatched '['", path)
			}
			closing += open
			idx, err := strconv.Atoi(rem[open+1 : closing])
			if err != nil || idx < 0 {
				return nil, fmt.Errorf("reference %q: invalid index %q", path, rem[open+1:closing])
			}
			segs = append(segs, indexSegment(idx))
			rem = rem[closing+1:]
		}
		if rem != "" {
			segs = append(segs, keySegment(rem))
		} else if !strings.Contains(part, "[") {
			return nil, fmt.Errorf("reference %q: empty path segment", path)
		}
	}

	if len(segs) == 0 || !segs[0].IsKey {
		return nil, fmt.Errorf("reference %q: must start with a target name", path)
	}
	return segs, nil
}

// Traverse applies segments to a materialized value. Terraform's
// `output -json` wraps every output as {value, type, sensitive}; a "value"
// key is unwrapped after each step so references address the bare value.
// The boolean is false when any step misses.
func Traverse(root any, segs []Segment) (any, bool) {
	cur := root
	for _, seg := range segs {
		if seg.IsKey {
			m, ok := cur.(map[string]any)
			if !ok {
				return nil, false
			}
			cur, ok = m[seg.Key]
			if !ok {
				return nil, false
			}
		} else {
			seq, ok := cur.([]any)
			if !ok || seg.Index >= len(seq) {
				return nil, false
			}
			cur = seq[seg.Index]
		}
		cur = unwrapValue(cur)
	}
	return cur, true
}

func unwrapValue(v any) any {
	for {
		m, ok := v.(map[string]any)
		if !ok {
			return v
		}
		inner, ok := m["value"]
		if !ok {
			return v
		}
		v = inner
	}
}
