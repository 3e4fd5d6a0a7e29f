package mirror

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mesh-intelligence/flatshare/pkg/types"
)

// fields reads typed values out of a record. The first type mismatch or
// missing required field is kept in err; later reads return zero values.
type fields struct {
	rec types.Record
	err error
}

func (f *fields) fail(name, reason string) {
	if f.err == nil {
		f.err = fmt.Errorf("field %q %s: %w", name, reason, types.ErrInvalidRecord)
	}
}

func (f *fields) str(name string) string {
	v, ok := f.rec[name]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		f.fail(name, "is not a string")
		return ""
	}
	return s
}

// required is str that also rejects an empty value.
func (f *fields) required(name string) string {
	s := f.str(name)
	if s == "" {
		f.fail(name, "is missing")
	}
	return s
}

func (f *fields) float(name string) float64 {
	v, ok := f.rec[name]
	if !ok || v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		x, err := n.Float64()
		if err != nil {
			f.fail(name, "is not a number")
		}
		return x
	}
	f.fail(name, "is not a number")
	return 0
}

func (f *fields) integer(name string) int {
	return int(f.float(name))
}

func (f *fields) boolean(name string) bool {
	v, ok := f.rec[name]
	if !ok || v == nil {
		return false
	}
	b, ok := v.(bool)
	if !ok {
		f.fail(name, "is not a boolean")
	}
	return b
}

// timestamp parses an RFC 3339 timestamp. Missing or unparseable values yield the
// zero time rather than failing the record.
func (f *fields) timestamp(name string) time.Time {
	s, ok := f.rec[name].(string)
	if !ok || s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (f *fields) stringList(name string) []string {
	v, ok := f.rec[name]
	if !ok || v == nil {
		return nil
	}
	switch list := v.(type) {
	case []string:
		return append([]string(nil), list...)
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				f.fail(name, "holds a non-string element")
				return nil
			}
			out = append(out, s)
		}
		return out
	}
	f.fail(name, "is not a list")
	return nil
}

func (f *fields) stringMap(name string) map[string]string {
	v, ok := f.rec[name]
	if !ok || v == nil {
		return nil
	}
	switch m := v.(type) {
	case map[string]string:
		out := make(map[string]string, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out
	case map[string]any:
		out := make(map[string]string, len(m))
		for k, item := range m {
			s, ok := item.(string)
			if !ok {
				f.fail(name, "holds a non-string value")
				return nil
			}
			out[k] = s
		}
		return out
	}
	f.fail(name, "is not a map")
	return nil
}

func (f *fields) records(name string) []types.Record {
	v, ok := f.rec[name]
	if !ok || v == nil {
		return nil
	}
	switch list := v.(type) {
	case []types.Record:
		return list
	case []any:
		out := make([]types.Record, 0, len(list))
		for _, item := range list {
			m, ok := item.(map[string]any)
			if !ok {
				f.fail(name, "holds a non-object element")
				return nil
			}
			out = append(out, m)
		}
		return out
	}
	f.fail(name, "is not a list")
	return nil
}

// id returns the record's "id" field, falling back to the node key.
func (f *fields) id(key string) string {
	if s := f.str("id"); s != "" {
		return s
	}
	if key == "" {
		f.fail("id", "is missing")
	}
	return key
}
