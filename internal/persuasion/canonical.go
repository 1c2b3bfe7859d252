package persuasion

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces deterministic JSON for solve artifacts:
// object keys sorted, strings NFC-normalized with no HTML escaping, and
// floats rendered with the shortest representation that round-trips.
//
// This is the only serialization used for stored payloads and golden
// files, so byte-level comparisons are stable across runs.
//
// Unlike hashing-oriented canonical JSON, floats are first-class here
// because mechanisms are real-valued. NaN and infinities are encoding
// errors: they must never reach persistence.
func MarshalCanonical(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := appendCanonical(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func appendCanonical(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case nil:
		return fmt.Errorf("null is forbidden in canonical JSON")
	case bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return nil
	case string:
		return appendCanonicalString(buf, val)
	case int:
		buf.WriteString(strconv.Itoa(val))
		return nil
	case int64:
		buf.WriteString(strconv.FormatInt(val, 10))
		return nil
	case float64:
		return appendCanonicalFloat(buf, val)
	case []float64:
		buf.WriteByte('[')
		for i, f := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := appendCanonicalFloat(buf, f); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
		return nil
	case [][]float64:
		buf.WriteByte('[')
		for i, row := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := appendCanonical(buf, row); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
		return nil
	case []any:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := appendCanonical(buf, elem); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
		return nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := appendCanonicalString(buf, k); err != nil {
				return fmt.Errorf("key %q: %w", k, err)
			}
			buf.WriteByte(':')
			if err := appendCanonical(buf, val[k]); err != nil {
				return fmt.Errorf("[%q]: %w", k, err)
			}
		}
		buf.WriteByte('}')
		return nil
	case Interval:
		return appendCanonical(buf, map[string]any{"lo": val.Lo, "hi": val.Hi})
	default:
		return fmt.Errorf("unsupported type for canonical JSON: %T", v)
	}
}

// appendCanonicalFloat renders f via strconv 'g' with the shortest
// precision that parses back to the same value.
func appendCanonicalFloat(buf *bytes.Buffer, f float64) error {
	if !isFinite(f) {
		return fmt.Errorf("non-finite float in canonical JSON: %g", f)
	}
	buf.Write(strconv.AppendFloat(nil, f, 'g', -1, 64))
	return nil
}

// appendCanonicalString writes a JSON string NFC-normalized at the
// serialization boundary, with HTML escaping disabled.
func appendCanonicalString(buf *bytes.Buffer, s string) error {
	normalized := norm.NFC.String(s)

	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false) // <, >, & must not be escaped
	if err := enc.Encode(normalized); err != nil {
		return err
	}

	// json.Encoder adds a trailing newline, remove it
	out := tmp.Bytes()
	if len(out) > 0 && out[len(out)-1] == '\n' {
		out = out[:len(out)-1]
	}
	buf.Write(out)
	return nil
}
