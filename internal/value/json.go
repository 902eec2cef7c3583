package value

import (
	"strconv"
	"strings"
)

// JSONOf renders v as canonical JSON (§4.1 json_of). Object keys are sorted
// lexicographically; non-serializable values (regex, function) become null.
// indent, when non-empty, is used as the per-level indentation string and
// switches to a multi-line layout; an empty indent produces compact output.
func JSONOf(v Value, indent string) string {
	var sb strings.Builder
	writeJSON(&sb, v, indent, "")
	return sb.String()
}

func writeJSON(sb *strings.Builder, v Value, indent, prefix string) {
	switch v.kind {
	case KindNull, KindRegex, KindFunction:
		sb.WriteString("null")
	case KindBoolean:
		if v.b {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case KindNumber:
		sb.WriteString(jsonNumber(v.n))
	case KindDatetime:
		sb.WriteString(strconv.Quote(formatDatetime(v.t)))
	case KindString:
		sb.WriteString(strconv.Quote(v.s))
	case KindArray:
		writeJSONArray(sb, v.arr, indent, prefix)
	case KindObject:
		writeJSONObject(sb, v.obj, indent, prefix)
	default:
		sb.WriteString("null")
	}
}

func jsonNumber(n float64) string {
	s := formatNumber(n)
	switch s {
	case "NaN", "Infinity", "-Infinity":
		return "null"
	}
	return s
}

func writeJSONArray(sb *strings.Builder, a *Array, indent, prefix string) {
	if a.Len() == 0 {
		sb.WriteString("[]")
		return
	}
	sb.WriteByte('[')
	childPrefix := prefix + indent
	for i, elem := range a.Slice() {
		if i > 0 {
			sb.WriteByte(',')
		}
		if indent != "" {
			sb.WriteByte('\n')
			sb.WriteString(childPrefix)
		}
		writeJSON(sb, elem, indent, childPrefix)
	}
	if indent != "" {
		sb.WriteByte('\n')
		sb.WriteString(prefix)
	}
	sb.WriteByte(']')
}

func writeJSONObject(sb *strings.Builder, o *Object, indent, prefix string) {
	if o.Len() == 0 {
		sb.WriteString("{}")
		return
	}
	keys := sortedKeys(o.Keys())
	sb.WriteByte('{')
	childPrefix := prefix + indent
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(',')
		}
		if indent != "" {
			sb.WriteByte('\n')
			sb.WriteString(childPrefix)
		}
		sb.WriteString(strconv.Quote(k))
		sb.WriteByte(':')
		if indent != "" {
			sb.WriteByte(' ')
		}
		val, _ := o.Get(k)
		writeJSON(sb, val, indent, childPrefix)
	}
	if indent != "" {
		sb.WriteByte('\n')
		sb.WriteString(prefix)
	}
	sb.WriteByte('}')
}
