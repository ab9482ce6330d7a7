package fieldmap

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"tripbuilder/internal/ghl"
)

// Codec converts between the CRM's custom-field wire entries and a
// flat map of local column name to natively typed value. Unmapped
// fields and unparseable values are skipped, never raised: decoding a
// bad date leaves the prior local value untouched.
type Codec struct {
	reg *Registry
}

func NewCodec(reg *Registry) *Codec {
	return &Codec{reg: reg}
}

// Decode maps wire field entries onto local columns for one table.
// The output contains only columns with a mapped, parseable value:
// dates as time.Time (midnight UTC), integers as int, decimals as
// float64, booleans as bool, everything else as string.
func (c *Codec) Decode(table string, fields []ghl.CustomFieldValue) map[string]any {
	out := make(map[string]any)

	for _, f := range fields {
		m, ok := c.reg.ResolveInbound(table, f.ID)
		if !ok && f.Key != "" {
			m, ok = c.reg.ResolveInboundKey(table, f.Key)
		}
		if !ok {
			continue
		}

		raw := f.RawValue()
		if raw == nil {
			continue
		}

		switch m.Type {
		case TypeDate:
			if d, ok := parseDate(raw); ok {
				out[m.Column] = d
			}
		case TypeInteger:
			if n, ok := parseInt(raw); ok {
				out[m.Column] = n
			}
		case TypeDecimal:
			if fl, ok := parseFloat(raw); ok {
				out[m.Column] = fl
			}
		case TypeBoolean:
			if b, ok := parseBool(raw); ok {
				out[m.Column] = b
			}
		default:
			s := stringify(raw)
			if s == "" {
				// An absent string is not the same as a cleared one;
				// empty values produce no output key.
				continue
			}
			out[m.Column] = s
		}
	}

	return out
}

// Encode turns local column values into the outbound field-key payload
// for one table. Dates become ISO date strings, booleans the lowercase
// tokens "true"/"false"; nil values and local-only columns are omitted.
func (c *Codec) Encode(table string, values map[string]any) map[string]string {
	out := make(map[string]string)

	for column, v := range values {
		key, ok := c.reg.ResolveOutbound(table, column)
		if !ok || v == nil {
			continue
		}
		out[key] = encodeValue(v)
	}

	return out
}

func encodeValue(v any) string {
	switch t := v.(type) {
	case time.Time:
		return t.Format("2006-01-02")
	case bool:
		if t {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}

// parseDate accepts an ISO-8601 timestamp string or epoch
// milliseconds and truncates to a calendar date.
func parseDate(raw any) (time.Time, bool) {
	switch v := raw.(type) {
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, s); err == nil {
				return truncateToDate(t), true
			}
		}
		// Numeric string carrying epoch millis
		if ms, err := strconv.ParseFloat(s, 64); err == nil {
			return truncateToDate(time.UnixMilli(int64(ms)).UTC()), true
		}
		return time.Time{}, false
	case float64:
		return truncateToDate(time.UnixMilli(int64(v)).UTC()), true
	case int64:
		return truncateToDate(time.UnixMilli(v).UTC()), true
	case int:
		return truncateToDate(time.UnixMilli(int64(v)).UTC()), true
	case time.Time:
		return truncateToDate(v), true
	default:
		return time.Time{}, false
	}
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// parseInt coerces through float so numeric strings with a decimal
// point ("42.0") still land as integers.
func parseInt(raw any) (int, bool) {
	switch v := raw.(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return int(f), true
	default:
		return 0, false
	}
}

func parseFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// parseBool accepts native booleans and the string tokens true/yes/1
// (case-insensitive). Any other string is an explicit false, not a
// skip. Non-string, non-bool values are skipped.
func parseBool(raw any) (bool, bool) {
	switch v := raw.(type) {
	case bool:
		return v, true
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "1":
			return true, true
		default:
			return false, true
		}
	default:
		return false, false
	}
}

func stringify(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", v)
	}
}
