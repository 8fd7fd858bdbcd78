package pipeline

import (
	"net/url"
	"sort"
	"strings"
)

// trackingParams are query parameters that identify campaigns or clicks, not
// content. Stripped during canonicalization alongside any utm_* parameter.
var trackingParams = map[string]bool{
	"gclid":   true,
	"fbclid":  true,
	"mc_cid":  true,
	"mc_eid":  true,
	"igshid":  true,
	"ref":     true,
	"ref_src": true,
	"spm":     true,
	"cmpid":   true,
}

// CanonicalizeURL normalizes a URL into the key used for deduplication:
// lowercase scheme and host, default ports removed, fragment stripped,
// tracking parameters removed, and the remaining query sorted by name then
// value. The path is left untouched. Unparsable input comes back unchanged,
// so canonicalization never fails. Idempotent.
func CanonicalizeURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = strings.ToLower(parsed.Host)

	if host, port, ok := strings.Cut(parsed.Host, ":"); ok {
		if (parsed.Scheme == "http" && port == "80") || (parsed.Scheme == "https" && port == "443") {
			parsed.Host = host
		}
	}

	parsed.RawQuery = canonicalQuery(parsed.RawQuery)
	parsed.Fragment = ""
	parsed.RawFragment = ""

	return parsed.String()
}

type queryParam struct {
	key   string
	value string
}

func canonicalQuery(rawQuery string) string {
	if rawQuery == "" {
		return ""
	}

	var kept []queryParam
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			key = rawKey
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			value = rawValue
		}

		lower := strings.ToLower(key)
		if strings.HasPrefix(lower, "utm_") || trackingParams[lower] {
			continue
		}
		kept = append(kept, queryParam{key: key, value: value})
	}

	sort.Slice(kept, func(i, j int) bool {
		if kept[i].key != kept[j].key {
			return kept[i].key < kept[j].key
		}
		return kept[i].value < kept[j].value
	})

	var b strings.Builder
	for i, p := range kept {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
	}
	return b.String()
}
