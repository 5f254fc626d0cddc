package proxy

import (
	"net/url"
	"strings"
)

type queryPair struct {
	key   string
	value string
}

// splitPairs splits an urlencoded string into its key/value pairs in order.
// Empty segments are skipped and a segment without "=" has an empty value.
// Escapes that fail to decode are kept verbatim.
func splitPairs(raw string) []queryPair {
	var pairs []queryPair

	for _, segment := range strings.Split(raw, "&") {
		if segment == "" {
			continue
		}

		key, value, _ := strings.Cut(segment, "=")
		pairs = append(pairs, queryPair{key: unescape(key), value: unescape(value)})
	}

	return pairs
}

func unescape(s string) string {
	if decoded, err := url.QueryUnescape(s); err == nil {
		return decoded
	}

	return s
}

// joinedQuery maps each key of a raw query string to its values joined with
// commas. Keys keep the order they were first seen in.
type joinedQuery struct {
	keys   []string
	values map[string]string
}

func parseJoinedQuery(raw string) joinedQuery {
	grouped := map[string][]string{}
	q := joinedQuery{values: map[string]string{}}

	for _, pair := range splitPairs(raw) {
		if _, seen := grouped[pair.key]; !seen {
			q.keys = append(q.keys, pair.key)
		}

		grouped[pair.key] = append(grouped[pair.key], pair.value)
	}

	for _, key := range q.keys {
		q.values[key] = strings.Join(grouped[key], ",")
	}

	return q
}

// parseForm decodes an urlencoded form body. When a key repeats only its last
// value is kept.
func parseForm(body string) map[string]string {
	form := map[string]string{}

	for _, pair := range splitPairs(body) {
		form[pair.key] = pair.value
	}

	return form
}
