// Package pattern provides a precompiled byte-pattern searcher based on
// the Boyer-Moore-Horspool algorithm.
//
// The matcher uses only the bad-character shift rule over a 256-entry
// table, trading some worst-case speed for a compact, allocation-free,
// easily verified structure. Patterns are fixed byte sequences of 1 to
// 127 bytes; matching is byte-exact with no Unicode awareness.
//
// # Basic Usage
//
//	m, err := pattern.NewMatcher([]byte("\r\n\r\n"))
//	if err != nil {
//	    return err
//	}
//	idx := m.Search(buf, 0, len(buf)) // -1 when absent
//
// # Streaming Support
//
// LastPrefixStart answers the question a streaming caller needs when a
// search comes up empty: how many trailing bytes of the buffered window
// might still be the beginning of an occurrence completed by future
// reads. The stream package uses it to compute its read barrier so that
// an occurrence straddling two fills is neither missed nor duplicated.
package pattern
