// Package text provides small text-measurement helpers shared by the
// article generation adapters.
package text

// CountRunes counts the number of Unicode characters (runes) in the given
// text. Generated article bodies may contain multi-byte characters
// (Japanese, emoji, accented letters), so length logging and content-limit
// checks count runes instead of bytes.
//
// Examples:
//
//	CountRunes("hello")     // returns 5
//	CountRunes("こんにちは")    // returns 5
//	CountRunes("Hello👋")    // returns 6
//	CountRunes("")          // returns 0
func CountRunes(text string) int {
	return len([]rune(text))
}
