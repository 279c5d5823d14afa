package eval

import "strings"

// ngramCounts counts every n-gram of words for n = 1..maxN, keyed by the
// space-joined n-gram. The n-gram order is len(strings.Fields(key)).
func ngramCounts(words []string, maxN int) map[string]int {
	counts := make(map[string]int)
	for k := 1; k <= maxN; k++ {
		for i := 0; i+k <= len(words); i++ {
			counts[strings.Join(words[i:i+k], " ")]++
		}
	}
	return counts
}

func ngramOrder(key string) int {
	return strings.Count(key, " ") + 1
}
