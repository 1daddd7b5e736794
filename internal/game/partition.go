// internal/game/partition.go
//
// Family selection for a single guess.
//   - partition: group candidates by the pattern the letter would reveal.
//   - choose: keep the largest group, ties to the smallest pattern key.

package game

// partition groups words by the pattern each would produce if letter were
// overlaid on the current pattern. Words keep their relative (sorted) order
// inside each family.
func partition(words []string, pattern []rune, letter rune) map[string][]string {
	families := make(map[string][]string)
	buf := make([]rune, len(pattern))
	for _, w := range words {
		copy(buf, pattern)
		i := 0
		for _, r := range w {
			if r == letter {
				buf[i] = letter
			}
			i++
		}
		key := string(buf)
		families[key] = append(families[key], w)
	}
	return families
}

// choose returns the key of the largest family. Equally large families are
// broken by the lexicographically smallest pattern key, so the result never
// depends on map iteration order.
func choose(families map[string][]string) string {
	best, bestSize := "", -1
	for key, words := range families {
		n := len(words)
		if n > bestSize || (n == bestSize && key < best) {
			best, bestSize = key, n
		}
	}
	return best
}
