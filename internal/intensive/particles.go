package intensive

import "github.com/jonathan/daily-reading/internal/rules"

const (
	minStemRunes = 2
	maxStemRunes = 12
)

func isHangulSyllable(r rune) bool {
	return r >= '가' && r <= '힣'
}

// particleMatch is a stem+particle word inside a sentence, as rune offsets
type particleMatch struct {
	start, end int
	particle   string
}

// findParticleWord returns the leftmost 2-12 syllable stem followed by a table particle
// that closes a Hangul run. Among matches at the same start the longest stem wins.
func findParticleWord(sentence []rune, set *rules.Set) (particleMatch, bool) {
	n := len(sentence)
	for s := 0; s < n; {
		if !isHangulSyllable(sentence[s]) {
			s++
			continue
		}
		e := s
		for e < n && isHangulSyllable(sentence[e]) {
			e++
		}

		for start := s; start < e; start++ {
			longest := e - start - 1
			if longest > maxStemRunes {
				longest = maxStemRunes
			}
			for stem := longest; stem >= minStemRunes; stem-- {
				particle := string(sentence[start+stem : e])
				if _, ok := set.Role(particle); ok {
					return particleMatch{start: start, end: e, particle: particle}, true
				}
			}
		}
		s = e
	}
	return particleMatch{}, false
}
