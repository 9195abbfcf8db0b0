// walletsetup - Wallet Onboarding Wizard
// Copyright (C) 2026 Cloud Exit B.V.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package onboarding

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
)

// Phrase is an ordered recovery phrase. Order is significant.
type Phrase struct {
	words []string
}

// NewPhrase validates words and returns a Phrase. When wantLen is positive
// the phrase must have exactly that many words. Words must be non-empty and
// unique, since the verifier selects and removes words by value.
func NewPhrase(words []string, wantLen int) (Phrase, error) {
	if len(words) == 0 {
		return Phrase{}, fmt.Errorf("%w: no words", ErrInvalidPhrase)
	}
	if wantLen > 0 && len(words) != wantLen {
		return Phrase{}, fmt.Errorf("%w: got %d words, want %d", ErrInvalidPhrase, len(words), wantLen)
	}
	seen := make(map[string]int, len(words))
	for i, w := range words {
		if strings.TrimSpace(w) == "" {
			return Phrase{}, fmt.Errorf("%w: word %d is empty", ErrInvalidPhrase, i+1)
		}
		if j, ok := seen[w]; ok {
			return Phrase{}, fmt.Errorf("%w: %q appears at positions %d and %d", ErrInvalidPhrase, w, j+1, i+1)
		}
		seen[w] = i
	}
	return Phrase{words: slices.Clone(words)}, nil
}

// ParsePhrase splits text on whitespace, lowercases each word and validates
// the result with NewPhrase.
func ParsePhrase(text string, wantLen int) (Phrase, error) {
	fields := strings.Fields(text)
	for i, f := range fields {
		fields[i] = strings.ToLower(f)
	}
	return NewPhrase(fields, wantLen)
}

// Len returns the number of words.
func (p Phrase) Len() int { return len(p.words) }

// Words returns a copy of the words in order.
func (p Phrase) Words() []string { return slices.Clone(p.words) }

// String joins the words with a single space. This is the clipboard form.
func (p Phrase) String() string { return strings.Join(p.words, " ") }

func (p Phrase) contains(word string) bool {
	return slices.Contains(p.words, word)
}

// matches reports whether assembled equals the phrase element-wise.
func (p Phrase) matches(assembled []string) bool {
	return slices.Equal(p.words, assembled)
}

// shuffleWords returns a permutation of words. The input is sorted first so
// the result depends only on the random source, not on the phrase order.
func shuffleWords(words []string, r *rand.Rand) []string {
	out := slices.Clone(words)
	slices.Sort(out)
	for i := len(out) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
