package sample

import (
	"regexp"

	"github.com/brianvoe/gofakeit/v7"
)

// patternSeed seeds the generator so a pattern always yields the same sample.
const patternSeed = 0x5eed

// fromPattern expands a regular expression into a matching literal.
// Unbounded repetition is capped by the generator at ten. Anything the
// generator cannot expand, or output that does not match, yields fallback.
func fromPattern(pattern, fallback string) (out string) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fallback
	}

	defer func() {
		if recover() != nil {
			out = fallback
		}
	}()

	gen := gofakeit.New(patternSeed).Regex(pattern)
	if !re.MatchString(gen) {
		return fallback
	}
	return gen
}
