package test

import "math/rand/v2"

const asciiLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomASCIIString returns a pseudo-random ASCII string within the provided
// bounds. When maxLen equals minLen the result always has that exact length.
func RandomASCIIString(minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	length := minLen
	if maxLen > minLen {
		length += rand.IntN(maxLen - minLen + 1)
	}
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = asciiLetters[rand.IntN(len(asciiLetters))]
	}
	return string(buf)
}
