// Package prompts synthesizes random benchmark prompts.
//
// A random phrase defeats prompt caching on the server while keeping the
// token count estimable from the word count alone.
package prompts

import (
	"math/rand"
	"strings"
)

const (
	minWordLength = 3
	maxWordLength = 10

	// Instruction asking the model to echo the phrase, so output length
	// tracks input length.
	promptInstruction = "Please reply back the following section unchanged:"

	letters = "abcdefghijklmnopqrstuvwxyz"
)

// DefaultNumWords is the phrase length used when the caller supplies neither
// a fixed prompt nor a word count.
const DefaultNumWords = 100

func randomWord() string {
	length := minWordLength + rand.Intn(maxWordLength-minWordLength+1)
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		b.WriteByte(letters[rand.Intn(len(letters))])
	}
	return b.String()
}

// RandomPhrase returns the echo instruction followed by numWords random
// lowercase words, each 3 to 10 letters long.
func RandomPhrase(numWords int) string {
	words := make([]string, numWords)
	for i := range words {
		words[i] = randomWord()
	}
	return promptInstruction + " " + strings.Join(words, " ")
}

// Instruction exposes the fixed prefix for tests and reporting.
func Instruction() string { return promptInstruction }
