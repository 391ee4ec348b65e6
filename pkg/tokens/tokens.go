package tokens

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var (
	tk     *tiktoken.Tiktoken
	tkErr  error
	tkOnce sync.Once
)

func tokenizer() (*tiktoken.Tiktoken, error) {
	tkOnce.Do(func() {
		tk, tkErr = tiktoken.GetEncoding("cl100k_base")
	})
	return tk, tkErr
}

// Count estimates the token size of text with the cl100k_base encoding.
// It falls back to a rune-based guess when the encoding cannot be loaded.
func Count(text string) int {
	if text == "" {
		return 0
	}
	enc, err := tokenizer()
	if err != nil {
		return (len([]rune(text)) + 3) / 4
	}
	return len(enc.Encode(text, nil, nil))
}
