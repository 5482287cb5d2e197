package token

import (
	"github.com/pkoukk/tiktoken-go"

	"github.com/HartBrook/promptsmith/internal/errors"
)

// DefaultEncoding is the encoding used when the config does not name one.
const DefaultEncoding = "cl100k_base"

// Tiktoken counts tokens with a real BPE encoding.
type Tiktoken struct {
	encoding *tiktoken.Tiktoken
}

// NewTiktoken creates a Tiktoken counter for the named encoding
// (e.g. cl100k_base). Loading the encoding is the only operation that
// can fail; Count and Truncate on a constructed counter cannot.
func NewTiktoken(encodingName string) (*Tiktoken, error) {
	if encodingName == "" {
		encodingName = DefaultEncoding
	}
	enc, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, errors.TokenizerFailed(encodingName, err)
	}
	return &Tiktoken{encoding: enc}, nil
}

// Count returns the exact number of tokens in text.
func (t *Tiktoken) Count(text string) int {
	return len(t.encoding.Encode(text, nil, nil))
}

// Truncate encodes text, keeps the first maxTokens token ids, and decodes
// them back to text.
func (t *Tiktoken) Truncate(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return ""
	}
	ids := t.encoding.Encode(text, nil, nil)
	if len(ids) <= maxTokens {
		return text
	}
	return t.encoding.Decode(ids[:maxTokens])
}
