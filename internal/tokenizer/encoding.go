package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// encodingCounter counts tokens with a tiktoken BPE encoding and reports them
// under the model name the user asked for, even when a fallback encoding is used.
type encodingCounter struct {
	model    string
	encoding *tiktoken.Tiktoken
}

func (counter encodingCounter) Name() string {
	return counter.model
}

// CountString treats special-token text such as "<|endoftext|>" as ordinary
// input, since source files may legitimately contain it.
func (counter encodingCounter) CountString(input string) (int, error) {
	if counter.encoding == nil {
		return 0, fmt.Errorf("%s: no encoding loaded: %w", counter.model, ErrUnavailable)
	}
	return len(counter.encoding.EncodeOrdinary(input)), nil
}
