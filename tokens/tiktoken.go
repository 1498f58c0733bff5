package tokens

import (
	"fmt"
	"log/slog"

	"github.com/tiktoken-go/tokenizer"

	"github.com/contextfit/contextfit/limits"
)

// newCodec builds an exact encoder for the pair, or an error when the
// provider has no embeddable tokenizer. Only OpenAI models ship with
// embedded BPE tables; Anthropic, Google and Ollama tokenizers are
// proprietary or model-specific, so those providers always estimate.
//
// For OpenAI the model-specific encoding is preferred; unknown models fall
// back to the newest general encoding (o200k_base) and, should that table
// be unavailable in the linked tokenizer build, to cl100k_base.
func newCodec(provider limits.Provider, model string) (tokenizer.Codec, error) {
	if provider != limits.OpenAI {
		return nil, fmt.Errorf("no embeddable tokenizer for provider %s", provider)
	}

	if model != "" {
		if codec, err := tokenizer.ForModel(tokenizer.Model(model)); err == nil {
			return codec, nil
		}
	}

	codec, err := tokenizer.Get(tokenizer.O200kBase)
	if err == nil {
		return codec, nil
	}
	slog.Debug("o200k_base unavailable, trying cl100k_base", slog.Any("error", err))

	codec, err = tokenizer.Get(tokenizer.Cl100kBase)
	if err != nil {
		return nil, fmt.Errorf("initialize tokenizer: %w", err)
	}
	return codec, nil
}

// exactCount encodes text with the codec and returns the token count.
func exactCount(codec tokenizer.Codec, text string) (int, error) {
	ids, _, err := codec.Encode(text)
	if err != nil {
		return 0, fmt.Errorf("encode: %w", err)
	}
	return len(ids), nil
}
