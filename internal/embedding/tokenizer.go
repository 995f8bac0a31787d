package embedding

// Tokenizer produces the input tensors BERT-style models expect
// (input_ids, attention_mask, token_type_ids) for one product title.
type Tokenizer interface {
	Tokenize(title string, maxTokens int) (inputIDs, attentionMask, tokenTypeIDs []int64)
}

// SimpleTokenizer splits a title on whitespace and hashes each word to a
// token ID. Marketplace titles are short keyword runs, not prose, so a word
// split captures nearly everything a learned vocabulary would; a real
// wordpiece vocabulary can be swapped in behind the interface.
type SimpleTokenizer struct{}

// Tokenize produces padded token IDs for title, up to maxTokens.
func (t *SimpleTokenizer) Tokenize(title string, maxTokens int) (inputIDs, attentionMask, tokenTypeIDs []int64) {
	words := SplitWords(title)
	if maxTokens <= 0 {
		maxTokens = 256
	}
	inputIDs = make([]int64, maxTokens)
	attentionMask = make([]int64, maxTokens)
	tokenTypeIDs = make([]int64, maxTokens)

	inputIDs[0] = 101 // [CLS]
	attentionMask[0] = 1

	pos := 1
	for _, word := range words {
		if pos >= maxTokens-1 {
			break
		}
		inputIDs[pos] = int64(HashString(word) % 30000)
		attentionMask[pos] = 1
		pos++
	}
	if pos < maxTokens {
		inputIDs[pos] = 102 // [SEP]
		attentionMask[pos] = 1
	}
	return inputIDs, attentionMask, tokenTypeIDs
}

// SplitWords splits a title on whitespace and returns its non-empty words.
func SplitWords(title string) []string {
	var words []string
	word := ""
	for _, r := range title {
		if r == ' ' || r == '\n' || r == '\t' {
			if word != "" {
				words = append(words, word)
				word = ""
			}
		} else {
			word += string(r)
		}
	}
	if word != "" {
		words = append(words, word)
	}
	return words
}

// HashString returns a deterministic non-negative hash, used as a token ID by
// SimpleTokenizer and as a dimension index by MockEmbedder.
func HashString(s string) int {
	h := 0
	for _, c := range s {
		h = 31*h + int(c)
	}
	if h < 0 {
		h = -h
	}
	return h
}
