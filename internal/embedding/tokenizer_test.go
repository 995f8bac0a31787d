package embedding

import (
	"testing"
)

func TestSimpleTokenizerTokenize(t *testing.T) {
	tok := &SimpleTokenizer{}
	ids, attn, types := tok.Tokenize("boAt Rockerz 450 Bluetooth Headphones", 10)
	if len(ids) != 10 || len(attn) != 10 || len(types) != 10 {
		t.Fatalf("tensor lengths = %d/%d/%d, want 10", len(ids), len(attn), len(types))
	}
	if ids[0] != 101 {
		t.Errorf("expected CLS 101, got %d", ids[0])
	}
	if attn[0] != 1 || attn[1] != 1 {
		t.Error("attention mask should cover CLS and the first word")
	}
	if attn[9] != 0 {
		t.Error("padding positions should not be attended")
	}
}

func TestSimpleTokenizerTruncatesLongTitles(t *testing.T) {
	tok := &SimpleTokenizer{}
	long := "Samsung 108 cm 43 inches Crystal 4K Neo Series Ultra HD Smart LED TV with Voice Assistant"
	ids, _, _ := tok.Tokenize(long, 8)
	if len(ids) != 8 {
		t.Fatalf("len(ids) = %d, want 8", len(ids))
	}
	if ids[7] != 102 {
		t.Errorf("ids[7] = %d, want SEP after truncation", ids[7])
	}
}

func TestSplitWords(t *testing.T) {
	words := SplitWords("  Mi 11X  5G  ")
	if len(words) != 3 {
		t.Errorf("expected 3 words, got %v", words)
	}
	if SplitWords("") != nil {
		t.Error("empty string should return nil")
	}
}

func TestHashString(t *testing.T) {
	if HashString("iphone") == 0 {
		t.Error("hash should be non-zero")
	}
	if HashString("iphone") != HashString("iphone") {
		t.Error("hash should be deterministic")
	}
	if HashString("iphone") == HashString("galaxy") {
		t.Error("distinct words should hash apart")
	}
}
