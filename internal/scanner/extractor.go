package scanner

import (
	"fmt"
	"os"
	"strings"
)

var newlineNormalizer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Extractor applies a fixed list of patterns to file contents.
type Extractor struct {
	patterns []Pattern
}

// NewExtractor creates an extractor over patterns. The slice is not copied and
// must not be modified afterwards.
func NewExtractor(patterns []Pattern) *Extractor {
	return &Extractor{patterns: patterns}
}

// ExtractFile reads path and extracts from its contents.
func (e *Extractor) ExtractFile(path string) (FileResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return FileResult{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return e.Extract(DecodeText(content)), nil
}

// Extract applies every pattern to text.
func (e *Extractor) Extract(text string) FileResult {
	set := make(NameSet)
	matches := 0
	for _, p := range e.patterns {
		p.Captures(text, func(value string) {
			set.Add(value)
			matches++
		})
	}
	return FileResult{Names: set.Values(), Matches: matches}
}

// DecodeText turns raw file bytes into text. Invalid UTF-8 sequences are
// dropped and \r\n or lone \r line endings become \n.
func DecodeText(content []byte) string {
	return newlineNormalizer.Replace(strings.ToValidUTF8(string(content), ""))
}
