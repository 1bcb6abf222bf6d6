package llm

import (
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
)

func TestNewAnthropicClientDefaultModel(t *testing.T) {
	c := NewAnthropicClient("key", "")
	if c.Model() != string(anthropic.ModelClaudeHaiku4_5) {
		t.Errorf("got model %q, want %q", c.Model(), anthropic.ModelClaudeHaiku4_5)
	}

	c = NewAnthropicClient("key", "claude-sonnet-4-5")
	if c.Model() != "claude-sonnet-4-5" {
		t.Errorf("got model %q", c.Model())
	}
}
