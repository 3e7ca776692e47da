package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketing_strategy_assistant/config"
	"marketing_strategy_assistant/generator"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.json")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerateCommandJSON(t *testing.T) {
	out, err := runCLI(t, "", "generate", "--brief", strings.Repeat("x", 25))
	require.NoError(t, err)

	var got generator.MarketingStrategy
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.NotEmpty(t, got.MarketingCopy)
	assert.NotEmpty(t, got.VisualStrategy)
	assert.NotEmpty(t, got.TargetAudience)
}

func TestGenerateCommandMarkdownFromStdin(t *testing.T) {
	out, err := runCLI(t, strings.Repeat("y", 30)+"\n", "generate", "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "## Visual Strategy")
}

func TestGenerateCommandRejectsShortBrief(t *testing.T) {
	_, err := runCLI(t, "", "generate", "--brief", "short")
	var verr *generator.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestGenerateCommandRejectsFormat(t *testing.T) {
	_, err := runCLI(t, "", "generate", "--brief", strings.Repeat("x", 25), "--format", "xml")
	assert.Error(t, err)
}

func TestBuildLLM(t *testing.T) {
	llm, err := buildLLM(t.Context(), config.LLMConfig{Provider: "mock"})
	require.NoError(t, err)
	assert.IsType(t, generator.MockLLM{}, llm)

	llm, err = buildLLM(t.Context(), config.LLMConfig{Provider: "openai", APIKey: "sk"})
	require.NoError(t, err)
	assert.IsType(t, &generator.OpenAILLM{}, llm)

	llm, err = buildLLM(t.Context(), config.LLMConfig{Provider: "deepseek", APIKey: "sk", Model: "deepseek-chat", BaseURL: "https://api.deepseek.com"})
	require.NoError(t, err)
	assert.Equal(t, "deepseek-chat", llm.(*generator.OpenAILLM).Model)

	_, err = buildLLM(t.Context(), config.LLMConfig{Provider: "llama"})
	assert.Error(t, err)
}
