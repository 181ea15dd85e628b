package groq_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"judol-guard/config"
	"judol-guard/groq"
)

func TestParseFilename(t *testing.T) {
	name, err := groq.ParseFilename(`attachment; filename="batch_abc_output.jsonl"`)
	require.NoError(t, err)
	assert.Equal(t, "batch_abc_output.jsonl", name)
}

func TestParseFilenameStripsDirectories(t *testing.T) {
	name, err := groq.ParseFilename(`attachment; filename="../../etc/passwd"`)
	require.NoError(t, err)
	assert.Equal(t, "passwd", name)
}

func TestParseFilenameMissingHeader(t *testing.T) {
	_, err := groq.ParseFilename("")
	assert.Error(t, err)
}

func TestParseFilenameWithoutFilename(t *testing.T) {
	_, err := groq.ParseFilename("attachment")
	assert.Error(t, err)
}

func TestExtractWords(t *testing.T) {
	record := json.RawMessage(`{"response":{"body":{"choices":[{"message":{"content":"aero88, dora77, sawer4d"}}]}}}`)

	words, err := groq.ExtractWords(record)

	require.NoError(t, err)
	assert.Equal(t, []string{"aero88", "dora77", "sawer4d"}, words)
}

func TestExtractWordsSingleWord(t *testing.T) {
	record := json.RawMessage(`{"response":{"body":{"choices":[{"message":{"content":"sawer4d"}}]}}}`)

	words, err := groq.ExtractWords(record)

	require.NoError(t, err)
	assert.Equal(t, []string{"sawer4d"}, words)
}

func TestExtractWordsNoChoices(t *testing.T) {
	record := json.RawMessage(`{"response":{"body":{"choices":[]}}}`)

	_, err := groq.ExtractWords(record)

	assert.Error(t, err)
}

func TestExtractWordsEmptyContent(t *testing.T) {
	record := json.RawMessage(`{"response":{"body":{"choices":[{"message":{"content":""}}]}}}`)

	_, err := groq.ExtractWords(record)

	assert.Error(t, err)
}

func TestJSONLRoundTrip(t *testing.T) {
	cfg := config.GroqConfig{Model: "llama-3.3-70b-versatile", Temperature: 1, MaxCompletionTokens: 1024}
	requests := []any{
		groq.NewExtractionRequest(cfg, []string{"main di aero88", "cuan di dora77"}),
		groq.NewExtractionRequest(cfg, []string{"gacor di sawer4d"}),
	}

	path := filepath.Join(t.TempDir(), "input.jsonl")
	require.NoError(t, groq.WriteJSONL(path, requests))

	records, err := groq.ReadJSONL(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	var decoded groq.BatchRequest
	require.NoError(t, json.Unmarshal(records[0], &decoded))
	assert.Equal(t, "POST", decoded.Method)
	assert.Equal(t, "/v1/chat/completions", decoded.URL)
	assert.NotEmpty(t, decoded.CustomID)
	require.Len(t, decoded.Body.Messages, 2)
	assert.Equal(t, "system", decoded.Body.Messages[0].Role)
	assert.Contains(t, decoded.Body.Messages[1].Content, "<comment>main di aero88\ncuan di dora77</comment>")
}

func TestReadJSONLSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mixed.jsonl")
	content := "{\"ok\":1}\nnot json at all\n\n{\"ok\":2}\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	records, err := groq.ReadJSONL(path)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.JSONEq(t, `{"ok":1}`, string(records[0]))
	assert.JSONEq(t, `{"ok":2}`, string(records[1]))
}

func TestNewExtractionRequestUniqueIDs(t *testing.T) {
	cfg := config.GroqConfig{Model: "llama-3.3-70b-versatile"}

	a := groq.NewExtractionRequest(cfg, []string{"x"})
	b := groq.NewExtractionRequest(cfg, []string{"x"})

	assert.NotEqual(t, a.CustomID, b.CustomID)
}
