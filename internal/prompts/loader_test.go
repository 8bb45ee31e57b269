package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("recommend.json", "explain-recommendation")
	require.NoError(t, err)
	assert.Contains(t, prompt, "Explain why this job matches the user")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get("recommend.json", "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestAllPromptFilesParse(t *testing.T) {
	ClearCache()

	expected := map[string][]string{
		"recommend.json": {"explain-recommendation"},
		"skill_gap.json": {"analyze-skill-gap"},
		"advisor.json":   {"advisor-system", "advisor-user"},
	}
	for file, keys := range expected {
		got, err := List(file)
		require.NoError(t, err, file)
		assert.Equal(t, keys, got, file)
	}
}

func TestFormat(t *testing.T) {
	template := "Hello {{.Name}}, welcome to {{.Company}}!"
	data := map[string]string{
		"Name":    "Alice",
		"Company": "Acme Corp",
	}

	assert.Equal(t, "Hello Alice, welcome to Acme Corp!", Format(template, data))
}

func TestFormat_EmptyData(t *testing.T) {
	assert.Equal(t, "Hello {{.Name}}", Format("Hello {{.Name}}", map[string]string{}))
}

func TestRender(t *testing.T) {
	ClearCache()

	out, err := Render("recommend.json", "explain-recommendation", map[string]string{
		"Title":   "Backend Engineer",
		"Company": "Acme",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Job: Backend Engineer at Acme")
	assert.NotContains(t, out, "{{.Title}}")

	_, err = Render("recommend.json", "missing", nil)
	assert.Error(t, err)
}

func TestCaching(t *testing.T) {
	ClearCache()

	prompt1, err := Get("advisor.json", "advisor-system")
	require.NoError(t, err)
	prompt2, err := Get("advisor.json", "advisor-system")
	require.NoError(t, err)

	assert.Equal(t, prompt1, prompt2)
}
