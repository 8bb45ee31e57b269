package llm

import (
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatRequest_Text(t *testing.T) {
	req := chatRequest("gpt-4o-mini", "explain", false)

	assert.Equal(t, "gpt-4o-mini", req.Model)
	require.Len(t, req.Messages, 1)
	assert.Equal(t, openai.ChatMessageRoleUser, req.Messages[0].Role)
	assert.Equal(t, "explain", req.Messages[0].Content)
	assert.InDelta(t, textTemperature, req.Temperature, 1e-6)
	assert.Nil(t, req.ResponseFormat)
}

func TestChatRequest_JSON(t *testing.T) {
	req := chatRequest("gpt-4o", "analyze", true)

	assert.InDelta(t, jsonTemperature, req.Temperature, 1e-6)
	require.NotNil(t, req.ResponseFormat)
	assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONObject, req.ResponseFormat.Type)
}
