package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appessay "essay-ai-api/internal/application/essay"
	"essay-ai-api/internal/config"
	"essay-ai-api/pkg/errors"
)

type stubChatModel struct {
	reply *schema.Message
	err   error
}

func (s *stubChatModel) Generate(_ context.Context, _ []*schema.Message, _ ...einomodel.Option) (*schema.Message, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.reply, nil
}

func (s *stubChatModel) Stream(_ context.Context, _ []*schema.Message, _ ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, nil
}

type stubFactory struct {
	chatModel *stubChatModel
	err       error
}

func (f *stubFactory) Get(_ context.Context, _ string) (einomodel.BaseChatModel, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.chatModel, nil
}

func testConfig() *config.Config {
	return &config.Config{
		LLM: config.LLMConfig{
			DefaultProvider: "azure",
			Providers: map[string]config.ProviderConfig{
				"azure": {Model: "gpt-4o", Temperature: 0.7},
			},
		},
		Essay: config.EssayConfig{
			DefaultLength:       500,
			MaxCompletionTokens: 12000,
		},
	}
}

func newTestHandler(factory *stubFactory) *EssayHandler {
	cfg := testConfig()
	gen := appessay.NewGenerator(cfg, factory, nil, nil)
	return NewEssayHandler(cfg, gen, nil, nil)
}

func performGenerate(t *testing.T, h *EssayHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)
	r.POST("/v1/essays/generate", h.Generate)

	req := httptest.NewRequest(http.MethodPost, "/v1/essays/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestGenerate_Success(t *testing.T) {
	reply := schema.AssistantMessage(
		`{"title": "Boredom", "introduction": "Intro.", "body_paragraphs": [{"content": "Body."}], "conclusion": "End."}`,
		nil,
	)
	h := newTestHandler(&stubFactory{chatModel: &stubChatModel{reply: reply}})

	w := performGenerate(t, h, `{"topic": "Boredom", "essayType": "reflective", "writingStyle": "casual", "citationStyle": "none", "length": 500}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Content        string `json:"content"`
			WordCount      int    `json:"wordCount"`
			CharacterCount int    `json:"characterCount"`
			Topic          string `json:"topic"`
			Saved          bool   `json:"saved"`
			SaveError      string `json:"saveError"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Contains(t, resp.Data.Content, "# Boredom")
	assert.Contains(t, resp.Data.Content, "Body.")
	assert.Equal(t, "Boredom", resp.Data.Topic)
	assert.Positive(t, resp.Data.WordCount)
	assert.Positive(t, resp.Data.CharacterCount)

	// 无存储时以降级形态返回，内容不受影响
	assert.False(t, resp.Data.Saved)
	assert.NotEmpty(t, resp.Data.SaveError)
}

func TestGenerate_MissingFields(t *testing.T) {
	h := newTestHandler(&stubFactory{chatModel: &stubChatModel{}})

	w := performGenerate(t, h, `{"topic": "Boredom"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "essayType")
	assert.Contains(t, resp.Error, "writingStyle")
	assert.Contains(t, resp.Error, "citationStyle")
}

func TestGenerate_DefaultLengthApplied(t *testing.T) {
	reply := schema.AssistantMessage(`{"title": "T", "introduction": "I"}`, nil)
	h := newTestHandler(&stubFactory{chatModel: &stubChatModel{reply: reply}})

	// length 缺省时使用配置默认值，不应返回 400
	w := performGenerate(t, h, `{"topic": "T", "essayType": "a", "writingStyle": "b", "citationStyle": "c"}`)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGenerate_NotConfigured(t *testing.T) {
	h := newTestHandler(&stubFactory{
		err: errors.New(errors.CodeLLMNotConfigured, "essay generation service is not configured"),
	})

	w := performGenerate(t, h, `{"topic": "T", "essayType": "a", "writingStyle": "b", "citationStyle": "c", "length": 500}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "essay generation service is not configured", resp.Error)
	// 内部配置细节不外泄
	assert.NotContains(t, resp.Error, "api_key")
}

func TestGenerate_UpstreamFailure(t *testing.T) {
	h := newTestHandler(&stubFactory{chatModel: &stubChatModel{err: context.DeadlineExceeded}})

	w := performGenerate(t, h, `{"topic": "T", "essayType": "a", "writingStyle": "b", "citationStyle": "c", "length": 500}`)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "essay generation service is temporarily unavailable", resp.Error)
}

func TestGenerate_EmptyCompletion(t *testing.T) {
	reply := schema.AssistantMessage("   ", nil)
	h := newTestHandler(&stubFactory{chatModel: &stubChatModel{reply: reply}})

	w := performGenerate(t, h, `{"topic": "T", "essayType": "a", "writingStyle": "b", "citationStyle": "c", "length": 500}`)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGenerate_UnstructuredOutputStillSucceeds(t *testing.T) {
	raw := "Just plain prose, no JSON at all."
	reply := schema.AssistantMessage(raw, nil)
	h := newTestHandler(&stubFactory{chatModel: &stubChatModel{reply: reply}})

	w := performGenerate(t, h, `{"topic": "T", "essayType": "a", "writingStyle": "b", "citationStyle": "c", "length": 500}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Content string `json:"content"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, raw, resp.Data.Content)
}
