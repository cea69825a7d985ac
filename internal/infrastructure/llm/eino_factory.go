// Package llm 提供 LLM ChatModel 工厂
package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"essay-ai-api/internal/config"
	"essay-ai-api/pkg/errors"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
)

// EinoFactory 管理多个 Eino ChatModel 客户端实例
type EinoFactory struct {
	config *config.LLMConfig
	models map[string]model.BaseChatModel
	mu     sync.RWMutex
}

// NewEinoFactory 创建 Eino LLM 工厂
func NewEinoFactory(cfg *config.Config) *EinoFactory {
	return &EinoFactory{
		config: &cfg.LLM,
		models: make(map[string]model.BaseChatModel),
	}
}

// Get 获取指定名称的 ChatModel，如果未指定则返回默认客户端
func (f *EinoFactory) Get(ctx context.Context, name string) (model.BaseChatModel, error) {
	if name == "" {
		name = f.config.DefaultProvider
	}

	f.mu.RLock()
	m, ok := f.models[name]
	f.mu.RUnlock()
	if ok {
		return m, nil
	}

	// 惰性加载
	f.mu.Lock()
	defer f.mu.Unlock()

	// 再次检查防止竞态
	if m, ok = f.models[name]; ok {
		return m, nil
	}

	providerCfg, ok := f.config.Providers[name]
	if !ok {
		return nil, errors.New(errors.CodeLLMNotConfigured, "essay generation service is not configured").
			WithDetail(fmt.Sprintf("provider %s not found in LLM config", name))
	}

	// endpoint/credential/deployment 三者缺一不可，在发起任何网络调用前失败
	if err := validateProviderConfig(name, &providerCfg); err != nil {
		return nil, err
	}

	cmCfg := &openai.ChatModelConfig{
		APIKey:           providerCfg.APIKey,
		BaseURL:          providerCfg.BaseURL,
		Model:            providerCfg.Model,
		ByAzure:          providerCfg.ByAzure,
		APIVersion:       providerCfg.APIVersion,
		MaxTokens:        &providerCfg.MaxTokens,
		Temperature:      ptrFloat32(float32(providerCfg.Temperature)),
		TopP:             ptrFloat32(float32(providerCfg.TopP)),
		FrequencyPenalty: ptrFloat32(float32(providerCfg.FrequencyPenalty)),
		PresencePenalty:  ptrFloat32(float32(providerCfg.PresencePenalty)),
		Timeout:          providerCfg.Timeout,
	}

	// JSON 输出模式只是偏置，不保证返回体是合法 JSON（截断仍可能发生）
	if providerCfg.JSONMode {
		cmCfg.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	chatModel, err := openai.NewChatModel(ctx, cmCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create eino chat model for %s: %w", name, err)
	}

	f.models[name] = chatModel
	return chatModel, nil
}

// Default 返回默认 ChatModel
func (f *EinoFactory) Default(ctx context.Context) (model.BaseChatModel, error) {
	return f.Get(ctx, "")
}

// validateProviderConfig 校验必填配置项
func validateProviderConfig(name string, cfg *config.ProviderConfig) error {
	missing := make([]string, 0, 3)
	if strings.TrimSpace(cfg.APIKey) == "" {
		missing = append(missing, "api_key")
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		missing = append(missing, "base_url")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		missing = append(missing, "model")
	}
	if len(missing) > 0 {
		return errors.New(errors.CodeLLMNotConfigured, "essay generation service is not configured").
			WithDetail(fmt.Sprintf("provider %s missing: %s", name, strings.Join(missing, ", ")))
	}
	return nil
}

func ptrFloat32(f float32) *float32 {
	return &f
}
