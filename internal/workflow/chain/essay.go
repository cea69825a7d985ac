package chain

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	llmctx "essay-ai-api/internal/domain/service"
	wfmodel "essay-ai-api/internal/workflow/model"
	workflowport "essay-ai-api/internal/workflow/port"
	workflowprompt "essay-ai-api/internal/workflow/prompt"
)

type EssayChain struct {
	factory workflowport.ChatModelFactory
}

func NewEssayChain(factory workflowport.ChatModelFactory) *EssayChain {
	return &EssayChain{factory: factory}
}

func (c *EssayChain) Invoke(ctx context.Context, in *wfmodel.EssayGenerateInput) (*schema.Message, error) {
	if c == nil || c.factory == nil {
		return nil, fmt.Errorf("llm factory not configured")
	}
	if in == nil {
		return nil, fmt.Errorf("input is nil")
	}
	if strings.TrimSpace(in.Topic) == "" {
		return nil, fmt.Errorf("topic is required")
	}
	if in.TargetLength <= 0 {
		return nil, fmt.Errorf("target_length is required")
	}

	ctx = llmctx.WithWorkflowProvider(ctx, "essay_generate", strings.TrimSpace(in.Provider))
	chatModel, err := c.factory.Get(ctx, strings.TrimSpace(in.Provider))
	if err != nil {
		return nil, err
	}

	msgs := formatEssayMessages(in)

	outMsg, err := chatModel.Generate(ctx, msgs, buildEssayModelOptions(in)...)
	if err != nil {
		return nil, err
	}
	if outMsg == nil {
		return nil, fmt.Errorf("empty llm response")
	}
	return outMsg, nil
}

func formatEssayMessages(in *wfmodel.EssayGenerateInput) []*schema.Message {
	return []*schema.Message{
		schema.SystemMessage(workflowprompt.BuildSystemInstruction()),
		schema.UserMessage(workflowprompt.BuildUserInstruction(in)),
	}
}

func buildEssayModelOptions(in *wfmodel.EssayGenerateInput) []model.Option {
	opts := make([]model.Option, 0, 3)
	if in == nil {
		return opts
	}
	if in.Temperature != nil {
		opts = append(opts, model.WithTemperature(*in.Temperature))
	}
	if in.MaxTokens != nil {
		opts = append(opts, model.WithMaxTokens(*in.MaxTokens))
	}
	if strings.TrimSpace(in.Model) != "" {
		opts = append(opts, model.WithModel(strings.TrimSpace(in.Model)))
	}
	return opts
}
