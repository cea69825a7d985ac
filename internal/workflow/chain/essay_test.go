package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	llmctx "essay-ai-api/internal/domain/service"
	wfmodel "essay-ai-api/internal/workflow/model"
)

type stubChatModel struct {
	lastMessages []*schema.Message
	reply        *schema.Message
	err          error
}

func (s *stubChatModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	s.lastMessages = input
	if s.err != nil {
		return nil, s.err
	}
	return s.reply, nil
}

func (s *stubChatModel) Stream(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not implemented")
}

type stubFactory struct {
	chatModel *stubChatModel
	err       error
	gotCtx    context.Context
	gotName   string
}

func (f *stubFactory) Get(ctx context.Context, name string) (model.BaseChatModel, error) {
	f.gotCtx = ctx
	f.gotName = name
	if f.err != nil {
		return nil, f.err
	}
	return f.chatModel, nil
}

func essayInput() *wfmodel.EssayGenerateInput {
	return &wfmodel.EssayGenerateInput{
		Topic:         "The value of boredom",
		EssayType:     "reflective",
		WritingStyle:  "conversational",
		CitationStyle: "none",
		TargetLength:  500,
		Provider:      "azure",
	}
}

func TestEssayChain_Invoke(t *testing.T) {
	cm := &stubChatModel{reply: schema.AssistantMessage(`{"title": "ok"}`, nil)}
	factory := &stubFactory{chatModel: cm}
	chain := NewEssayChain(factory)

	out, err := chain.Invoke(context.Background(), essayInput())

	require.NoError(t, err)
	assert.Equal(t, `{"title": "ok"}`, out.Content)

	// 系统指令 + 用户指令各一条
	require.Len(t, cm.lastMessages, 2)
	assert.Equal(t, schema.System, cm.lastMessages[0].Role)
	assert.Equal(t, schema.User, cm.lastMessages[1].Role)
	assert.Contains(t, cm.lastMessages[1].Content, "The value of boredom")

	assert.Equal(t, "azure", factory.gotName)
	assert.Equal(t, "essay_generate", llmctx.WorkflowFromContext(factory.gotCtx))
}

func TestEssayChain_InvokeValidation(t *testing.T) {
	chain := NewEssayChain(&stubFactory{chatModel: &stubChatModel{}})

	_, err := chain.Invoke(context.Background(), nil)
	assert.Error(t, err)

	in := essayInput()
	in.Topic = " "
	_, err = chain.Invoke(context.Background(), in)
	assert.Error(t, err)

	in = essayInput()
	in.TargetLength = 0
	_, err = chain.Invoke(context.Background(), in)
	assert.Error(t, err)
}

func TestEssayChain_FactoryErrorPropagates(t *testing.T) {
	wantErr := errors.New("provider missing")
	chain := NewEssayChain(&stubFactory{err: wantErr})

	_, err := chain.Invoke(context.Background(), essayInput())

	assert.ErrorIs(t, err, wantErr)
}

func TestEssayChain_NilResponseIsError(t *testing.T) {
	chain := NewEssayChain(&stubFactory{chatModel: &stubChatModel{}})

	_, err := chain.Invoke(context.Background(), essayInput())

	assert.Error(t, err)
}
