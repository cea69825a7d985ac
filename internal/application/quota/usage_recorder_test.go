package quota

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"essay-ai-api/internal/domain/entity"
)

type fakeUsageRepo struct {
	events []*entity.LLMUsageEvent
	err    error
}

func (f *fakeUsageRepo) Create(_ context.Context, evt *entity.LLMUsageEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, evt)
	return nil
}

func TestRecord_WritesEvent(t *testing.T) {
	repo := &fakeUsageRepo{}
	rec := NewUsageRecorder(repo)

	err := rec.Record(context.Background(), LLMUsageInput{
		UserID:           "u-1",
		Provider:         "azure",
		Model:            "gpt-4o",
		Workflow:         "essay_generate",
		PromptTokens:     120,
		CompletionTokens: 900,
		DurationMs:       4200,
	})

	require.NoError(t, err)
	require.Len(t, repo.events, 1)
	evt := repo.events[0]
	assert.Equal(t, "u-1", evt.UserID)
	assert.Equal(t, "essay_generate", evt.Workflow)
	assert.Equal(t, 120, evt.TokensPrompt)
	assert.Equal(t, 900, evt.TokensCompletion)
}

func TestRecord_SkipsAnonymousUser(t *testing.T) {
	repo := &fakeUsageRepo{}
	rec := NewUsageRecorder(repo)

	err := rec.Record(context.Background(), LLMUsageInput{UserID: "  ", PromptTokens: 10})

	assert.NoError(t, err)
	assert.Empty(t, repo.events)
}

func TestRecord_RejectsNegativeTokens(t *testing.T) {
	repo := &fakeUsageRepo{}
	rec := NewUsageRecorder(repo)

	err := rec.Record(context.Background(), LLMUsageInput{UserID: "u-1", PromptTokens: -1})

	assert.Error(t, err)
	assert.Empty(t, repo.events)
}

func TestRecord_SwallowsRepositoryFailure(t *testing.T) {
	repo := &fakeUsageRepo{err: errors.New("db down")}
	rec := NewUsageRecorder(repo)

	err := rec.Record(context.Background(), LLMUsageInput{UserID: "u-1", PromptTokens: 5})

	// 记账失败不向上传播
	assert.NoError(t, err)
}

func TestRecord_NilRecorderIsNoop(t *testing.T) {
	var rec *UsageRecorder

	assert.NoError(t, rec.Record(context.Background(), LLMUsageInput{UserID: "u-1"}))
}
