package essay

import (
	"context"
	"strings"
	"time"

	"essay-ai-api/internal/application/quota"
	"essay-ai-api/internal/config"
	"essay-ai-api/internal/domain/entity"
	"essay-ai-api/internal/domain/repository"
	workflowchain "essay-ai-api/internal/workflow/chain"
	wfmodel "essay-ai-api/internal/workflow/model"
	workflowport "essay-ai-api/internal/workflow/port"
	"essay-ai-api/pkg/errors"
	"essay-ai-api/pkg/logger"
	"essay-ai-api/pkg/metrics"
)

// maxCompletionTokensCap token 预算硬上限
const maxCompletionTokensCap = 12000

// Generator 串联作文生成管线
type Generator struct {
	cfg   *config.Config
	chain *workflowchain.EssayChain

	// essayRepo 为空时跳过持久化，usage 为空时跳过记账；两者都是尽力而为
	essayRepo repository.EssayRepository
	usage     *quota.UsageRecorder
}

// Result 一次生成的完整产出
type Result struct {
	Essay    AssembledEssay
	Document *NormalizedDocument
	Strategy entity.RecoveryStrategy
	Meta     wfmodel.LLMUsageMeta

	// EssayID/Saved/SaveError 描述持久化结果；保存失败不影响内容返回
	EssayID   string
	Saved     bool
	SaveError string
}

func NewGenerator(
	cfg *config.Config,
	factory workflowport.ChatModelFactory,
	essayRepo repository.EssayRepository,
	usage *quota.UsageRecorder,
) *Generator {
	return &Generator{
		cfg:       cfg,
		chain:     workflowchain.NewEssayChain(factory),
		essayRepo: essayRepo,
		usage:     usage,
	}
}

// Generate 执行完整管线。
// 只有校验失败和生成调用失败会返回错误；归一化与装配是全函数，
// 持久化失败只在结果上做降级标注。
func (g *Generator) Generate(ctx context.Context, req *GenerationRequest) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	provider := strings.TrimSpace(g.cfg.LLM.DefaultProvider)
	providerCfg := g.cfg.LLM.Providers[provider]

	in := &wfmodel.EssayGenerateInput{
		Topic:         req.Topic,
		EssayType:     req.EssayType,
		WritingStyle:  req.WritingStyle,
		CitationStyle: req.CitationStyle,
		TargetLength:  req.TargetLength,
		Requirements:  req.Requirements,
		Sources:       req.Sources,
		Provider:      provider,
	}

	budget := tokenBudget(req.TargetLength, g.cfg.Essay.MaxCompletionTokens)
	in.MaxTokens = &budget

	start := time.Now()
	outMsg, err := g.chain.Invoke(ctx, in)
	duration := time.Since(start)

	metrics.LLMCallDuration.WithLabelValues(provider, providerCfg.Model).Observe(duration.Seconds())
	if err != nil {
		metrics.LLMCallTotal.WithLabelValues(provider, providerCfg.Model, "error").Inc()
		metrics.EssayGenerationTotal.WithLabelValues(req.EssayType, "error").Inc()

		// 配置错误原样上抛（500），其余一律按上游不可用处理（503）
		if appErr, ok := err.(*errors.AppError); ok && appErr.Code == errors.CodeLLMNotConfigured {
			logger.Error(ctx, "essay generation not configured", err, "provider", provider)
			return nil, appErr
		}
		logger.Error(ctx, "essay generation upstream call failed", err,
			"provider", provider,
			"duration_ms", duration.Milliseconds(),
		)
		return nil, errors.Wrap(err, errors.CodeLLMCallFailed, "essay generation service is temporarily unavailable")
	}
	metrics.LLMCallTotal.WithLabelValues(provider, providerCfg.Model, "success").Inc()

	rawText := outMsg.Content
	if strings.TrimSpace(rawText) == "" {
		// 上游契约被破坏：成功响应但内容为空
		metrics.EssayGenerationTotal.WithLabelValues(req.EssayType, "error").Inc()
		return nil, errors.New(errors.CodeEmptyCompletion, "generation service returned an empty response")
	}

	meta := wfmodel.LLMUsageMeta{
		Provider:    provider,
		Model:       providerCfg.Model,
		Temperature: providerCfg.Temperature,
		GeneratedAt: time.Now().UTC(),
	}
	if outMsg.ResponseMeta != nil && outMsg.ResponseMeta.Usage != nil {
		meta.PromptTokens = outMsg.ResponseMeta.Usage.PromptTokens
		meta.CompletionTokens = outMsg.ResponseMeta.Usage.CompletionTokens
		metrics.LLMTokensUsed.WithLabelValues(provider, meta.Model, "prompt").Add(float64(meta.PromptTokens))
		metrics.LLMTokensUsed.WithLabelValues(provider, meta.Model, "completion").Add(float64(meta.CompletionTokens))
	}

	// 归一化与装配不会失败，只可能降级
	doc, strategy := Normalize(rawText)
	metrics.NormalizeRecoveryTotal.WithLabelValues(string(strategy)).Inc()
	if strategy != entity.RecoveryDirect {
		logger.Warn(ctx, "essay output recovered via fallback strategy",
			"strategy", string(strategy),
			"raw_length", len(rawText),
		)
	}

	assembled := Assemble(doc)

	metrics.EssayGenerationTotal.WithLabelValues(req.EssayType, "success").Inc()
	metrics.EssayGenerationDuration.WithLabelValues(req.EssayType).Observe(duration.Seconds())
	metrics.EssayWordCount.WithLabelValues(req.EssayType).Observe(float64(assembled.WordCount))

	res := &Result{
		Essay:    assembled,
		Document: doc,
		Strategy: strategy,
		Meta:     meta,
	}

	g.persist(ctx, req, res, duration)
	g.recordUsage(ctx, req, res, duration)

	return res, nil
}

// persist 尽力保存，失败只做降级标注
func (g *Generator) persist(ctx context.Context, req *GenerationRequest, res *Result, duration time.Duration) {
	if g.essayRepo == nil {
		res.SaveError = "essay storage is not configured"
		return
	}

	record := entity.NewEssay(req.UserID)
	record.Topic = req.Topic
	record.EssayType = req.EssayType
	record.WritingStyle = req.WritingStyle
	record.CitationStyle = req.CitationStyle
	record.TargetLength = req.TargetLength
	record.Requirements = req.Requirements
	record.Sources = req.Sources
	record.SetContent(res.Essay.Content, res.Essay.WordCount, res.Essay.CharacterCount)
	record.GenerationMetadata = &entity.GenerationMetadata{
		Provider:         res.Meta.Provider,
		Model:            res.Meta.Model,
		PromptTokens:     res.Meta.PromptTokens,
		CompletionTokens: res.Meta.CompletionTokens,
		Temperature:      res.Meta.Temperature,
		RecoveryStrategy: string(res.Strategy),
		GeneratedAt:      res.Meta.GeneratedAt.Format(time.RFC3339),
	}

	if err := g.essayRepo.Create(ctx, record); err != nil {
		metrics.PersistFailureTotal.Inc()
		logger.Warn(ctx, "essay persistence failed, returning unsaved result",
			"error", err.Error(),
			"duration_ms", duration.Milliseconds(),
		)
		res.Saved = false
		res.SaveError = "essay was generated but could not be saved to your history"
		return
	}

	res.Saved = true
	res.EssayID = record.ID
}

// recordUsage 记账失败同样不阻断响应
func (g *Generator) recordUsage(ctx context.Context, req *GenerationRequest, res *Result, duration time.Duration) {
	if g.usage == nil {
		return
	}
	_ = g.usage.Record(ctx, quota.LLMUsageInput{
		UserID:           req.UserID,
		Provider:         res.Meta.Provider,
		Model:            res.Meta.Model,
		Workflow:         "essay_generate",
		PromptTokens:     res.Meta.PromptTokens,
		CompletionTokens: res.Meta.CompletionTokens,
		DurationMs:       int(duration.Milliseconds()),
	})
}

// tokenBudget 按目标字数推导 token 预算：targetLength*3，封顶 cap
func tokenBudget(targetLength, configuredCap int) int {
	capTokens := configuredCap
	if capTokens <= 0 || capTokens > maxCompletionTokensCap {
		capTokens = maxCompletionTokensCap
	}
	budget := targetLength * 3
	if budget > capTokens {
		budget = capTokens
	}
	if budget < 1 {
		budget = 1
	}
	return budget
}
