// Package handler 提供 HTTP 请求处理器
package handler

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	appessay "essay-ai-api/internal/application/essay"
	"essay-ai-api/internal/config"
	"essay-ai-api/internal/domain/repository"
	"essay-ai-api/internal/infrastructure/persistence/redis"
	"essay-ai-api/internal/interfaces/http/dto"
	"essay-ai-api/internal/interfaces/http/middleware"
	"essay-ai-api/pkg/errors"
	"essay-ai-api/pkg/logger"
)

// EssayHandler 作文处理器
type EssayHandler struct {
	cfg       *config.Config
	generator *appessay.Generator
	essayRepo repository.EssayRepository
	cache     *redis.Cache
}

// NewEssayHandler 创建作文处理器
func NewEssayHandler(
	cfg *config.Config,
	generator *appessay.Generator,
	essayRepo repository.EssayRepository,
	cache *redis.Cache,
) *EssayHandler {
	return &EssayHandler{
		cfg:       cfg,
		generator: generator,
		essayRepo: essayRepo,
		cache:     cache,
	}
}

// Generate 生成作文
// @Summary 生成作文
// @Description 根据主题和写作参数生成一篇完整作文
// @Tags Essays
// @Accept json
// @Produce json
// @Param body body dto.GenerateEssayRequest true "生成参数"
// @Success 200 {object} dto.Response[dto.EssayData]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /v1/essays/generate [post]
func (h *EssayHandler) Generate(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.GenerateEssayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	targetLength := req.Length
	if targetLength == 0 {
		targetLength = h.cfg.Essay.DefaultLength
	}

	genReq := &appessay.GenerationRequest{
		Topic:         req.Topic,
		EssayType:     req.EssayType,
		WritingStyle:  req.WritingStyle,
		CitationStyle: req.CitationStyle,
		TargetLength:  targetLength,
		Requirements:  req.Requirements,
		Sources:       req.Sources,
		UserID:        middleware.GetUserID(c),
	}

	result, err := h.generator.Generate(ctx, genReq)
	if err != nil {
		if vErr, ok := err.(*appessay.ValidationError); ok {
			dto.BadRequest(c, vErr.Error())
			return
		}
		if errors.IsAppError(err) {
			appErr := errors.AsAppError(err)
			dto.Error(c, appErr.HTTPStatus, appErr.Message)
			return
		}
		logger.Error(ctx, "essay generation failed", err)
		dto.InternalError(c, "failed to generate essay")
		return
	}

	dto.Success(c, &dto.EssayData{
		Content:        result.Essay.Content,
		WordCount:      result.Essay.WordCount,
		CharacterCount: result.Essay.CharacterCount,
		Topic:          req.Topic,
		EssayType:      req.EssayType,
		WritingStyle:   req.WritingStyle,
		CitationStyle:  req.CitationStyle,
		EssayID:        result.EssayID,
		Saved:          result.Saved,
		SaveError:      result.SaveError,
	})
}

// ListEssays 获取当前用户的作文列表
// @Summary 获取作文列表
// @Tags Essays
// @Produce json
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页条数" default(20)
// @Success 200 {object} dto.Response[dto.EssayListResponse]
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/essays [get]
func (h *EssayHandler) ListEssays(c *gin.Context) {
	ctx := c.Request.Context()

	if h.essayRepo == nil {
		dto.ServiceUnavailable(c, "essay storage is not configured")
		return
	}

	userID := middleware.GetUserID(c)
	pageReq := dto.BindPage(c)

	result, err := h.essayRepo.ListByUser(ctx, userID, repository.NewPagination(pageReq.Page, pageReq.PageSize))
	if err != nil {
		logger.Error(ctx, "failed to list essays", err)
		dto.InternalError(c, "failed to list essays")
		return
	}

	resp := dto.ToEssayListResponse(result.Items)
	meta := dto.NewPageMeta(pageReq.Page, pageReq.PageSize, int(result.Total))
	dto.SuccessWithPage(c, resp, meta)
}

// GetEssay 获取作文详情
// @Summary 获取作文详情
// @Tags Essays
// @Produce json
// @Param eid path string true "作文 ID"
// @Success 200 {object} dto.Response[dto.EssayResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/essays/{eid} [get]
func (h *EssayHandler) GetEssay(c *gin.Context) {
	ctx := c.Request.Context()
	essayID := dto.BindEssayID(c)

	if h.essayRepo == nil {
		dto.ServiceUnavailable(c, "essay storage is not configured")
		return
	}

	// 详情走缓存，未命中时由 loader 落库读取
	if h.cache != nil {
		data, err := h.cache.GetOrLoad(ctx, redis.BuildEssayKey(essayID), h.cfg.Essay.CacheTTL, func() (interface{}, error) {
			essay, err := h.essayRepo.GetByID(ctx, essayID)
			if err != nil {
				return nil, err
			}
			if essay == nil {
				return nil, errors.ErrEssayNotFound
			}
			return dto.ToEssayResponse(essay), nil
		})
		if err != nil {
			h.respondEssayError(c, err)
			return
		}

		var resp dto.EssayResponse
		if err := json.Unmarshal(data, &resp); err == nil {
			dto.Success(c, &resp)
			return
		}
		// 缓存内容损坏时退化为直接读库
		logger.Warn(ctx, "corrupt essay cache entry, falling back to database", "essay_id", essayID)
	}

	essay, err := h.essayRepo.GetByID(ctx, essayID)
	if err != nil {
		h.respondEssayError(c, err)
		return
	}
	if essay == nil {
		dto.NotFound(c, "essay not found")
		return
	}
	dto.Success(c, dto.ToEssayResponse(essay))
}

func (h *EssayHandler) respondEssayError(c *gin.Context, err error) {
	if errors.IsAppError(err) {
		appErr := errors.AsAppError(err)
		dto.Error(c, appErr.HTTPStatus, appErr.Message)
		return
	}
	logger.Error(c.Request.Context(), "failed to get essay", err)
	dto.InternalError(c, "failed to get essay")
}
