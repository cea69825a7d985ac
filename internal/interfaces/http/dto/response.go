// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"github.com/gin-gonic/gin"
)

// Response 统一成功响应结构
type Response[T any] struct {
	Success bool      `json:"success"`
	Data    T         `json:"data"`
	Meta    *PageMeta `json:"meta,omitempty"`
}

// PageMeta 分页元数据
type PageMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// ErrorResponse 错误响应结构，error 始终是单条可读消息
type ErrorResponse struct {
	Error string `json:"error"`
}

// Success 返回成功响应
func Success[T any](c *gin.Context, data T) {
	c.JSON(200, Response[T]{
		Success: true,
		Data:    data,
	})
}

// SuccessWithPage 返回带分页的成功响应
func SuccessWithPage[T any](c *gin.Context, data T, meta *PageMeta) {
	c.JSON(200, Response[T]{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

// Error 返回错误响应
func Error(c *gin.Context, httpCode int, message string) {
	c.JSON(httpCode, ErrorResponse{Error: message})
}

// BadRequest 返回 400 错误
func BadRequest(c *gin.Context, message string) {
	Error(c, 400, message)
}

// Unauthorized 返回 401 错误
func Unauthorized(c *gin.Context, message string) {
	Error(c, 401, message)
}

// NotFound 返回 404 错误
func NotFound(c *gin.Context, message string) {
	Error(c, 404, message)
}

// TooManyRequests 返回 429 错误
func TooManyRequests(c *gin.Context, message string) {
	Error(c, 429, message)
}

// InternalError 返回 500 错误
func InternalError(c *gin.Context, message string) {
	Error(c, 500, message)
}

// ServiceUnavailable 返回 503 错误
func ServiceUnavailable(c *gin.Context, message string) {
	Error(c, 503, message)
}

// NewPageMeta 创建分页元数据
func NewPageMeta(page, pageSize, total int) *PageMeta {
	totalPages := total / pageSize
	if total%pageSize > 0 {
		totalPages++
	}
	return &PageMeta{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
