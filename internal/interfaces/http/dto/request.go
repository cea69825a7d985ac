// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// PageRequest 分页请求参数
type PageRequest struct {
	Page     int
	PageSize int
}

// BindPage 从查询参数解析分页
func BindPage(c *gin.Context) PageRequest {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return PageRequest{Page: page, PageSize: pageSize}
}

// BindEssayID 从路径参数获取作文 ID
func BindEssayID(c *gin.Context) string {
	return c.Param("eid")
}
