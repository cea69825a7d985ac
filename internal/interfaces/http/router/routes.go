// Package router 提供 HTTP 路由配置
package router

import (
	"essay-ai-api/internal/interfaces/http/handler"

	"github.com/gin-gonic/gin"
)

// RegisterV1Routes 注册 v1 版本路由
func RegisterV1Routes(
	v1 *gin.RouterGroup,
	essayHandler *handler.EssayHandler,
) {
	// 作文管理
	essays := v1.Group("/essays")
	{
		essays.POST("/generate", essayHandler.Generate)
		essays.GET("", essayHandler.ListEssays)
		essays.GET("/:eid", essayHandler.GetEssay)
	}
}
