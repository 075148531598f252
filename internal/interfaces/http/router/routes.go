// Package router 提供 HTTP 路由配置
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterV1Routes 注册 v1 版本路由
func RegisterV1Routes(v1 *gin.RouterGroup, h Handlers) {
	// 作品管理
	works := v1.Group("/works")
	{
		works.GET("", h.Work.ListWorks)
		works.POST("", h.Work.CreateWork)
		works.GET("/:wid", h.Work.GetWork)
		works.PUT("/:wid", h.Work.UpdateWork)
		works.DELETE("/:wid", h.Work.DeleteWork)

		// 作品下的章节
		works.GET("/:wid/chapters", h.Chapter.ListChapters)
		works.POST("/:wid/chapters", h.Chapter.CreateChapter)

		// 作品下的术语表
		works.GET("/:wid/glossary", h.Glossary.ListTerms)
		works.POST("/:wid/glossary", h.Glossary.CreateTerm)

		// 作品下的设定条目
		works.GET("/:wid/lore", h.Lore.ListEntries)
		works.POST("/:wid/lore", h.Lore.CreateEntry)
	}

	// 章节管理
	chapters := v1.Group("/chapters")
	{
		chapters.GET("/:cid", h.Chapter.GetChapter)
		chapters.POST("/:cid/translate", h.Chapter.TranslateChapter)
		chapters.PATCH("/:cid/progress", h.Chapter.UpdateProgress)
	}

	// 术语管理
	glossary := v1.Group("/glossary")
	{
		glossary.DELETE("/:gid", h.Glossary.DeleteTerm)
	}

	// 设定条目管理
	lore := v1.Group("/lore")
	{
		lore.DELETE("/:lid", h.Lore.DeleteEntry)
	}
}
