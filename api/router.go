package api

import (
	"github.com/gin-gonic/gin"
	"github.com/kobstaw/kanty-grimoire-backend/internal/grimoire"
	"github.com/kobstaw/kanty-grimoire-backend/internal/profile"
	"github.com/kobstaw/kanty-grimoire-backend/internal/spell"
)

// SetupRoutes 注册项目的所有API路由
func SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		// 认证相关的路由 /api/auth
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", profile.RegisterHandler)
			authRoutes.POST("/login", profile.LoginHandler)
		}

		// 用户资料 /api/profile
		api.GET("/profile/me", profile.RequireAuthMiddleware(), profile.MeHandler)

		// 条目相关的路由组 /api/spells
		// 读取是公开的，可选加载身份以计算编辑权限；写入要求认证
		spellRoutes := api.Group("/spells")
		{
			spellRoutes.GET("", profile.LoadIdentityMiddleware(), spell.GetSpells)
			spellRoutes.GET("/suggest", spell.GetSuggestions)
			spellRoutes.GET("/:id", profile.LoadIdentityMiddleware(), spell.GetSpellByID)

			spellRoutes.POST("", profile.RequireAuthMiddleware(), spell.CreateSpellHandler)
			spellRoutes.PUT("/:id", profile.RequireAuthMiddleware(), spell.UpdateSpellHandler)
			spellRoutes.DELETE("/:id", profile.RequireAuthMiddleware(), spell.DeleteSpellHandler)
		}

		// 角色及其名下数据，全部要求认证
		characterRoutes := api.Group("/characters", profile.RequireAuthMiddleware())
		{
			characterRoutes.POST("", grimoire.CreateCharacterHandler)
			characterRoutes.GET("", grimoire.ListCharactersHandler)
			characterRoutes.DELETE("/:id", grimoire.DeleteCharacterHandler)

			characterRoutes.GET("/:id/known-spells", grimoire.ListKnownSpellsHandler)
			characterRoutes.POST("/:id/known-spells/toggle", grimoire.ToggleKnownSpellHandler)
			characterRoutes.PUT("/:id/known-spells/order", grimoire.ReorderKnownSpellsHandler)

			characterRoutes.POST("/:id/spellbooks", grimoire.CreateSpellbookHandler)
			characterRoutes.GET("/:id/spellbooks", grimoire.ListSpellbooksHandler)
		}

		// 法术书及书页
		spellbookRoutes := api.Group("/spellbooks", profile.RequireAuthMiddleware())
		{
			spellbookRoutes.GET("/:id/spells", grimoire.ListSpellbookSpellsHandler)
			spellbookRoutes.POST("/:id/spells", grimoire.AddSpellbookSpellHandler)
			spellbookRoutes.DELETE("/:id", grimoire.DeleteSpellbookHandler)
		}
		spellbookSpellRoutes := api.Group("/spellbook-spells", profile.RequireAuthMiddleware())
		{
			spellbookSpellRoutes.PATCH("/:id/status", grimoire.SetSpellbookSpellStatusHandler)
			spellbookSpellRoutes.DELETE("/:id", grimoire.RemoveSpellbookSpellHandler)
		}
	}
}
