package routes

import (
	"github.com/gin-gonic/gin"

	"haiku-server/internal/interfaces/httpserver/handlers"
)

func registerProjectRoutes(router gin.IRoutes, p *handlers.Provider) {
	router.POST("/projects/", p.Project.Create)
	router.GET("/projects/", p.Project.List)

	router.POST("/projects/haiku", p.Haiku.Generate)
	router.POST("/projects/haiku-critique", p.Haiku.Critique)
	router.POST("/projects/generate-image-prompts", p.Haiku.ImagePrompts)
	router.PUT("/projects/update-image-prompt", p.Haiku.UpdateImagePrompt)
	router.POST("/projects/generate-image", p.Haiku.GenerateImage)

	router.GET("/projects/dashboard/:project_id", p.Dashboard.Subscribe)
}
