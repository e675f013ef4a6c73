package handlers

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the storefront API under /api/v1.
func RegisterRoutes(router gin.IRouter, views *ViewHandler, engagement *EngagementHandler) {
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", HealthCheck)

		viewRoutes := v1.Group("/views")
		{
			viewRoutes.GET("/listing", views.GetListing)
			viewRoutes.GET("/search", views.GetSearch)
			viewRoutes.GET("/detail", views.GetDetail)
			viewRoutes.POST("/next", views.NextPage)
			viewRoutes.POST("/previous", views.PreviousPage)
			viewRoutes.POST("/search", views.SubmitSearch)
			viewRoutes.POST("/items/:pid/open", views.OpenItem)
			viewRoutes.POST("/leave", views.LeaveView)
		}

		engagementRoutes := v1.Group("/engagement")
		{
			engagementRoutes.POST("/items/:pid/hover/enter", engagement.HoverEnter)
			engagementRoutes.POST("/items/:pid/hover/leave", engagement.HoverLeave)
		}

		v1.POST("/cart", engagement.AddToCart)
		v1.POST("/wishlist", engagement.AddToWishlist)
	}
}
