package handler

import (
	"github.com/bitfantasy/nimo-mes/internal/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the API under /api. Every route sees the caller when
// a valid token is sent; logout and exports require one.
func RegisterRoutes(r gin.IRouter, h *Handlers, auth middleware.Authenticator) {
	api := r.Group("/api")
	api.Use(middleware.OptionalAuth(auth))

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", h.Auth.Login)
		authGroup.GET("/me", h.Auth.Me)
		authGroup.POST("/logout", middleware.RequireAuth(auth), h.Auth.Logout)
	}
	api.GET("/plants", h.Auth.ListPlants)

	dashboard := api.Group("/dashboard")
	{
		dashboard.GET("/kpis", h.Dashboard.KPIs)
		dashboard.GET("/production", h.Dashboard.Production)
		dashboard.GET("/recent-workorders", h.Dashboard.RecentWorkOrders)
		dashboard.GET("/recent-ncrs", h.Dashboard.RecentNCRs)
	}

	api.GET("/items", h.Inventory.List)
	api.GET("/items/:id", h.Inventory.Get)
	api.GET("/products", h.Catalog.ListProducts)
	api.GET("/products/:id", h.Catalog.GetProduct)
	api.GET("/boms/:productId", h.Catalog.GetBOM)

	workorders := api.Group("/workorders")
	{
		workorders.GET("", h.Manufacturing.List)
		workorders.POST("", h.Manufacturing.Create)
		workorders.GET("/:id", h.Manufacturing.Get)
		workorders.PATCH("/:id", h.Manufacturing.Update)
		workorders.PATCH("/:id/operations/:opId", h.Manufacturing.UpdateOperation)
	}

	quality := api.Group("/quality")
	{
		quality.GET("/ncrs", h.Quality.ListNCRs)
		quality.POST("/ncrs", h.Quality.CreateNCR)
		quality.GET("/ncrs/:id", h.Quality.GetNCR)
		quality.PATCH("/ncrs/:id", h.Quality.UpdateNCR)
		quality.GET("/inspection-forms", h.Quality.ListInspectionForms)
		quality.GET("/inspection-results", h.Quality.ListInspectionResults)
	}

	api.GET("/machines", h.Machine.ListMachines)
	api.GET("/machines/telemetry", h.Machine.Telemetry)
	api.GET("/machines/:id", h.Machine.GetMachine)
	api.GET("/integrations", h.Machine.ListIntegrations)
	api.PATCH("/integrations/:id", h.Machine.UpdateIntegration)

	api.POST("/planning/mrp", h.Planning.RunMRP)
	api.GET("/planning/mrp/runs", h.Planning.ListRuns)

	shopfloor := api.Group("/shopfloor")
	{
		shopfloor.POST("/clock-in", h.ShopFloor.ClockIn)
		shopfloor.POST("/clock-out", h.ShopFloor.ClockOut)
		shopfloor.GET("/sessions", h.ShopFloor.ListSessions)
		shopfloor.POST("/production", h.ShopFloor.RecordProduction)
		shopfloor.GET("/production", h.ShopFloor.ListProduction)
	}

	exports := api.Group("/exports", middleware.RequireAuth(auth))
	{
		exports.GET("/inventory.xlsx", h.Export.Inventory)
		exports.GET("/workorders.xlsx", h.Export.WorkOrders)
	}

	api.GET("/events", h.SSE.Stream)
}
