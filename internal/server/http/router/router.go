package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/modulixo/storefront/internal/server/http/handlers"
	"github.com/modulixo/storefront/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StorefrontFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	ideaHandler := handlers.NewIdeaHandler(facade)

	api := engine.Group("/api")

	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)
	user.POST("/forgot-password", authHandler.ForgotPassword)
	user.POST("/reset-password", authHandler.ResetPassword)

	userAuth := user.Group("")
	userAuth.Use(middleware.AuthRequired(facade))
	userAuth.GET("/orders", orderHandler.List)

	orders := api.Group("/orders")
	orders.POST("", middleware.OptionalAuth(facade), orderHandler.Create)
	orders.GET("/:number", orderHandler.Get)
	orders.PATCH("/:number/status",
		middleware.AuthRequired(facade), middleware.AdminRequired(), orderHandler.UpdateStatus)

	registerContentRoutes(api, facade, catalogHandler, ideaHandler)

	return engine
}

type contentRoutes struct {
	path   string
	list   gin.HandlerFunc
	get    gin.HandlerFunc
	create gin.HandlerFunc
	update gin.HandlerFunc
	delete gin.HandlerFunc
}

func registerContentRoutes(api *gin.RouterGroup, parser middleware.TokenParser, catalog *handlers.CatalogHandler, ideas *handlers.IdeaHandler) {
	admin := []gin.HandlerFunc{middleware.AuthRequired(parser), middleware.AdminRequired()}

	routes := []contentRoutes{
		{"/categories", catalog.ListCategories, catalog.GetCategory, catalog.CreateCategory, catalog.UpdateCategory, catalog.DeleteCategory},
		{"/products", catalog.ListProducts, catalog.GetProduct, catalog.CreateProduct, catalog.UpdateProduct, catalog.DeleteProduct},
		{"/special-offers", catalog.ListOffers, catalog.GetOffer, catalog.CreateOffer, catalog.UpdateOffer, catalog.DeleteOffer},
		{"/ideas", ideas.List, ideas.Get, ideas.Create, ideas.Update, ideas.Delete},
	}

	for _, r := range routes {
		group := api.Group(r.path)
		group.GET("", r.list)
		group.GET("/:slug", r.get)
		group.POST("", append(append([]gin.HandlerFunc{}, admin...), r.create)...)
		group.PUT("/:id", append(append([]gin.HandlerFunc{}, admin...), r.update)...)
		group.DELETE("/:id", append(append([]gin.HandlerFunc{}, admin...), r.delete)...)
	}
}
