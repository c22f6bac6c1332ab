package routes

import (
	"fleura_back_end/internal/handlers/blog"
	"fleura_back_end/internal/handlers/order"
	"fleura_back_end/internal/handlers/payement"
	"fleura_back_end/internal/handlers/shop"
	"fleura_back_end/internal/handlers/user"
	"fleura_back_end/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	api.Use(middleware.APIRateLimit())

	// ===== AUTH =====
	auth := api.Group("/auth")
	{
		auth.POST("/register", middleware.RegisterRateLimit(), user.Register)
		auth.POST("/verify-email", user.VerifyEmail)
		auth.POST("/login", middleware.LoginRateLimit(), user.Login)
		auth.POST("/logout", user.Logout)
		auth.POST("/forgot-password", user.ForgotPassword)
		auth.POST("/reset-password", user.ResetPassword)

		// OAuth social (Google, Facebook)
		auth.GET("/:provider", user.BeginAuth)
		auth.GET("/:provider/callback", user.CallbackAuth)

		authed := auth.Group("")
		authed.Use(middleware.AuthRequired())
		{
			authed.GET("/me", user.Me)
			authed.PUT("/me", user.UpdateProfile)
			authed.POST("/change-password", user.ChangePassword)
		}
	}

	// ===== CATALOGUE PUBLIC =====
	api.GET("/flowers", shop.ListFlowers)
	api.GET("/flowers/:id", shop.GetFlower)
	api.GET("/categories", shop.ListCategories)
	api.GET("/categories/:id", shop.GetCategory)
	api.GET("/suppliers", shop.ListSuppliers)
	api.GET("/suppliers/:id", shop.GetSupplier)
	api.GET("/search", middleware.SearchRateLimit(), shop.SearchFlowers)

	// ===== BLOG PUBLIC =====
	api.GET("/blogs", blog.ListPublishedBlogs)
	api.GET("/blogs/:id", blog.GetBlog)
	api.GET("/blogs/:id/comments", blog.ListComments)

	// ===== ESPACE CONNECTÉ =====
	authed := api.Group("")
	authed.Use(middleware.AuthRequired())
	{
		// Panier
		cart := authed.Group("/cart")
		cart.Use(middleware.CartRateLimit())
		{
			cart.GET("", user.GetCart)
			cart.POST("/add", user.AddToCart)
			cart.PUT("/items/:itemId", user.UpdateCartItem)
			cart.DELETE("/items/:itemId", user.RemoveCartItem)
			cart.DELETE("/clear", user.ClearCart)
		}
		authed.GET("/cart/ws", user.CartWebSocket)

		// Commandes
		authed.POST("/orders/checkout", order.Checkout)
		authed.GET("/orders", order.ListMyOrders)
		authed.GET("/orders/:id", order.GetOrder)
		authed.POST("/orders/:id/cancel", order.CancelOrder)
		authed.POST("/orders/:id/invoice", order.CreateInvoice)
		authed.GET("/orders/:id/invoice/pdf", order.DownloadInvoicePDF)

		// Paiements
		authed.POST("/payments/vnpay/create", payement.CreateVNPayPayment)
		authed.POST("/payments/stripe/create", payement.CreatePaymentIntent)

		// Blog : rédaction et workflow
		authed.GET("/blogs/mine", blog.ListMyBlogs)
		authed.POST("/blogs", blog.CreateBlog)
		authed.PUT("/blogs/:id", blog.UpdateBlog)
		authed.DELETE("/blogs/:id", blog.DeleteBlog)
		authed.POST("/blogs/:id/submit", blog.SubmitBlog)
		authed.POST("/blogs/:id/publish", blog.PublishBlog)
		authed.POST("/blogs/:id/unpublish", blog.UnpublishBlog)
		authed.POST("/blogs/:id/comments", blog.CreateComment)
		authed.PUT("/blogs/:id/comments/:commentId/hide", blog.HideComment)
		authed.PUT("/blogs/:id/comments/:commentId/unhide", blog.UnhideComment)

		// Fournisseurs (rôle supplier ou admin)
		suppliers := authed.Group("/suppliers")
		suppliers.Use(middleware.RequireSupplier)
		{
			suppliers.POST("", shop.CreateSupplier)
			suppliers.PUT("/:id", shop.UpdateSupplier)
			suppliers.POST("/:id/listings", shop.CreateListing)
			suppliers.PUT("/:id/listings/:listingId", shop.UpdateListing)
			suppliers.DELETE("/:id/listings/:listingId", shop.DeleteListing)
		}
	}

	// ===== CALLBACKS PASSERELLES (non authentifiés) =====
	api.GET("/payments/vnpay/callback", payement.VNPayCallback)
	api.POST("/payments/stripe/webhook", payement.StripeWebhook)

	// ===== ADMINISTRATION =====
	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.RequireAdmin)
	{
		// Catalogue
		admin.POST("/flowers", shop.CreateFlower)
		admin.PUT("/flowers/:id", shop.UpdateFlower)
		admin.DELETE("/flowers/:id", shop.DeleteFlower)
		admin.POST("/flowers/:id/images", shop.UploadFlowerImage)
		admin.DELETE("/flowers/:id/images", shop.DeleteFlowerImage)
		admin.POST("/categories", shop.CreateCategory)
		admin.PUT("/categories/:id", shop.UpdateCategory)
		admin.DELETE("/categories/:id", shop.DeleteCategory)

		// Commandes
		admin.GET("/orders", order.AdminListOrders)
		admin.PUT("/orders/:id/status", order.AdminUpdateOrderStatus)

		// Modération du blog
		admin.GET("/blogs/pending", blog.ListPendingBlogs)
		admin.POST("/blogs/:id/approve", blog.ApproveBlog)
		admin.POST("/blogs/:id/reject", blog.RejectBlog)
	}
}
