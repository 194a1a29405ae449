package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/KwikEMart-api/internal/application/auth"
	"github.com/jhoicas/KwikEMart-api/internal/application/billing"
	"github.com/jhoicas/KwikEMart-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	ProductUC  *usecase.ProductUseCase
	CartUC     *usecase.CartUseCase
	CheckoutUC *usecase.CheckoutUseCase
	OfferUC    *usecase.OfferUseCase
	DailyDeals *usecase.DailyDealsUseCase
	UserUC     *usecase.UserUseCase
	ReviewUC   *usecase.ReviewUseCase
	SalesUC    *usecase.SalesUseCase
	InvoiceUC  *billing.InvoiceUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (registro y login públicos; /me requiere Bearer Token)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Catálogo (público); las reseñas requieren usuario autenticado
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	reviewHandler := NewReviewHandler(deps.ReviewUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/:id/reviews", AuthMiddleware(deps.JWTSecret), reviewHandler.Add)

	// Carrito y checkout: sesión vía X-Cart-Session; el token es opcional
	// (invitados compran sin cuenta, pero un token inválido se rechaza)
	optional := OptionalAuthMiddleware(deps.JWTSecret)

	cart := api.Group("/cart", optional)
	cartHandler := NewCartHandler(deps.CartUC)
	cart.Get("/", cartHandler.Get)
	cart.Post("/items", cartHandler.AddItem)
	cart.Put("/items/:productId", cartHandler.UpdateQuantity)
	cart.Delete("/items/:productId", cartHandler.RemoveItem)
	cart.Post("/toggle", cartHandler.Toggle)
	cart.Delete("/", cartHandler.Clear)

	checkout := api.Group("/checkout", optional)
	checkoutHandler := NewCheckoutHandler(deps.CheckoutUC)
	checkout.Get("/", checkoutHandler.GetState)
	checkout.Post("/shipping", checkoutHandler.SubmitShipping)
	checkout.Post("/payment", checkoutHandler.SubmitPayment)

	// Registro manual de transacciones (ventas en mostrador)
	salesHandler := NewSalesHandler(deps.SalesUC)
	api.Post("/transactions", salesHandler.CreateTransaction)

	// Facturación del usuario autenticado
	invoices := api.Group("/invoices", AuthMiddleware(deps.JWTSecret))
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoices.Get("/", invoiceHandler.History)
	invoices.Get("/:index/pdf", invoiceHandler.InvoicePDF)

	// Back office (requiere rol admin)
	admin := api.Group("/admin", AuthMiddleware(deps.JWTSecret), RequireRole("admin"))

	adminProducts := admin.Group("/products")
	adminProducts.Post("/", productHandler.Create)
	adminProducts.Put("/:id", productHandler.Update)
	adminProducts.Delete("/:id", productHandler.Delete)
	adminProducts.Put("/:id/reviews/:index", reviewHandler.UpdateComment)
	adminProducts.Delete("/:id/reviews/:index", reviewHandler.Delete)

	admin.Get("/inventory/stats", productHandler.InventoryStats)

	offers := admin.Group("/offers")
	offerHandler := NewOfferHandler(deps.OfferUC, deps.DailyDeals)
	offers.Get("/", offerHandler.List)
	offers.Post("/", offerHandler.Create)
	offers.Put("/:id", offerHandler.Update)
	offers.Delete("/:id", offerHandler.Delete)
	offers.Post("/daily-deals/apply", offerHandler.ApplyDailyDeals)

	users := admin.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id/role", userHandler.UpdateRole)

	admin.Get("/reviews", reviewHandler.ListAll)

	sales := admin.Group("/sales")
	sales.Get("/transactions", salesHandler.ListTransactions)
	sales.Get("/summary", salesHandler.Summary)
}
