package main

import (
	"strings"

	"restopos-backend/internal/auth"
	"restopos-backend/internal/catalog"
	"restopos-backend/internal/chairs"
	"restopos-backend/internal/config"
	"restopos-backend/internal/coupons"
	"restopos-backend/internal/credit"
	"restopos-backend/internal/customers"
	"restopos-backend/internal/database"
	"restopos-backend/internal/delivery"
	"restopos-backend/internal/ledger"
	"restopos-backend/internal/logger"
	"restopos-backend/internal/menu"
	"restopos-backend/internal/mess"
	"restopos-backend/internal/models"
	"restopos-backend/internal/notifications"
	"restopos-backend/internal/orders"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	// Money fields serialize as JSON numbers with plain decimal notation.
	decimal.MarshalJSONWithoutQuotes = true

	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			logger.L().Error("unexpected error", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register", auth.RegisterHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))
	api.Post("/auth/passcode-login", auth.PasscodeLoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Catalog
	protected.Get("/categories", catalog.ListCategoriesHandler())
	protected.Post("/categories", catalog.CreateCategoryHandler())
	protected.Delete("/categories/:id", catalog.DeleteCategoryHandler())
	protected.Get("/dishes", catalog.ListDishesHandler())
	protected.Get("/dishes/search", catalog.SearchDishesHandler())
	protected.Get("/dishes/:id", catalog.GetDishHandler())
	protected.Post("/dishes", catalog.CreateDishHandler())
	protected.Put("/dishes/:id", catalog.UpdateDishHandler())
	protected.Delete("/dishes/:id", catalog.DeleteDishHandler())
	protected.Get("/online-platforms", catalog.ListOnlineOrdersHandler())
	protected.Post("/online-platforms", catalog.CreateOnlineOrderHandler())
	protected.Get("/foc-products", catalog.ListFOCProductsHandler())
	protected.Post("/foc-products", catalog.CreateFOCProductHandler())

	// Orders
	protected.Get("/orders", orders.ListHandler())
	protected.Get("/orders/:id", orders.GetHandler())
	protected.Post("/orders", orders.CreateHandler())
	protected.Put("/orders/:id", orders.UpdateHandler())
	protected.Delete("/orders/:id", orders.DeleteHandler())
	protected.Delete("/orders/:id/items/:itemId", orders.RemoveItemHandler())
	protected.Patch("/orders/:id/status", orders.UpdateStatusHandler())
	protected.Post("/orders/:id/cancel", orders.CancelHandler())
	protected.Post("/orders/:id/recalculate", orders.RecalculateHandler())
	protected.Post("/orders/:id/change-type", orders.ChangeTypeHandler())

	// Order reports
	protected.Get("/reports/sales", orders.SalesReportHandler())
	protected.Get("/reports/online-delivery", orders.OnlineDeliveryReportHandler())
	protected.Get("/reports/drivers", orders.DriverReportHandler())
	protected.Get("/reports/order-history", orders.UserOrderHistoryHandler())

	// Credit accounts
	protected.Get("/credit-users", credit.ListUsersHandler())
	protected.Get("/credit-users/find", credit.FindByMobileHandler())
	protected.Get("/credit-users/:id", credit.GetUserHandler())
	protected.Post("/credit-users", credit.CreateUserHandler(cfg))
	protected.Put("/credit-users/:id", credit.UpdateUserHandler())
	protected.Delete("/credit-users/:id", credit.DeleteUserHandler())
	protected.Post("/credit-users/:id/make-payment", credit.MakePaymentHandler())
	protected.Post("/credit-users/:id/transactions", credit.RecordPaymentHandler())
	protected.Get("/credit-users/:id/transactions", credit.ListTransactionsHandler())
	protected.Get("/credit-users/:id/transactions/latest", credit.LatestTransactionHandler())

	// Mess subscriptions
	protected.Get("/mess", mess.ListHandler())
	protected.Get("/mess/report", mess.ReportHandler())
	protected.Get("/mess/:id", mess.GetHandler())
	protected.Post("/mess", mess.CreateHandler())
	protected.Put("/mess/:id", mess.UpdateHandler())
	protected.Delete("/mess/:id", mess.DeleteHandler())
	protected.Post("/mess/:id/transactions", mess.RecordTransactionHandler())
	protected.Get("/mess/:id/transactions", mess.ListTransactionsHandler())

	// Menus
	protected.Get("/menus", menu.ListHandler())
	protected.Get("/menus/:id", menu.GetHandler())
	protected.Post("/menus", menu.CreateHandler())
	protected.Put("/menus/:id", menu.UpdateHandler())
	protected.Delete("/menus/:id", menu.DeleteHandler())
	protected.Post("/menus/:id/items", menu.AddItemHandler())
	protected.Delete("/menus/:id/items/:itemId", menu.RemoveItemHandler())
	protected.Get("/mess-types", menu.ListMessTypesHandler())
	protected.Post("/mess-types", menu.CreateMessTypeHandler())

	// Bookkeeping
	protected.Get("/ledger/nature-groups", ledger.ListNatureGroupsHandler())
	protected.Post("/ledger/nature-groups", ledger.CreateNatureGroupHandler())
	protected.Get("/ledger/main-groups", ledger.ListMainGroupsHandler())
	protected.Post("/ledger/main-groups", ledger.CreateMainGroupHandler())
	protected.Get("/ledger/ledgers", ledger.ListLedgersHandler())
	protected.Post("/ledger/ledgers", ledger.CreateLedgerHandler())
	protected.Post("/ledger/vouchers", ledger.PostVoucherHandler())
	protected.Get("/ledger/vouchers/:voucherNo", ledger.FilterByVoucherHandler())
	protected.Get("/ledger/ledgers/:id/report", ledger.LedgerReportHandler())
	protected.Get("/ledger/profit-and-loss", ledger.ProfitAndLossHandler())

	// Chairs
	protected.Get("/chairs", chairs.ListChairsHandler())
	protected.Post("/chairs", chairs.CreateChairHandler())
	protected.Delete("/chairs/:id", chairs.DeleteChairHandler())
	protected.Get("/chair-bookings", chairs.ListBookingsHandler())
	protected.Get("/chair-bookings/:id", chairs.GetBookingHandler())
	protected.Post("/chair-bookings", chairs.CreateBookingHandler())
	protected.Patch("/chair-bookings/:id", chairs.UpdateBookingHandler())
	protected.Post("/chair-bookings/:id/confirm", chairs.ConfirmBookingHandler())
	protected.Post("/chair-bookings/:id/cancel", chairs.CancelBookingHandler())
	protected.Post("/chair-bookings/check-availability", chairs.CheckAvailabilityHandler())

	// Coupons
	protected.Get("/coupons", coupons.ListHandler())
	protected.Post("/coupons", coupons.CreateHandler())
	protected.Put("/coupons/:id", coupons.UpdateHandler())
	protected.Delete("/coupons/:id", coupons.DeleteHandler())
	protected.Post("/coupons/apply", coupons.ApplyHandler())

	// Customers
	protected.Get("/customers", customers.ListHandler())
	protected.Get("/customers/:id", customers.GetHandler())
	protected.Put("/customers/:id", customers.UpdateHandler())
	protected.Delete("/customers/:id", customers.DeleteHandler())

	// Notifications
	protected.Get("/notifications", notifications.ListHandler())
	protected.Get("/notifications/unread", notifications.UnreadHandler())
	protected.Patch("/notifications/:id/read", notifications.MarkAsReadHandler())
	protected.Patch("/notifications/read-all", notifications.MarkAllAsReadHandler())

	// Delivery workflow
	protected.Get("/delivery-orders", delivery.ListHandler())
	protected.Put("/delivery-orders/:id", delivery.UpdateHandler())

	driverRoutes := protected.Group("/driver")
	driverRoutes.Use(auth.RequireRole(models.RoleDriver, models.RoleAdmin))
	driverRoutes.Get("/deliveries", delivery.MyDeliveriesHandler())

	logger.L().Info("server starting", zap.String("port", cfg.HTTPPort))
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}
