package routes

import (
	"github.com/gofiber/fiber/v2"

	"edims-backend/controllers"
	"edims-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/auth/login", controllers.Login)
	api.Post("/auth/forgot-password", controllers.ForgotPassword)
	api.Post("/auth/reset-password", controllers.ResetPassword)

	// Everything else requires a valid token.
	protected := api.Group("")
	protected.Use(middlewares.Protect())
	protected.Use(middlewares.Idempotency())

	admin := middlewares.RequireAdmin()

	// Users
	protected.Post("/auth/register", admin, controllers.Register)
	protected.Get("/auth/users", admin, controllers.GetUsers)

	// Items
	protected.Post("/items", admin, controllers.CreateItem)
	protected.Get("/items", controllers.GetItems)
	protected.Get("/items/:id", controllers.GetItemByID)
	protected.Put("/items/:id", admin, controllers.UpdateItem)
	protected.Delete("/items/:id", admin, controllers.DeleteItem)

	// Vendors
	protected.Post("/vendors", admin, controllers.CreateVendor)
	protected.Get("/vendors", controllers.GetVendors)
	protected.Get("/vendors/:id", controllers.GetVendorByID)
	protected.Put("/vendors/:id", admin, controllers.UpdateVendor)
	protected.Delete("/vendors/:id", admin, controllers.DeleteVendor)

	// Departments
	protected.Post("/departments", admin, controllers.CreateDepartment)
	protected.Get("/departments", controllers.GetDepartments)
	protected.Get("/departments/:id", controllers.GetDepartmentByID)
	protected.Put("/departments/:id", admin, controllers.UpdateDepartment)
	protected.Delete("/departments/:id", admin, controllers.DeleteDepartment)

	// Purchase orders
	protected.Post("/purchase-orders", controllers.CreatePurchaseOrder)
	protected.Get("/purchase-orders", controllers.GetPurchaseOrders)
	protected.Get("/purchase-orders/:id", controllers.GetPurchaseOrderByID)

	// Challans (deliveries)
	protected.Post("/challans", controllers.CreateChallan)
	protected.Get("/challans", controllers.GetChallans)
	protected.Get("/challans/items-summary/query", controllers.GetChallanItemsSummary)
	protected.Get("/challans/:id", controllers.GetChallanByID)

	// Bills
	protected.Post("/bills", controllers.CreateBill)
	protected.Get("/bills", controllers.GetBills)
	protected.Get("/bills/:id", controllers.GetBillByID)
	protected.Put("/bills/:id/complete", admin, controllers.CompleteBill)
	protected.Delete("/bills/:id", controllers.DeleteBill)

	// Stock issues
	protected.Post("/stock-issues", controllers.CreateStockIssue)
	protected.Get("/stock-issues", controllers.GetStockIssues)

	// Reports
	protected.Get("/reports/stock", controllers.GetStockReport)
	protected.Get("/reports/item-ledger/:id", controllers.GetItemLedger)
	protected.Get("/reports/vendor-ledger/:id", controllers.GetVendorLedger)
	protected.Get("/reports/bill-summary", controllers.GetBillSummary)
}
