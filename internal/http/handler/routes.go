package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"restoapi/internal/http/middleware"
	"restoapi/internal/model"
	"restoapi/internal/service"
)

// Services bundles the business services the routes delegate to.
type Services struct {
	Auth         service.AuthService
	Restaurants  service.RestaurantService
	Tables       service.TableService
	Availability service.AvailabilityService
	Bookings     service.BookingService
	TableBlocks  service.TableBlockService
	Menu         service.MenuService
	Cart         service.CartService
	Orders       service.OrderService
	Invoices     service.InvoiceService
	Feedback     service.FeedbackService
	Reports      service.ReportService
	Images       service.ImageService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin: bind, validate, call the service, map errors.
func RegisterRoutes(app *fiber.App, db *sql.DB, tokens middleware.TokenParser, svc Services) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	authn := middleware.Auth(tokens)
	optional := middleware.OptionalAuth(tokens)
	staff := middleware.RequireRoles(model.RoleStaff, model.RoleAdmin)
	admin := middleware.RequireRoles(model.RoleAdmin)

	a := app.Group("/auth")
	a.Post("/register", Register(svc.Auth))
	a.Post("/login", Login(svc.Auth))
	a.Get("/me", authn, Me(svc.Auth))
	a.Post("/forgot-password", ForgotPassword(svc.Auth))
	a.Post("/reset-password/:token", ResetPassword(svc.Auth))
	a.Put("/users/:id/role", authn, admin, UpdateUserRole(svc.Auth))

	r := app.Group("/restaurants")
	r.Get("/", ListRestaurants(svc.Restaurants))
	r.Get("/:id", GetRestaurant(svc.Restaurants))
	r.Post("/", authn, staff, CreateRestaurant(svc.Restaurants))
	r.Put("/:id", authn, staff, UpdateRestaurant(svc.Restaurants))
	r.Delete("/:id", authn, admin, DeleteRestaurant(svc.Restaurants))

	t := app.Group("/tables")
	t.Get("/", ListTables(svc.Tables))
	t.Post("/check", CheckTables(svc.Availability))
	t.Get("/:id", GetTable(svc.Tables))
	t.Post("/", authn, staff, CreateTable(svc.Tables))
	t.Put("/:id", authn, staff, UpdateTable(svc.Tables))
	t.Patch("/:id/status", authn, staff, SetTableStatus(svc.Tables))
	t.Delete("/:id", authn, admin, DeleteTable(svc.Tables))

	app.Get("/available-tables", SearchAvailability(svc.Availability))
	app.Post("/available-tables", SearchAvailability(svc.Availability))

	b := app.Group("/bookings")
	b.Post("/", optional, CreateBooking(svc.Bookings))
	b.Get("/", authn, staff, ListBookings(svc.Bookings))
	b.Get("/mine", authn, MyBookings(svc.Bookings))
	b.Get("/:id", authn, GetBooking(svc.Bookings))
	b.Get("/:id/history", authn, staff, BookingHistory(svc.Bookings))
	b.Put("/:id/assign-table", authn, staff, AssignBookingTable(svc.Bookings))
	b.Put("/:id/status", authn, staff, UpdateBookingStatus(svc.Bookings))
	b.Put("/:id/cancel", authn, CancelBooking(svc.Bookings))

	tb := app.Group("/table-blocks", authn, staff)
	tb.Post("/", CreateTableBlock(svc.TableBlocks))
	tb.Get("/", ListTableBlocks(svc.TableBlocks))
	tb.Delete("/:id", DeleteTableBlock(svc.TableBlocks))

	m := app.Group("/menu")
	m.Get("/full", FullMenu(svc.Menu))
	m.Get("/items", ListMenuItems(svc.Menu))
	m.Get("/items/:id", GetMenuItem(svc.Menu))
	m.Post("/items", authn, staff, CreateMenuItem(svc.Menu))
	m.Put("/items/:id", authn, staff, UpdateMenuItem(svc.Menu))
	m.Delete("/items/:id", authn, staff, DeleteMenuItem(svc.Menu))

	cart := app.Group("/cart", authn)
	cart.Get("/", GetCart(svc.Cart))
	cart.Post("/items", AddCartItem(svc.Cart))
	cart.Put("/items/:itemId", UpdateCartItem(svc.Cart))
	cart.Delete("/items/:itemId", RemoveCartItem(svc.Cart))
	cart.Delete("/clear", ClearCart(svc.Cart))

	o := app.Group("/orders", authn)
	o.Post("/from-cart", CreateOrderFromCart(svc.Orders))
	o.Get("/mine", MyOrders(svc.Orders))
	o.Get("/", staff, ListOrders(svc.Orders))
	o.Get("/:id", GetMyOrder(svc.Orders))
	o.Get("/:id/detail", staff, GetOrderDetail(svc.Orders))
	o.Put("/:id/status", staff, UpdateOrderStatus(svc.Orders))
	o.Post("/:id/feedback", CreateOrderFeedback(svc.Feedback))

	inv := app.Group("/invoices", authn)
	inv.Post("/", CreateInvoice(svc.Invoices))
	inv.Get("/", staff, ListInvoices(svc.Invoices))
	inv.Get("/:id", GetInvoice(svc.Invoices))
	inv.Get("/:id/export", ExportInvoiceHTML(svc.Invoices))
	inv.Get("/:id/export-pdf", ExportInvoicePDF(svc.Invoices))
	inv.Post("/:id/send", SendInvoice(svc.Invoices))

	f := app.Group("/feedback")
	f.Get("/", ListFeedback(svc.Feedback))
	f.Get("/stats/report", FeedbackStats(svc.Feedback))
	f.Get("/top-restaurants", TopRestaurants(svc.Feedback))
	f.Post("/", authn, CreateFeedback(svc.Feedback))
	f.Put("/:id", authn, UpdateFeedback(svc.Feedback))
	f.Delete("/:id", authn, DeleteFeedback(svc.Feedback))

	rep := app.Group("/reports", authn, staff)
	rep.Get("/revenue", RevenueReport(svc.Reports))
	rep.Get("/top-menu", TopMenuReport(svc.Reports))
	rep.Get("/feedback", FeedbackReport(svc.Reports))

	up := app.Group("/upload-image", authn, staff)
	up.Post("/", UploadImage(svc.Images))
	up.Delete("/:public_id", DeleteImage(svc.Images))
}
