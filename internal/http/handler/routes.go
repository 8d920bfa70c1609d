package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"storeadmin/internal/http/middleware"
	"storeadmin/internal/model"
	"storeadmin/internal/service"
)

// Deps carries everything the routes need. Nil optional fields switch the
// matching endpoint or middleware off.
type Deps struct {
	DB       *sql.DB
	Tokens   middleware.TokenParser
	Limiter  *middleware.RateLimiter
	Gatherer prometheus.Gatherer

	Auth          service.AuthService
	Dashboard     service.DashboardService
	Products      service.ProductService
	Orders        service.OrderService
	Users         service.UserService
	Reviews       service.ReviewService
	Notifications service.NotificationService
	Organizations service.OrganizationService
	Documents     service.DocumentService
	Notes         service.NoteService
	Memberships   service.MembershipService
	Promotions    service.PromotionService
}

// RegisterRoutes attaches the probes, /metrics and the /api/v1 routes.
func RegisterRoutes(app *fiber.App, d Deps) {
	if d.DB != nil {
		app.Get("/health", HealthCheck(d.DB))
	}
	app.Get("/healthz", LivenessProbe())
	if d.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api/v1")

	limited := middleware.Noop()
	if d.Limiter != nil {
		limited = d.Limiter.Handler()
	}
	api.Post("/auth/register", limited, Register(d.Auth))
	api.Post("/auth/login", limited, Login(d.Auth))

	authed := middleware.RequireAuth(d.Tokens)
	admin := middleware.RequireRole(d.Users, model.UserRoleAdmin)

	me := api.Group("/me", authed)
	me.Get("/", Me(d.Users))
	me.Patch("/", UpdateMe(d.Users))
	me.Get("/orders", MyOrders(d.Orders))

	dash := api.Group("/dashboard", authed, admin)
	dash.Get("/statistics", DashboardStatistics(d.Dashboard))
	dash.Get("/revenue", MonthlyRevenue(d.Dashboard))
	dash.Get("/recent-orders", RecentOrders(d.Dashboard))
	dash.Get("/top-products", TopProducts(d.Dashboard))
	dash.Get("/order-status", OrderStatusBreakdown(d.Dashboard))

	products := api.Group("/products", authed)
	products.Get("/", ListProducts(d.Products))
	products.Post("/", admin, CreateProduct(d.Products))
	products.Get("/:id", GetProduct(d.Products))
	products.Put("/:id", admin, UpdateProduct(d.Products))
	products.Delete("/:id", admin, DeleteProduct(d.Products))
	products.Patch("/:id/archive", admin, ArchiveProduct(d.Products))
	products.Post("/:id/image", admin, UploadProductImage(d.Products))
	products.Get("/:id/image-url", ProductImageURL(d.Products))
	products.Get("/:id/reviews", ListProductReviews(d.Reviews))
	products.Post("/:id/reviews", CreateReview(d.Reviews))

	api.Delete("/reviews/:id", authed, DeleteReview(d.Reviews))

	orders := api.Group("/orders", authed)
	orders.Post("/", PlaceOrder(d.Orders))
	orders.Get("/", admin, ListOrders(d.Orders))
	orders.Get("/:id", GetOrder(d.Orders))
	orders.Patch("/:id/status", admin, UpdateOrderStatus(d.Orders))
	orders.Post("/:id/cancel", CancelOrder(d.Orders))

	users := api.Group("/users", authed, admin)
	users.Get("/", ListUsers(d.Users))
	users.Get("/:id", GetUser(d.Users))
	users.Patch("/:id/role", UpdateUserRole(d.Users))
	users.Delete("/:id", DeleteUser(d.Users))

	notifications := api.Group("/notifications", authed)
	notifications.Get("/", ListNotifications(d.Notifications))
	notifications.Get("/unread-count", UnreadNotificationCount(d.Notifications))
	notifications.Post("/read-all", MarkAllNotificationsRead(d.Notifications))
	notifications.Patch("/:id/read", MarkNotificationRead(d.Notifications))
	notifications.Delete("/:id", DeleteNotification(d.Notifications))

	orgs := api.Group("/organizations", authed)
	orgs.Post("/", CreateOrganization(d.Organizations))
	orgs.Get("/", ListOrganizations(d.Organizations))
	orgs.Get("/:id", GetOrganization(d.Organizations))
	orgs.Put("/:id", UpdateOrganization(d.Organizations))
	orgs.Delete("/:id", DeleteOrganization(d.Organizations))
	orgs.Get("/:id/members", ListMembers(d.Organizations))
	orgs.Patch("/:id/members/:userId", UpdateMemberRole(d.Organizations))
	orgs.Delete("/:id/members/:userId", RemoveMember(d.Organizations))
	orgs.Post("/:id/leave", LeaveOrganization(d.Organizations))
	orgs.Post("/:id/invitations", InviteMember(d.Organizations))
	orgs.Get("/:id/invitations", ListInvitations(d.Organizations))
	orgs.Delete("/:id/invitations/:invId", RevokeInvitation(d.Organizations))

	orgs.Post("/:id/documents", UploadDocument(d.Documents))
	orgs.Get("/:id/documents", ListDocuments(d.Documents))
	orgs.Get("/:id/documents/:docId", GetDocument(d.Documents))
	orgs.Delete("/:id/documents/:docId", DeleteDocument(d.Documents))
	orgs.Get("/:id/documents/:docId/url", DocumentURL(d.Documents))
	orgs.Get("/:id/documents/:docId/content", DocumentContent(d.Documents))

	orgs.Post("/:id/notes", CreateNote(d.Notes))
	orgs.Get("/:id/notes", ListNotes(d.Notes))
	orgs.Get("/:id/notes/:noteId", GetNote(d.Notes))
	orgs.Put("/:id/notes/:noteId", UpdateNote(d.Notes))
	orgs.Delete("/:id/notes/:noteId", DeleteNote(d.Notes))

	api.Post("/invitations/accept", authed, AcceptInvitation(d.Organizations))

	memberships := api.Group("/memberships", authed)
	memberships.Get("/", admin, ListMemberships(d.Memberships))
	memberships.Get("/me", MyMembership(d.Memberships))
	memberships.Post("/me", Subscribe(d.Memberships))
	memberships.Post("/me/cancel", CancelMembership(d.Memberships))

	promotions := api.Group("/promotions", authed)
	promotions.Post("/validate", ValidatePromotion(d.Promotions))
	promotions.Get("/", admin, ListPromotions(d.Promotions))
	promotions.Post("/", admin, CreatePromotion(d.Promotions))
	promotions.Get("/:id", admin, GetPromotion(d.Promotions))
	promotions.Put("/:id", admin, UpdatePromotion(d.Promotions))
	promotions.Delete("/:id", admin, DeletePromotion(d.Promotions))
	promotions.Post("/:id/deactivate", admin, DeactivatePromotion(d.Promotions))
}
