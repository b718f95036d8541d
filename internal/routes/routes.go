package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/visualhealth/internal/config"
	"github.com/example/visualhealth/internal/handlers"
	"github.com/example/visualhealth/internal/services"
	"github.com/example/visualhealth/internal/store"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, s store.Store, cfg *config.Config) {
	checkoutService := services.NewCheckoutService(s)
	notificationService := services.NewNotificationService()

	adminHandler := handlers.NewAdminHandler(s)
	authHandler := handlers.NewAuthHandler(s, cfg)
	userHandler := handlers.NewUserHandler(s)
	productHandler := handlers.NewProductHandler(s)
	deliveryHandler := handlers.NewDeliveryHandler(s)
	orderHandler := handlers.NewOrderHandler(s, checkoutService)
	prescriptionHandler := handlers.NewPrescriptionHandler(s)
	doctorHandler := handlers.NewDoctorHandler(s)
	notificationHandler := handlers.NewNotificationHandler(s, notificationService)

	// Health
	app.Get("/", adminHandler.Root)
	app.Get("/test", adminHandler.TestDatabase)
	app.Post("/admin/seed", adminHandler.Seed)

	// Auth
	auth := app.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/forgot", authHandler.ForgotPassword)

	// Users & addresses
	users := app.Group("/users")
	users.Get("/:id", userHandler.GetUser)
	users.Put("/:id", userHandler.UpdateUser)
	users.Get("/:id/addresses", userHandler.ListAddresses)
	users.Post("/:id/addresses", userHandler.AddAddress)
	users.Delete("/:id/addresses", userHandler.RemoveAddress)

	// Catalogue
	products := app.Group("/products")
	products.Get("/", productHandler.ListProducts)
	products.Post("/", productHandler.CreateProduct)
	products.Get("/:id", productHandler.GetProduct)
	products.Put("/:id", productHandler.UpdateProduct)
	products.Delete("/:id", productHandler.DeleteProduct)

	// Delivery fees
	delivery := app.Group("/delivery")
	delivery.Get("/fees", deliveryHandler.ListFees)
	delivery.Get("/fee", deliveryHandler.GetFee)

	// Checkout & orders
	orders := app.Group("/orders")
	orders.Post("/checkout", orderHandler.Checkout)
	orders.Get("/", orderHandler.ListOrders)
	orders.Get("/:id", orderHandler.GetOrder)
	orders.Patch("/:id/status", orderHandler.UpdateStatus)

	// Prescriptions
	app.Post("/prescriptions", prescriptionHandler.Create)
	app.Get("/prescriptions", prescriptionHandler.List)

	// Doctors & appointments
	doctors := app.Group("/doctors")
	doctors.Get("/", doctorHandler.ListDoctors)
	doctors.Post("/", doctorHandler.CreateDoctor)
	doctors.Get("/:id", doctorHandler.GetDoctor)

	app.Post("/appointments", doctorHandler.CreateAppointment)
	app.Get("/appointments", doctorHandler.ListAppointments)

	// Notifications
	app.Post("/notifications/send", notificationHandler.Send)
}
