package routes

import (
	"ngi/config"
	"ngi/controllers"
	_ "ngi/docs"
	middlewares "ngi/middleware"
	"ngi/services"
	"ngi/services/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies is everything the handlers need, built once in main
type Dependencies struct {
	Config       *config.Config
	Logger       logger.Logger
	Redis        *redis.Client
	Auth         *services.AuthService
	Availability *services.AvailabilityStore
	Cache        *services.AvailabilityCache
	Bookings     *services.BookingService
	Facade       *services.BookingFacade
	Payments     *services.PaymentService
	Uploader     services.Uploader
	Reviews      *services.ReviewService
	Gallery      *services.GalleryService
	Leads        *services.LeadService
	Export       *services.ExportService
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	siteController := controllers.NewSiteController(deps.Config)
	authController := controllers.NewAuthController(deps.Auth)
	availabilityController := controllers.NewAvailabilityController(deps.Availability, deps.Cache, deps.Redis)
	bookingController := controllers.NewBookingController(deps.Bookings, deps.Facade)
	paymentController := controllers.NewPaymentController(deps.Payments)
	uploadController := controllers.NewUploadController(deps.Uploader, deps.Logger)
	reviewController := controllers.NewReviewController(deps.Reviews)
	galleryController := controllers.NewGalleryController(deps.Gallery)
	leadController := controllers.NewLeadController(deps.Leads)
	analyticsController := controllers.NewAnalyticsController(deps.Export)

	router.Use(middlewares.SessionMiddleware())
	router.GET("/ping", siteController.Ping)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	v1.GET("/config", siteController.GetConfig)

	v1.POST("/auth/login", authController.Login)
	v1.POST("/auth/google", authController.LoginGoogle)

	v1.GET("/availability", availabilityController.GetAvailability)
	v1.GET("/availability/day/:date", availabilityController.GetDay)
	v1.GET("/availability/calendar", availabilityController.GetCalendar)
	v1.GET("/availability/version", availabilityController.GetVersion)
	v1.GET("/pricing", availabilityController.GetPricing)
	v1.GET("/pricing/tiers", availabilityController.GetTiers)

	v1.POST("/bookings", bookingController.CreateBooking)
	v1.POST("/bookings/submit", bookingController.SubmitBooking)

	v1.POST("/payments/order", paymentController.CreateOrder)
	v1.POST("/payments/verify", paymentController.VerifyPayment)
	v1.POST("/payments/upi", paymentController.RecordUPI)

	v1.POST("/uploads/identity", uploadController.UploadIdentity)
	v1.POST("/uploads/proof", uploadController.UploadProof)

	v1.GET("/reviews", reviewController.GetPublicReviews)
	v1.POST("/reviews", reviewController.CreateReview)
	v1.GET("/gallery", galleryController.GetGallery)
	v1.POST("/leads", leadController.RecordLead)
	v1.POST("/contact", leadController.SendContact)

	admin := v1.Group("/admin", middlewares.AdminAuth(deps.Auth, deps.Config.DevAuthBypass))

	admin.GET("/bookings", bookingController.GetBookings)
	admin.GET("/bookings/:id", bookingController.GetBooking)
	admin.PATCH("/bookings/:id", bookingController.UpdateBookingStatus)
	admin.DELETE("/bookings/:id", bookingController.DeleteBooking)
	admin.POST("/bookings/import", bookingController.ImportBookings)

	admin.GET("/availability/history", availabilityController.GetHistory)
	admin.POST("/availability/booked", availabilityController.AddBooked)
	admin.DELETE("/availability/booked", availabilityController.RemoveBooked)
	admin.DELETE("/availability/booked/all", availabilityController.ClearBooked)
	admin.POST("/availability/blocked", availabilityController.AddBlocked)
	admin.DELETE("/availability/blocked", availabilityController.RemoveBlocked)

	admin.GET("/reviews", reviewController.GetAllReviews)
	admin.PATCH("/reviews/:id", reviewController.UpdateReviewStatus)
	admin.DELETE("/reviews/:id", reviewController.DeleteReview)

	admin.GET("/gallery", galleryController.GetAllGallery)
	admin.POST("/gallery", galleryController.CreateGalleryItem)
	admin.PATCH("/gallery/:id", galleryController.ToggleGalleryItem)
	admin.DELETE("/gallery/:id", galleryController.DeleteGalleryItem)

	admin.GET("/leads", leadController.GetLeads)
	admin.GET("/contacts", leadController.GetContacts)
	admin.GET("/analytics", analyticsController.GetSummary)
	admin.GET("/export/:collection", analyticsController.ExportCSV)
}
