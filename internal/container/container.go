package container

import (
	"log/slog"

	"github.com/festivo/api/internal/config"
	"github.com/festivo/api/internal/models"
	"github.com/festivo/api/internal/services"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Logger        *slog.Logger
	MongoDBClient *mongo.Client
	JWTSecret     string

	BookingService     *services.BookingService
	ReviewService      *services.ReviewService
	VendorService      *services.VendorService
	VendorStatsService *services.VendorStatsService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	logger *slog.Logger,
	cfg *config.Config,
	mongoDBClient *mongo.Client,
) *Container {
	repo := models.MongodbNewRepo(mongoDBClient, cfg.DatabaseName)

	statsService := services.NewVendorStatsService(repo, repo, repo)
	bookingService := services.NewBookingService(repo, statsService)
	reviewService := services.NewReviewService(repo, repo, statsService)
	vendorService := services.NewVendorService(repo)

	return &Container{
		Logger:             logger,
		MongoDBClient:      mongoDBClient,
		JWTSecret:          cfg.JWTSecret,
		BookingService:     bookingService,
		ReviewService:      reviewService,
		VendorService:      vendorService,
		VendorStatsService: statsService,
	}
}
