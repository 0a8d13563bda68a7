// Package mockapi is an in-memory implementation of the admin REST API. It
// speaks the same envelope as the real backend and serves as a local target
// for the client and its tests.
package mockapi

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"shop_client/internal/domain"
	"shop_client/internal/validation"
)

const DefaultTokenTTL = 12 * time.Hour

type Options struct {
	JWTSecret     string
	TokenTTL      time.Duration
	AdminUsername string
	AdminPassword string
	Locale        string
	// SeedCatalog adds a few demo categories and products.
	SeedCatalog bool
}

// NewRouter builds the gin engine with all routes mounted under /api.
func NewRouter(opts Options, logger *logrus.Logger) (*gin.Engine, *Repository, error) {
	if opts.JWTSecret == "" {
		return nil, nil, fmt.Errorf("JWT secret is required")
	}
	ttl := opts.TokenTTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	repo := NewRepository()
	if err := seedAdmin(repo, opts.AdminUsername, opts.AdminPassword); err != nil {
		return nil, nil, err
	}
	if opts.SeedCatalog {
		seedCatalog(repo)
	}

	tokens := NewTokenIssuer(opts.JWTSecret, ttl)
	v := validation.New(opts.Locale)

	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(logger))

	api := router.Group("/api")
	protected := api.Group("")
	protected.Use(AuthMiddleware(tokens, logger))

	NewAuthHandler(repo, tokens, v, logger).RegisterRoutes(api, protected)
	NewProductHandler(repo, v, logger).RegisterRoutes(protected)
	NewCategoryHandler(repo, v, logger).RegisterRoutes(protected)
	NewOrderHandler(repo, v, logger).RegisterRoutes(protected)
	NewUploadHandler(repo, logger).RegisterRoutes(api, protected)

	logger.Info("MockAPI: Routes registered")
	return router, repo, nil
}

func seedAdmin(repo *Repository, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("admin username and password are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	repo.AddUser(adminUser{
		Username:     username,
		PasswordHash: string(hash),
		Profile: domain.UserProfile{
			ID:    uuid.NewString(),
			Name:  "Administrator",
			Email: username + "@shop.local",
			Role:  domain.RoleAdmin,
		},
	})
	return nil
}

func seedCatalog(repo *Repository) {
	drinks, _ := repo.SaveCategory(domain.Category{Name: "Drinks", Slug: "drinks", Active: true})
	snacks, _ := repo.SaveCategory(domain.Category{Name: "Snacks", Slug: "snacks", Active: true})

	for _, p := range []domain.Product{
		{Name: "Green Tea", Slug: "green-tea", Price: 25000, Stock: 120, SKU: "DRK-001", CategoryID: drinks.ID, Status: domain.ProductStatusActive},
		{Name: "Iced Coffee", Slug: "iced-coffee", Price: 35000, Stock: 80, SKU: "DRK-002", CategoryID: drinks.ID, Status: domain.ProductStatusActive},
		{Name: "Rice Crackers", Slug: "rice-crackers", Price: 18000, Stock: 45, SKU: "SNK-001", CategoryID: snacks.ID, Status: domain.ProductStatusActive},
	} {
		_, _ = repo.SaveProduct(p)
	}
}
