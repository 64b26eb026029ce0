package app

import (
	"inmobiliaria-backend/internal/auth"
	"inmobiliaria-backend/internal/catalog"
	"inmobiliaria-backend/internal/config"
	"inmobiliaria-backend/internal/constants"
	"inmobiliaria-backend/internal/database"
	"inmobiliaria-backend/internal/emails"
	"inmobiliaria-backend/internal/favorites"
	"inmobiliaria-backend/internal/health"
	"inmobiliaria-backend/internal/messages"
	"inmobiliaria-backend/internal/middleware"
	"inmobiliaria-backend/internal/offers"
	"inmobiliaria-backend/internal/pkg/token"
	"inmobiliaria-backend/internal/properties"
	"inmobiliaria-backend/internal/users"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CreateApp builds the Fiber app with all global middleware and routes.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.AllowedOriginSuffix,
	}))
	app.Use(middleware.RequestLog())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		rdb = redis.NewClient(opts)
	}

	hh := &health.Handlers{Rdb: rdb}
	if db != nil {
		hh.DB = &gormDBPinger{db: db}
	}
	app.Get("/health/json", hh.JSON)

	if db == nil {
		return app, db, rdb, nil
	}

	issuer := &token.Issuer{
		Secret:   cfg.JWTSecret,
		IssuerID: cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		Expiry:   cfg.JWTExpiry,
	}
	requireAuth := middleware.RequireAuth(issuer, rdb)

	var emailSender emails.Sender
	if cfg.BrevoAPIKey != "" {
		emailSender = &emails.BrevoClient{APIKey: cfg.BrevoAPIKey, MailFrom: cfg.MailFrom}
	}

	// Auth (public)
	ah := &auth.Handlers{Service: &auth.Service{
		DB:          db,
		Issuer:      issuer,
		Emails:      emailSender,
		FrontendURL: cfg.FrontendBaseURL,
	}}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/register", ah.Register)
	authGroup.Get("/confirm-email", ah.ConfirmEmail)
	authGroup.Post("/login", ah.Login)
	authGroup.Post("/forgot-password", ah.ForgotPassword)
	authGroup.Post("/reset-password", ah.ResetPassword)

	// Users (admin management + profile views)
	uh := &users.Handlers{Service: &users.Service{DB: db, Rdb: rdb}}
	ug := app.Group("/api/v1/users", requireAuth)
	ug.Post("/create-user", middleware.AuthorizePermission(constants.ManageUsers), uh.CreateUser)
	ug.Patch("/change-status", middleware.AuthorizePermission(constants.ManageUsers), uh.ChangeStatus)
	ug.Get("/agents", uh.ListAgents)
	ug.Get("/agents/:id", uh.GetAgent)
	ug.Get("/view-user/:id", middleware.AuthorizePermission(constants.ManageUsers), uh.ViewUser)

	// Properties (public reads, authenticated writes)
	ph := &properties.Handlers{Service: &properties.Service{DB: db}}
	pg := app.Group("/api/v1/properties")
	pg.Get("/available", ph.ListAvailable)
	pg.Get("/code/:code", ph.GetByCode)
	pg.Get("/agent/:id", requireAuth, ph.ListByAgent)
	pg.Post("/", requireAuth, middleware.AuthorizePermission(constants.CreateProperty), ph.CreateProperty)
	pg.Put("/:id", requireAuth, middleware.AuthorizePermission(constants.EditProperty), ph.UpdateProperty)
	pg.Delete("/:id", requireAuth, middleware.AuthorizePermission(constants.DeleteProperty), ph.DeleteProperty)
	pg.Get("/:id", ph.GetByID)

	// Offers
	oh := &offers.Handlers{Service: &offers.Service{DB: db}}
	og := app.Group("/api/v1/offers", requireAuth)
	og.Post("/", middleware.AuthorizePermission(constants.CreateOffer), oh.CreateOffer)
	og.Patch("/:id/accept", middleware.AuthorizePermission(constants.DecideOffer), oh.AcceptOffer)
	og.Patch("/:id/reject", middleware.AuthorizePermission(constants.DecideOffer), oh.RejectOffer)
	og.Get("/property/:property_id", middleware.AuthorizePermission(constants.ViewOffers), oh.ListByProperty)
	og.Get("/property/:property_id/client/:client_id", middleware.AuthorizePermission(constants.ViewOffers), oh.ListByClientAndProperty)
	og.Get("/:id/events", middleware.AuthorizePermission(constants.ViewOffers), oh.ListEvents)

	// Messages
	mh := &messages.Handlers{Service: &messages.Service{DB: db}}
	mg := app.Group("/api/v1/messages", requireAuth)
	mg.Post("/", middleware.AuthorizePermission(constants.SendMessage), mh.Send)
	mg.Get("/property/:property_id/clients", mh.ListPropertyClients)
	mg.Get("/property/:property_id/client/:client_id", mh.ListThread)

	// Favorites (clients only)
	fh := &favorites.Handlers{Service: &favorites.Service{DB: db}}
	fg := app.Group("/api/v1/favorites", requireAuth, middleware.AuthorizePermission(constants.ManageFavorites))
	fg.Post("/", fh.Add)
	fg.Get("/", fh.List)
	fg.Delete("/:property_id", fh.Remove)

	// Catalogs: reads for any authenticated user, writes for admins
	ch := &catalog.Handlers{Service: &catalog.Service{DB: db}}
	manageCatalog := middleware.AuthorizePermission(constants.ManageCatalog)

	ptg := app.Group("/api/v1/property-types", requireAuth)
	ptg.Get("/", ch.ListPropertyTypes)
	ptg.Get("/:id", ch.GetPropertyType)
	ptg.Post("/", manageCatalog, ch.CreatePropertyType)
	ptg.Put("/:id", manageCatalog, ch.UpdatePropertyType)
	ptg.Delete("/:id", manageCatalog, ch.DeletePropertyType)

	stg := app.Group("/api/v1/sales-types", requireAuth)
	stg.Get("/", ch.ListSalesTypes)
	stg.Get("/:id", ch.GetSalesType)
	stg.Post("/", manageCatalog, ch.CreateSalesType)
	stg.Put("/:id", manageCatalog, ch.UpdateSalesType)
	stg.Delete("/:id", manageCatalog, ch.DeleteSalesType)

	fgc := app.Group("/api/v1/features", requireAuth)
	fgc.Get("/", ch.ListFeatures)
	fgc.Get("/:id", ch.GetFeature)
	fgc.Post("/", manageCatalog, ch.CreateFeature)
	fgc.Put("/:id", manageCatalog, ch.UpdateFeature)
	fgc.Delete("/:id", manageCatalog, ch.DeleteFeature)

	return app, db, rdb, nil
}
