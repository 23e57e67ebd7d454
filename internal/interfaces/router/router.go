package router

import (
	"net/http"

	"estate-backend/internal/application/allocation"
	authsvc "estate-backend/internal/application/auth"
	"estate-backend/internal/application/catalog"
	"estate-backend/internal/application/ledger"
	portfoliosvc "estate-backend/internal/application/portfolio"
	"estate-backend/internal/application/snapshots"
	"estate-backend/internal/config"
	"estate-backend/internal/infrastructure/database"
	"estate-backend/internal/infrastructure/memstore"
	"estate-backend/internal/infrastructure/seed"
	authhandler "estate-backend/internal/interfaces/handlers/auth"
	grouphandler "estate-backend/internal/interfaces/handlers/groups"
	healthhandler "estate-backend/internal/interfaces/handlers/health"
	invhandler "estate-backend/internal/interfaces/handlers/investments"
	porthandler "estate-backend/internal/interfaces/handlers/portfolio"
	prophandler "estate-backend/internal/interfaces/handlers/properties"
	"estate-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
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

// Deps are the long-lived resources behind the app, for startup checks and shutdown.
type Deps struct {
	DB        *gorm.DB
	Redis     *redis.Client
	Store     *memstore.Store
	Snapshots *snapshots.Service
}

// Close releases the database and Redis connections.
func (d *Deps) Close() error {
	if d.Redis != nil {
		_ = d.Redis.Close()
	}
	if d.DB != nil {
		sqlDB, err := d.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

func CreateApp(cfg *config.Config) (*fiber.App, *Deps, error) {
	store := memstore.New()
	if err := seed.LoadIn(store, cfg.Currency); err != nil {
		return nil, nil, err
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, nil, err
	}

	rdb, err := middleware.NewRedis(cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.IsProduction(),
	}

	led := &ledger.Service{DB: db}
	engine := &allocation.Engine{
		Store: store,
		Markups: allocation.Markups{
			InitialPercent:    cfg.InitialMarkupPercent,
			AccumulatePercent: cfg.AccumulateMarkupPercent,
		},
		DefaultOwnerID: cfg.DefaultOwnerID,
		Ledger:         led,
	}
	portfolio := &portfoliosvc.Service{Store: store, Currency: cfg.Currency}
	snaps := &snapshots.Service{DB: db, Portfolio: portfolio}
	directory := authsvc.NewDirectory(cfg.DefaultOwnerID)

	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.Recover())
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())
	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))
	app.Use(middleware.HealthMarker(rdb))
	app.Use(middleware.Session(rdb))

	api := app.Group("/api/v1")

	hh := &healthhandler.Handlers{
		Rdb:            rdb,
		DB:             &gormDBPinger{db: db},
		Store:          store,
		HealthAdminKey: cfg.HealthAdminKey,
	}
	api.Get("/health/json", hh.JSON)
	api.Get("/health/errors", hh.Errors)
	api.Post("/health/reset", hh.Reset)

	ah := &authhandler.Handlers{
		Directory:  directory,
		UserFinder: directory,
		Rdb:        rdb,
		Config:     sessionCfg,
	}
	authGroup := api.Group("/auth")
	authGroup.Post("/signup", ah.Signup)
	authGroup.Post("/login", ah.Login)
	authGroup.Get("/me", ah.Me)
	authGroup.Delete("/logout", ah.Logout)
	authGroup.Delete("/sessions", ah.LogoutAll)

	ph := &prophandler.Handlers{Catalog: &catalog.Service{Store: store}}
	api.Get("/properties", ph.List)
	api.Get("/properties/locations", ph.Locations)
	api.Get("/properties/:id", ph.Get)
	api.Post("/properties/:id/yield-calculator", ph.YieldCalculator)
	api.Get("/cities/:city/risk", ph.CityRisk)

	ih := &invhandler.Handlers{Engine: engine}
	api.Post("/investments", middleware.RequireAuth(), ih.Invest)

	poh := &porthandler.Handlers{Portfolio: portfolio, Ledger: led, Snapshot: snaps}
	pg := api.Group("/portfolio", middleware.RequireAuth())
	pg.Get("/", poh.Get)
	pg.Get("/transactions", poh.Transactions)
	pg.Get("/snapshots", poh.Snapshots)

	gh := &grouphandler.Handlers{Portfolio: portfolio, Engine: engine, Ledger: led}
	gg := api.Group("/groups")
	gg.Get("/", gh.List)
	gg.Get("/:idOrCode", gh.Get)
	gg.Get("/:idOrCode/transactions", gh.Transactions)
	gg.Post("/:idOrCode/investments", middleware.RequireAuth(), gh.Invest)

	return app, &Deps{DB: db, Redis: rdb, Store: store, Snapshots: snaps}, nil
}

func Handler(app *fiber.App) http.Handler {
	return adaptor.FiberApp(app)
}
