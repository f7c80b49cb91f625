package main

import (
	"context"
	"errors"
	"expvar"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"duka/internal/auth"
	"duka/internal/ratelimiter"
	"duka/internal/session"
	"duka/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type application struct {
	config      config
	store       store.Storage
	sessions    session.Store
	verifier    auth.CredentialVerifier
	logger      *zap.SugaredLogger
	rateLimiter ratelimiter.Limiter
}

type config struct {
	addr        string
	env         string
	frontendURL string
	db          dbConfig
	redisURL    string
	sessionTTL  time.Duration
	superAdmin  superAdminConfig
	auth        authConfig
	rateLimiter ratelimiter.Config
}

type dbConfig struct {
	addr        string
	maxConns    int32
	maxIdleTime string
}

type superAdminConfig struct {
	phone    string
	password string
}

type authConfig struct {
	basic basicConfig
}

type basicConfig struct {
	user string
	pass string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.RateLimiterMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{app.config.frontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/api", func(r chi.Router) {
		r.With(app.BasicAuthMiddleware()).Get("/health", app.healthCheckHandler)
		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", app.loginHandler)

			r.Group(func(r chi.Router) {
				r.Use(app.AuthSessionMiddleware)
				r.Post("/logout", app.logoutHandler)
				r.Get("/user", app.currentUserHandler)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(app.AuthSessionMiddleware)
			r.Get("/", app.listUsersHandler)
			r.Post("/", app.createUserHandler)
			r.Patch("/{userID}/status", app.updateUserStatusHandler)
			r.Delete("/{userID}", app.deleteUserHandler)
		})

		r.Route("/business", func(r chi.Router) {
			r.Use(app.AuthSessionMiddleware)
			r.Get("/", app.getBusinessHandler)
		})

		r.Route("/products", func(r chi.Router) {
			r.Use(app.AuthSessionMiddleware)
			r.Get("/", app.listProductsHandler)
			r.Post("/", app.createProductHandler)
			r.Get("/low-stock", app.listLowStockProductsHandler)
			r.Put("/{productID}", app.updateProductHandler)
			r.Delete("/{productID}", app.deleteProductHandler)
		})

		r.Route("/customers", func(r chi.Router) {
			r.Use(app.AuthSessionMiddleware)
			r.Get("/", app.listCustomersHandler)
			r.Post("/", app.createCustomerHandler)
			r.Put("/{customerID}", app.updateCustomerHandler)
			r.Delete("/{customerID}", app.deleteCustomerHandler)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Use(app.AuthSessionMiddleware)
			r.Get("/", app.listCategoriesHandler)
			r.Post("/", app.createCategoryHandler)
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Use(app.AuthSessionMiddleware)
			r.Get("/", app.listExpensesHandler)
			r.Post("/", app.createExpenseHandler)
			r.Put("/{expenseID}", app.updateExpenseHandler)
			r.Delete("/{expenseID}", app.deleteExpenseHandler)
		})

		r.Route("/sales", func(r chi.Router) {
			r.Use(app.AuthSessionMiddleware)
			r.Get("/", app.listSalesHandler)
			r.Post("/", app.createSaleHandler)
			r.Get("/{saleID}", app.getSaleHandler)
		})

		r.With(app.AuthSessionMiddleware).Get("/dashboard/stats", app.dashboardStatsHandler)
		r.With(app.AuthSessionMiddleware).Get("/analytics/weekly-sales", app.weeklySalesHandler)

		r.Route("/app-staff", func(r chi.Router) {
			r.Use(app.AuthSessionMiddleware)
			r.Use(app.RequireRoles(store.RoleAppStaff, store.RoleSuperAdmin))
			r.Get("/stats", app.appStaffStatsHandler)
			r.Get("/merchants", app.appStaffMerchantsHandler)
			r.Get("/activities", app.appStaffActivitiesHandler)
		})
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
