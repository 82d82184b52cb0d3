// Package api provides the HTTP API of the premium store backend: order
// creation, payment confirmation against the Toss gateway, BrandPay token
// bridging and order metadata resolution.
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"

	"github.com/guildbot/premium-backend/bot"
	"github.com/guildbot/premium-backend/db"
	"github.com/guildbot/premium-backend/log"
	"github.com/guildbot/premium-backend/premium"
	"github.com/guildbot/premium-backend/toss"
)

// jwtExpiration is the validity period of the session tokens issued by the
// bot for its web store.
const jwtExpiration = 360 * time.Hour // 15 days

// Config holds the dependencies and settings of the API server.
type Config struct {
	Host    string
	Port    int
	Secret  string
	DB      *db.MongoStorage
	Toss    *toss.Client
	Premium *premium.Service
	// Cache is the read-only view over the bot's guild/user metadata.
	Cache bot.Cache
}

// API type represents the API HTTP server with JWT authentication capabilities.
type API struct {
	db      *db.MongoStorage
	auth    *jwtauth.JWTAuth
	host    string
	port    int
	router  *chi.Mux
	toss    *toss.Client
	premium *premium.Service
	cache   bot.Cache
}

// New creates a new API HTTP server. It does not start the server. Use Start() for that.
func New(conf *Config) *API {
	if conf == nil {
		return nil
	}
	return &API{
		db:      conf.DB,
		auth:    jwtauth.New("HS256", []byte(conf.Secret), nil),
		host:    conf.Host,
		port:    conf.Port,
		toss:    conf.Toss,
		premium: conf.Premium,
		cache:   conf.Cache,
	}
}

// Start starts the API HTTP server (non blocking).
func (a *API) Start() {
	go func() {
		if err := http.ListenAndServe(fmt.Sprintf("%s:%d", a.host, a.port), a.initRouter()); err != nil {
			log.Fatalf("failed to start the API server: %v", err)
		}
	}()
}

// Router returns the HTTP router, initializing it first if needed. Used by
// the API tests to serve the handlers without a listening socket.
func (a *API) Router() http.Handler {
	if a.router == nil {
		return a.initRouter()
	}
	return a.router
}

// initRouter creates the router with all the routes and middleware.
func (a *API) initRouter() http.Handler {
	// Create the router with a basic middleware stack
	r := chi.NewRouter()
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}).Handler)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Throttle(100))
	r.Use(middleware.Timeout(45 * time.Second))

	// protected routes
	r.Group(func(r chi.Router) {
		// seek, verify and validate JWT tokens
		r.Use(jwtauth.Verifier(a.auth))
		// handle valid JWT tokens
		r.Use(a.authenticator)
		// create a new order
		log.Infow("new route", "method", "POST", "path", ordersEndpoint)
		r.Post(ordersEndpoint, a.createOrderHandler)
		// checkout view of an order
		log.Infow("new route", "method", "GET", "path", orderEndpoint)
		r.Get(orderEndpoint, a.orderInfoHandler)
		// success view of an order
		log.Infow("new route", "method", "GET", "path", orderSuccessEndpoint)
		r.Get(orderSuccessEndpoint, a.orderSuccessHandler)
		// confirm a direct payment
		log.Infow("new route", "method", "POST", "path", paymentsConfirmEndpoint)
		r.Post(paymentsConfirmEndpoint, a.confirmPaymentHandler)
		// confirm a gift certificate payment
		log.Infow("new route", "method", "POST", "path", paymentsGiftEndpoint)
		r.Post(paymentsGiftEndpoint, a.giftPaymentHandler)
		// exchange a BrandPay authorization code for gateway tokens
		log.Infow("new route", "method", "GET", "path", paymentsAuthEndpoint)
		r.Get(paymentsAuthEndpoint, a.paymentsAuthHandler)
		// list the stored payment methods
		log.Infow("new route", "method", "GET", "path", paymentsMethodsEndpoint)
		r.Get(paymentsMethodsEndpoint, a.paymentsMethodsHandler)
	})

	// Public routes
	r.Group(func(r chi.Router) {
		r.Get(pingEndpoint, func(w http.ResponseWriter, _ *http.Request) {
			if _, err := w.Write([]byte(".")); err != nil {
				log.Warnw("failed to write ping response", "error", err)
			}
		})
		// public catalog listing
		log.Infow("new route", "method", "GET", "path", itemsEndpoint)
		r.Get(itemsEndpoint, a.itemsHandler)
	})
	a.router = r
	return r
}
