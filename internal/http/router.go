package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const uploadMemory = 8 << 20

type RouterConfig struct {
	Restaurants    RestaurantService
	Users          UserService
	Catalog        ProductCatalog
	Uploader       ImageUploader
	Log            logrus.FieldLogger
	RequestTimeout time.Duration
	MaxBodySize    int64
	CORSOrigins    []string
}

// NewRouter builds the storefront backend handler tree.
func NewRouter(cfg RouterConfig) http.Handler {
	auth := NewAuthHandler(cfg.Users, cfg.RequestTimeout, cfg.Log)
	restaurants := NewRestaurantHandler(cfg.Restaurants, cfg.RequestTimeout, cfg.Log)
	grocery := NewGroceryHandler(cfg.Catalog, cfg.RequestTimeout, cfg.Log)
	uploads := NewUploadHandler(cfg.Uploader, cfg.RequestTimeout, uploadMemory, cfg.Log)
	rs := responder{log: cfg.Log}

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RequestIDHeader)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(cfg.Log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout + 5*time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		rs.json(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Group(func(r chi.Router) {
		r.Use(MaxBodySize(cfg.MaxBodySize))
		r.Post("/register", auth.Register)
		r.Post("/login", auth.Login)
		r.Post("/add-restaurant", restaurants.Create)
	})

	r.Get("/restaurants", restaurants.List)
	r.Get("/restaurants/{id}", restaurants.Get)

	r.Route("/grocery/products", func(r chi.Router) {
		r.Get("/", grocery.List)
		r.Get("/{id}", grocery.Get)
	})

	r.With(MaxBodySize(uploadMemory)).Post("/upload-image", uploads.Upload)

	return otelhttp.NewHandler(r, "storefront-http")
}
