// Package server assembles the librarium HTTP API and runs it.
package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/JonnyWalker81/librarium/backend/internal/config"
	"github.com/JonnyWalker81/librarium/backend/internal/constraint"
	"github.com/JonnyWalker81/librarium/backend/internal/handlers"
	"github.com/JonnyWalker81/librarium/backend/internal/logger"
	"github.com/JonnyWalker81/librarium/backend/internal/middleware"
	"github.com/JonnyWalker81/librarium/backend/internal/repository"
	"github.com/JonnyWalker81/librarium/backend/internal/schema"
	"github.com/JonnyWalker81/librarium/backend/internal/service"
	"github.com/JonnyWalker81/librarium/backend/internal/translator"
)

// Deps holds what the router needs beyond configuration.
type Deps struct {
	Logger     logger.Logger
	Contract   *schema.Contract
	Authors    service.AuthorService
	Books      service.BookService
	Translator *translator.Translator
}

// NewDeps wires in-memory repositories and services. contract may be nil
// when request validation is disabled.
func NewDeps(log logger.Logger, contract *schema.Contract) (Deps, repository.AuthorRepository, repository.BookRepository) {
	evaluator := constraint.NewEvaluator()
	authorRepo := repository.NewAuthorRepository()
	bookRepo := repository.NewBookRepository()

	return Deps{
		Logger:     log,
		Contract:   contract,
		Authors:    service.NewAuthorService(authorRepo, evaluator),
		Books:      service.NewBookService(bookRepo, authorRepo, evaluator),
		Translator: translator.New(nil),
	}, authorRepo, bookRepo
}

// NewRouter builds the gin engine. ctx bounds background work started by
// the middleware stack.
func NewRouter(ctx context.Context, cfg *config.Config, deps Deps) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.RequestID(deps.Logger))
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())
	router.Use(middleware.SecurityHeaders(cfg.IsProduction(), "/swagger/", "/api/doc/"))
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	if cfg.Server.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(ctx, cfg.Server.RateLimit.Requests, cfg.Server.RateLimit.Window)
		router.Use(middleware.RateLimit(limiter))
	}
	if cfg.Validation.Enabled {
		validator, err := newValidator(cfg, deps.Contract)
		if err != nil {
			return nil, err
		}
		router.Use(middleware.RequestValidation(validator, deps.Translator))
	}

	health := handlers.NewHealthHandler(deps.Contract)
	router.GET("/health", health.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/openapi.yml", health.Contract)

	docs := gin.WrapH(httpSwagger.Handler(
		httpSwagger.URL("/openapi.yml"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))
	router.GET("/swagger/*any", docs)
	router.GET("/api/doc/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/swagger/index.html") })

	authorHandler := handlers.NewAuthorHandler(deps.Authors, deps.Translator)
	bookHandler := handlers.NewBookHandler(deps.Books, deps.Translator)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/authors", authorHandler.GetAuthors)
		v1.POST("/authors", authorHandler.ReferenceAuthor)
		v1.GET("/authors/:id", authorHandler.GetAuthor)

		v1.GET("/books", bookHandler.GetBooks)
		v1.POST("/books", bookHandler.ReferenceBook)
		v1.GET("/books/:id", bookHandler.GetBook)
	}

	return router, nil
}

func newValidator(cfg *config.Config, contract *schema.Contract) (*schema.Validator, error) {
	if contract == nil {
		return nil, errValidationWithoutContract
	}

	opts := []schema.Option{schema.WithWhitelist(cfg.Validation.Whitelist...)}
	levels, err := cfg.ValidationLevels()
	if err != nil {
		return nil, err
	}
	for key, level := range levels {
		opts = append(opts, schema.WithLevel(key, level))
	}
	return schema.NewValidator(contract, opts...), nil
}
