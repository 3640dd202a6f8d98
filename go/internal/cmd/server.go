package main

import (
	"net/http"
	"time"

	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mcdev12/quizhost/go/internal/config"
	"github.com/mcdev12/quizhost/go/internal/httpapi"
)

func setupServer(cfg config.Server, services *Services) *http.Server {
	router := httpapi.NewRouter(httpapi.NewHandler(services.Quizzes, services.Sessions, services.Scoring))

	// Setup CORS middleware
	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedHeaders:   []string{"*"},
		AllowCredentials: cfg.CORSAllowCredentials,
	})

	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h2c.NewHandler(c.Handler(router), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}
}
