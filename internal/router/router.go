package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/senseilabs/sensei-bot/internal/config"
	"github.com/senseilabs/sensei-bot/internal/telegram"
)

type RouterConfig struct {
	TelegramHandler *telegram.Handler
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		config.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/webhook", func(r chi.Router) {
		r.Mount("/", telegram.Routes(cfg.TelegramHandler))
	})

	return r
}
