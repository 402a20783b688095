package main

import (
	"net/http"

	"github.com/senseilabs/sensei-bot/internal/container"
	"github.com/senseilabs/sensei-bot/internal/router"
	"github.com/sirupsen/logrus"
)

func main() {
	c := container.New()

	handler := router.New(router.RouterConfig{
		TelegramHandler: c.TelegramHandler,
	})

	logrus.Infof("Webhook server listening on %s", c.Config.HTTPAddr)
	if err := http.ListenAndServe(c.Config.HTTPAddr, handler); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}
