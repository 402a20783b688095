package main

import (
	"github.com/senseilabs/sensei-bot/internal/container"
	"github.com/sirupsen/logrus"
)

func main() {
	c := container.New()

	logrus.Info("🤖 SenSei AI bot is starting...")
	c.Bot.Start()
}
