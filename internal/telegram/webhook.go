package telegram

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/senseilabs/sensei-bot/internal/config"
)

// Handler serves the webhook deployment mode: Telegram posts updates to us
// instead of the bot polling for them.
type Handler struct {
	bot *Bot
}

func NewHandler(bot *Bot) *Handler {
	return &Handler{bot: bot}
}

func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.WithError(err).Error("Invalid webhook payload")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	h.bot.HandleUpdate(r.Context(), update)

	config.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.Webhook)
	return r
}
