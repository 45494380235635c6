package ioc

import (
	"fmt"
	"log/slog"

	"github.com/KNICEX/market-alert/internal/errs"
	"github.com/KNICEX/market-alert/internal/service/notification"
	"github.com/KNICEX/market-alert/internal/service/notification/telegram"
	"github.com/spf13/viper"
)

func InitNotifier() notification.Notifier {
	token := viper.GetString("telegram.bot_token")
	chatId := viper.GetString("telegram.chat_id")

	switch {
	case token == "" && chatId == "":
		slog.Warn("telegram not configured, notifications go to the log")
		return notification.NewConsoleNotifier()
	case token == "" || chatId == "":
		panic(fmt.Errorf("%w: telegram.bot_token and telegram.chat_id must be set together", errs.ErrConfig))
	}

	cli := newRestyClient(viper.GetString("telegram.base_url"))
	return telegram.NewNotifier(cli, token, chatId)
}
