package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/KNICEX/market-alert/internal/errs"
	"github.com/KNICEX/market-alert/internal/service/notification"
	"github.com/go-resty/resty/v2"
)

const DefaultBaseURL = "https://api.telegram.org"

var _ notification.Notifier = (*Notifier)(nil)

type Notifier struct {
	cli      *resty.Client
	botToken string
	chatId   string
}

// NewNotifier cli must already carry base url and timeout
func NewNotifier(cli *resty.Client, botToken, chatId string) *Notifier {
	return &Notifier{
		cli:      cli,
		botToken: botToken,
		chatId:   chatId,
	}
}

type apiResponse struct {
	Ok          bool   `json:"ok"`
	Description string `json:"description"`
}

func (n *Notifier) Notify(ctx context.Context, msg notification.Message) error {
	resp, err := n.cli.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"chat_id":                  n.chatId,
			"text":                     msg.Text,
			"parse_mode":               "Markdown",
			"disable_web_page_preview": strconv.FormatBool(msg.DisablePreview),
		}).
		Post(fmt.Sprintf("/bot%s/sendMessage", n.botToken))
	if err != nil {
		return fmt.Errorf("%w: telegram: %w", errs.ErrNotifyDelivery, err)
	}
	if resp.StatusCode() != http.StatusOK {
		var res apiResponse
		_ = json.Unmarshal(resp.Body(), &res)
		return fmt.Errorf("%w: telegram status %d: %s", errs.ErrNotifyDelivery, resp.StatusCode(), res.Description)
	}
	return nil
}
