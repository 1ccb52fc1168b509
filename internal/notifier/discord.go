package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/aure/fgtusage/internal/models"
)

const sendTimeout = 10 * time.Second

// discordPayload is the minimal Discord webhook body.
type discordPayload struct {
	Content string `json:"content"`
}

// DiscordNotifier posts messages to a Discord webhook URL.
// Any endpoint accepting {"content": "..."} works.
type DiscordNotifier struct {
	url    string
	client *resty.Client
	clock  clockwork.Clock
	logger *zap.Logger
}

func NewDiscordNotifier(webhookURL string, logger *zap.Logger) *DiscordNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DiscordNotifier{
		url: webhookURL,
		client: resty.New().
			SetTimeout(sendTimeout).
			SetLogger(logger.Sugar()).
			SetDisableWarn(true),
		clock:  clockwork.NewRealClock(),
		logger: logger,
	}
}

func (d *DiscordNotifier) Name() string {
	return "discord"
}

// Notify labels usageGiB with the current month and sends it.
func (d *DiscordNotifier) Notify(ctx context.Context, usageGiB float64) error {
	return d.Send(ctx, models.NewNotificationMessage(d.clock.Now(), usageGiB))
}

func (d *DiscordNotifier) Send(ctx context.Context, msg models.NotificationMessage) error {
	resp, err := d.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(discordPayload{Content: msg.Content()}).
		Post(d.url)
	if err != nil {
		return &NotifyError{Notifier: d.Name(), Err: fmt.Errorf("send webhook: %w", err)}
	}

	if !resp.IsSuccess() {
		return &NotifyError{
			Notifier:   d.Name(),
			StatusCode: resp.StatusCode(),
			Err:        fmt.Errorf("webhook returned status %d", resp.StatusCode()),
		}
	}

	d.logger.Debug("usage message delivered",
		zap.String("notifier", d.Name()),
		zap.String("month", msg.MonthLabel),
		zap.Int("status", resp.StatusCode()),
	)
	return nil
}
