package channel

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"restock-srv/internal/dispatch"
	"restock-srv/internal/model"
	"restock-srv/pkg/discord"
	"restock-srv/pkg/log"
)

type discordChannel struct {
	l         log.Logger
	newClient func(webhookURL string) (discord.IDiscord, error)
	clock     func() time.Time
}

// NewDiscord posts an embed to the user's own Discord webhook. Retries are left to the user's
// next alert, so the client is built with RetryCount 0.
func NewDiscord(l log.Logger, timeout time.Duration) dispatch.Channel {
	cfg := discord.DefaultConfig()
	cfg.RetryCount = 0
	if timeout > 0 {
		cfg.Timeout = timeout
	}
	return &discordChannel{
		l: l,
		newClient: func(webhookURL string) (discord.IDiscord, error) {
			return discord.NewFromURL(l, webhookURL, cfg)
		},
		clock: time.Now,
	}
}

func (c *discordChannel) Name() string { return model.ChannelDiscord }

func (c *discordChannel) Enabled(u model.User) bool {
	return u.Settings.Discord && strings.TrimSpace(u.DiscordWebhookURL) != ""
}

func (c *discordChannel) Send(ctx context.Context, a model.Alert, u model.User) (dispatch.SendResult, error) {
	client, err := c.newClient(u.DiscordWebhookURL)
	if err != nil {
		return dispatch.SendResult{}, err
	}
	defer client.Close()

	if err := client.SendEmbed(ctx, c.buildEmbed(a)); err != nil {
		return dispatch.SendResult{}, err
	}
	return dispatch.SendResult{DeliveryIDs: []string{uuid.NewString()}}, nil
}

func (c *discordChannel) buildEmbed(a model.Alert) discord.MessageOptions {
	p := a.Payload
	fields := []discord.EmbedField{
		buildField("Retailer", p.RetailerName, true),
		buildField("Priority", strings.ToUpper(string(a.Priority)), true),
	}
	if p.Price != nil {
		price := p.Price.StringFixed(2)
		if p.Currency != "" {
			price = price + " " + p.Currency
		}
		if p.PreviousPrice != nil {
			price = fmt.Sprintf("**%s** (was %s)", price, p.PreviousPrice.StringFixed(2))
		}
		fields = append(fields, buildField("Price", price, true))
	}
	if p.Availability != "" {
		fields = append(fields, buildField("Availability", p.Availability, true))
	}

	opts := discord.MessageOptions{
		Type:        discord.MessageTypeInfo,
		Color:       mapPriorityToColor(a.Priority),
		Title:       fmt.Sprintf("%s: %s", alertTitle(a.Type), p.ProductName),
		Description: fmt.Sprintf("**%s** at %s.", p.ProductName, p.RetailerName),
		URL:         p.ProductURL,
		Fields:      fields,
		Timestamp:   c.clock(),
		Footer: &discord.EmbedFooter{
			Text: "Restock Alerts",
		},
	}
	if p.ImageURL != "" {
		opts.Thumbnail = &discord.EmbedThumbnail{URL: p.ImageURL}
	}
	return opts
}

func alertTitle(t model.AlertType) string {
	switch t {
	case model.AlertTypeRestock:
		return "Back in stock"
	case model.AlertTypePriceDrop:
		return "Price drop"
	case model.AlertTypeLowStock:
		return "Low stock"
	case model.AlertTypePreOrder:
		return "Pre-order open"
	default:
		return "Alert"
	}
}

func mapPriorityToColor(p model.Priority) int {
	switch p {
	case model.PriorityUrgent:
		return discord.ColorRed
	case model.PriorityHigh:
		return discord.ColorOrange
	case model.PriorityMedium:
		return discord.ColorYellow
	default:
		return discord.ColorGray
	}
}

func buildField(name, value string, inline bool) discord.EmbedField {
	if value == "" {
		value = "N/A"
	}
	if len(value) > discord.MaxFieldValueLen {
		value = value[:discord.MaxFieldValueLen-3] + "..."
	}
	return discord.EmbedField{Name: name, Value: value, Inline: inline}
}
