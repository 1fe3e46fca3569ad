package model

// Tier is the user's plan level.
type Tier string

const (
	TierFree    Tier = "free"
	TierPro     Tier = "pro"
	TierPremium Tier = "premium"
)

func (t Tier) IsValid() bool {
	return t == TierFree || t == TierPro || t == TierPremium
}

// Channel names as stored in Alert.DeliveryChannels.
const (
	ChannelWebPush = "web_push"
	ChannelEmail   = "email"
	ChannelSMS     = "sms"
	ChannelDiscord = "discord"
	ChannelWebhook = "webhook"
)

// NotificationSettings are the user's per-channel switches.
type NotificationSettings struct {
	WebPush bool `json:"web_push"`
	Email   bool `json:"email"`
	SMS     bool `json:"sms"`
	Discord bool `json:"discord"`
}

// QuietHoursConfig is a local-time window during which delivery is deferred.
// Days uses 0=Sunday; empty means every day.
type QuietHoursConfig struct {
	Enabled   bool   `json:"enabled"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Timezone  string `json:"timezone"`
	Days      []int  `json:"days"`
}

type User struct {
	ID                string               `json:"id"`
	Email             string               `json:"email"`
	Phone             string               `json:"phone,omitempty"`
	DiscordWebhookURL string               `json:"discord_webhook_url,omitempty"`
	PlanID            string               `json:"plan_id,omitempty"`
	SubscriptionTier  string               `json:"subscription_tier,omitempty"`
	Settings          NotificationSettings `json:"settings"`
	QuietHours        QuietHoursConfig     `json:"quiet_hours"`
}
