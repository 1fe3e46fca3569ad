package discord

import "time"

const (
	webhookURLPrefix   = "https://discord.com/api/webhooks/"
	webhookURLTemplate = webhookURLPrefix + "%s/%s"

	ColorBlue   = 3447003
	ColorGreen  = 3066993
	ColorYellow = 16776960
	ColorRed    = 15158332
	ColorPurple = 10181046
	ColorOrange = 15105570
	ColorGray   = 9807270

	ColorInfo    = ColorBlue
	ColorSuccess = ColorGreen
	ColorWarning = ColorYellow
	ColorError   = ColorRed

	MaxMessageLength  = 2000
	MaxEmbedLength    = 6000
	MaxTitleLen       = 256
	MaxDescriptionLen = 4096
	MaxFieldValueLen  = 1024
)

const (
	DefaultTimeout    = 10 * time.Second
	DefaultRetryCount = 2
	DefaultRetryDelay = 1 * time.Second
	DefaultUsername   = "Restock Alerts"
	UserAgent         = "RestockAlerts-Bot/1.0"
	ReportBugTitle    = "restock-srv error report"
)
