package domain

import "time"

// Webhook event types accepted from the identity provider.
const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

// User is the local mirror of an identity-provider account. The
// provider owns the record; this table only follows its webhooks.
type User struct {
	ID               string
	Email            string
	Username         string
	DisplayName      string
	Avatar           string
	ChannelName      string
	SubscribersCount int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// WebhookEvent is the provider's envelope.
type WebhookEvent struct {
	Type string      `json:"type"`
	Data WebhookUser `json:"data"`
}

// WebhookUser is the user payload inside a webhook event.
type WebhookUser struct {
	ID             string         `json:"id"`
	EmailAddresses []EmailAddress `json:"email_addresses"`
	Username       string         `json:"username"`
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	ImageURL       string         `json:"image_url"`
}

type EmailAddress struct {
	EmailAddress string `json:"email_address"`
}

// PrimaryEmail returns the first listed address, or "".
func (u WebhookUser) PrimaryEmail() string {
	if len(u.EmailAddresses) == 0 {
		return ""
	}
	return u.EmailAddresses[0].EmailAddress
}

// DisplayName derives the display name: full name, then first name,
// then username, then "Anonymous".
func (u WebhookUser) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.Username != "":
		return u.Username
	default:
		return "Anonymous"
	}
}
