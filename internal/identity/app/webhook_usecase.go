package app

import (
	"context"
	"fmt"
	"time"

	"video_share_service/internal/identity/domain"
	"video_share_service/internal/identity/repository"
	"video_share_service/pkg/database"
	errprocess "video_share_service/pkg/err"
	"video_share_service/pkg/logger"
)

// dedupeTTL is how long a processed webhook ID is remembered. The
// provider retries within minutes, so a day is plenty.
const dedupeTTL = 24 * time.Hour

// WebhookUseCase applies identity-provider events to the local user
// mirror. Processing is idempotent: redelivered events are dropped via
// a Redis marker keyed by the webhook message ID.
type WebhookUseCase interface {
	Process(ctx context.Context, msgID string, evt domain.WebhookEvent) error
}

type webhookUseCase struct {
	users  repository.UserRepository
	dedupe database.RedisRepository[string]
}

func NewWebhookUseCase(users repository.UserRepository, dedupe database.RedisRepository[string]) WebhookUseCase {
	return &webhookUseCase{users: users, dedupe: dedupe}
}

func (uc *webhookUseCase) Process(ctx context.Context, msgID string, evt domain.WebhookEvent) error {
	if evt.Data.ID == "" {
		return errprocess.Validation("Webhook event missing user id")
	}

	fresh, err := uc.dedupe.SetNX(ctx, "webhook:"+msgID, evt.Type, dedupeTTL)
	if err != nil {
		return errprocess.Server(fmt.Sprintf("webhook dedupe check failed: %v", err))
	}
	if !fresh {
		logger.Log.Info("webhook [" + msgID + "] already processed, skipping")
		return nil
	}

	switch evt.Type {
	case domain.EventUserCreated, domain.EventUserUpdated:
		user := &domain.User{
			ID:          evt.Data.ID,
			Email:       evt.Data.PrimaryEmail(),
			Username:    evt.Data.Username,
			DisplayName: evt.Data.DisplayName(),
			Avatar:      evt.Data.ImageURL,
			ChannelName: evt.Data.DisplayName(),
		}
		if err := uc.users.Upsert(ctx, user); err != nil {
			// Let the provider redeliver; release the dedupe marker.
			if delErr := uc.dedupe.Del(ctx, "webhook:"+msgID); delErr != nil {
				logger.Log.Warn("release dedupe marker [" + msgID + "] failed: " + delErr.Error())
			}
			return errprocess.Server(fmt.Sprintf("sync user failed: %v", err))
		}
		logger.Log.Info("user [" + user.ID + "] synced from event [" + evt.Type + "]")

	case domain.EventUserDeleted:
		if err := uc.users.Delete(ctx, evt.Data.ID); err != nil {
			if delErr := uc.dedupe.Del(ctx, "webhook:"+msgID); delErr != nil {
				logger.Log.Warn("release dedupe marker [" + msgID + "] failed: " + delErr.Error())
			}
			return errprocess.Server(fmt.Sprintf("delete user failed: %v", err))
		}
		logger.Log.Info("user [" + evt.Data.ID + "] deleted from event")

	default:
		logger.Log.Info("ignoring webhook event type [" + evt.Type + "]")
	}
	return nil
}
