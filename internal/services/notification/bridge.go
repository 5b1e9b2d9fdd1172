package notification

import (
	"context"
	"encoding/json"

	"paylink/internal/logger"
	"paylink/internal/repositories/cache"
)

// RunBridge consumes the shared pub/sub channel and delivers pushes to
// sockets registered on this replica. It blocks until ctx is cancelled.
func RunBridge(ctx context.Context, cacheSvc *cache.CacheService, registry *Registry) {
	sub := cacheSvc.SubscribeNotifications(ctx)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var env Envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				logger.Warnf("malformed notification envelope: %v", err)
				continue
			}
			registry.Send(env.UserID, Push{Event: EventNewNotification, Data: env.Data})
		}
	}
}
