package service

import (
	"context"

	"helpmatch-backend/internal/logger"
	"helpmatch-backend/internal/realtime"
	"helpmatch-backend/internal/repository"
)

// notifier pushes a direct notification to a user's channel, falling back to
// device push when the user has no live session. Either path is best-effort:
// failures are logged and never surfaced to the lifecycle mutation.
type notifier struct {
	hub   realtime.Publisher
	push  PushService
	users repository.UserRepository
}

func (n *notifier) NotifyUser(ctx context.Context, userID int32, ev realtime.Notify) {
	n.hub.Publish(realtime.UserChannel(userID), ev)
	if n.push == nil || n.hub.Connected(userID) {
		return
	}
	user, err := n.users.GetByID(ctx, userID)
	if err != nil || user.DeviceToken == "" {
		return
	}
	if err := n.push.Send(ctx, user.DeviceToken, string(ev.Kind), ev.RequestID); err != nil {
		logger.Warn("Push delivery failed", "user_id", userID, "kind", ev.Kind, "error", err)
	}
}
