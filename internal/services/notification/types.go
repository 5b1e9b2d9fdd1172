package notification

// Event name pushed over websockets for newly created notifications.
const EventNewNotification = "new_notification"

// Push is the websocket payload for a live notification.
type Push struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Envelope is the cross-replica pub/sub message. Only the replica
// holding the user's socket delivers it.
type Envelope struct {
	UserID uint        `json:"user_id"`
	Data   interface{} `json:"data"`
}
