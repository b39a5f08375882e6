package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/linesmerrill/efiling-api/api"
	"github.com/linesmerrill/efiling-api/notify"
)

// Notifications exported for testing purposes
type Notifications struct {
	Hub *notify.Hub
}

// HandleNotificationsWebSocket holds a websocket open for the signed in user.
// The user id comes from the auth middleware, never from the query string.
func (n Notifications) HandleNotificationsWebSocket(w http.ResponseWriter, r *http.Request) {
	actor, err := actorOf(r)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	if err := n.Hub.Serve(w, r, actor.ID.Hex()); err != nil {
		// the upgrader already wrote the http error
		zap.S().Infow("websocket closed", "userId", actor.ID.Hex(), "error", err)
	}
}
