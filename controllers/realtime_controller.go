package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/spinkerton88/tiny-tastes-tracker-v2-sub001/services"
)

type RealtimeController struct {
	RT    *services.RealtimeHub
	Store *services.GormDocumentStore
}

func NewRealtimeController(rt *services.RealtimeHub, store *services.GormDocumentStore) *RealtimeController {
	return &RealtimeController{RT: rt, Store: store}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // tighten behind ALB/CloudFront if needed
}

// ProfileWS streams the signed-in user's alerts and profile-document
// changes. Each connection runs its own synchronizer, so the document
// subscription lives exactly as long as the socket.
func (rc *RealtimeController) ProfileWS(c *gin.Context) {
	uid := c.GetUint("userID")
	email := c.GetString("email")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	detach := rc.RT.Attach(uid, conn)

	sync := services.NewProfileSynchronizer(rc.Store)
	sync.SetOnChange(func(doc services.Document, exists bool) {
		rc.RT.Publish(uid, services.Event{Kind: "profile.changed", Data: map[string]any{
			"exists":   exists,
			"document": doc,
		}})
	})
	sync.OnIdentityChange(&services.Identity{ID: email, Email: email})

	teardown := func() {
		sync.OnIdentityChange(nil)
		detach()
	}

	// ping to keep connections alive through some proxies
	go func() {
		t := time.NewTicker(25 * time.Second)
		defer t.Stop()
		for range t.C {
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				teardown()
				return
			}
		}
	}()

	// read loop ends on client close/error → teardown
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			teardown()
			return
		}
	}
}
