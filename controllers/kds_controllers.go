package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/restaurant-tables/kds"
	"github.com/yeremiapane/restaurant-tables/middlewares"
	"github.com/yeremiapane/restaurant-tables/models"
	"github.com/yeremiapane/restaurant-tables/services"
	"github.com/yeremiapane/restaurant-tables/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// FloorSocketHandler streams floor events to staff displays. The current floor
// is sent first so a display can render before the next change arrives.
func FloorSocketHandler(hub *kds.Hub, floor *services.FloorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(middlewares.CtxRole)
		if role != models.RoleStaff && role != models.RoleAdmin {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			utils.ErrorLogger.Printf("Websocket upgrade failed: %v", err)
			return
		}

		// the snapshot is taken under the hub lock, so no event can fall between
		// it and the broadcasts that follow
		hub.RegisterClient(ws, role, func() kds.Message {
			return kds.Message{Event: kds.EventDashboardUpdate, Data: floor.Snapshot()}
		})

		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}

		hub.UnregisterClient(ws)
	}
}
