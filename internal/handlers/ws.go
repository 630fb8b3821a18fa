package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/quizmize/backend/internal/apierr"
	"github.com/quizmize/backend/internal/logger"
	"github.com/quizmize/backend/internal/realtime"
	"github.com/quizmize/backend/internal/services"
)

type WSHandler struct {
	log          *logger.Logger
	hub          *realtime.Hub
	chatService  services.ChatService
	groupService services.GroupService
	upgrader     websocket.Upgrader
}

func NewWSHandler(log *logger.Logger, hub *realtime.Hub, chatService services.ChatService, groupService services.GroupService) *WSHandler {
	handlerLog := log.With("handler", "WSHandler")
	return &WSHandler{
		log:          handlerLog,
		hub:          hub,
		chatService:  chatService,
		groupService: groupService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// ServeGroup upgrades the request and joins the caller to the group
// channel. Membership is enforced before the upgrade.
func (wh *WSHandler) ServeGroup(c *gin.Context) {
	rd, ok := actor(c)
	if !ok {
		return
	}
	groupID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := wh.groupService.GetGroup(c.Request.Context(), groupID)
	if err != nil {
		RespondError(c, err)
		return
	}
	if !detail.IsMember(rd.UserID) {
		RespondError(c, apierr.Forbidden("Only group members can join the channel"))
		return
	}

	conn, err := wh.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		wh.log.Warn("websocket upgrade failed", "error", err)
		return
	}

	userID := rd.UserID
	userName := rd.FullName
	client := realtime.NewClient(wh.hub, conn, wh.log, groupID, userID, userName, func(content string) {
		// The request context is gone once the socket outlives the
		// handshake; give each inbound message its own deadline.
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if _, sErr := wh.chatService.SendMessage(ctx, userID, groupID, content); sErr != nil {
			wh.log.Debug("chat message rejected", "group_id", groupID, "user_id", userID, "error", sErr)
		}
	})

	wh.hub.Register(client)
	go client.WritePump()
	go client.ReadPump()
}
