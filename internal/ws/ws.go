package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/truongvq/kienquoc-backend/internal"
	"github.com/truongvq/kienquoc-backend/internal/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const closeRoomNotFound = 4004

// HandleWebSocket upgrades the connection, registers the client, and runs its
// read loop until disconnect.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	roomCode := utils.NormalizeRoomCode(mux.Vars(r)["roomCode"])

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[HandleWebSocket] Upgrade failed: %v", err)
		return
	}

	if h.rooms.Store().Get(roomCode) == nil {
		msg := websocket.FormatCloseMessage(closeRoomNotFound, "Room not found")
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		_ = conn.Close()
		return
	}

	client := NewClient(uuid.NewString(), conn)
	h.manager.Register(roomCode, client)

	if err := client.SafeWriteJSON(internal.Message[internal.ConnectedData]{
		Type: internal.MsgConnected,
		Data: internal.ConnectedData{ClientID: client.ID},
	}); err != nil {
		log.Printf("[HandleWebSocket][Room:%s] Failed to greet client %s: %v", roomCode, client.ID, err)
	}

	go h.pingLoop(client)
	h.readLoop(roomCode, client, conn)
}

// pingLoop keeps the connection warm; clients answer with PONG, which the
// read loop accepts and ignores.
func (h *Hub) pingLoop(client *Client) {
	interval := time.Duration(h.settings.HeartbeatInterval) * time.Second
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := client.SafeWriteJSON(internal.Message[struct{}]{Type: internal.MsgPing}); err != nil {
				return
			}
		case <-client.Done():
			return
		}
	}
}

// readLoop parses inbound messages and routes them by type.
func (h *Hub) readLoop(roomCode string, client *Client, conn *websocket.Conn) {
	defer func() {
		client.Close()
		h.handleDisconnect(roomCode, client)
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			log.Printf("[readLoop][Room:%s] Client %s read error: %v", roomCode, client.ID, err)
			return
		}

		var baseMsg internal.Message[json.RawMessage]
		if err := json.Unmarshal(raw, &baseMsg); err != nil {
			log.Printf("[readLoop][Room:%s] Client %s sent malformed message: %v", roomCode, client.ID, err)
			continue
		}

		switch baseMsg.Type {
		case internal.MsgAuth:
			var data internal.AuthData
			if err := json.Unmarshal(baseMsg.Data, &data); err != nil {
				h.sendError(client, "BAD_REQUEST", "malformed AUTH payload")
				continue
			}
			h.handleAuth(roomCode, client, data)

		case internal.MsgPlaceResource:
			var data internal.PlaceResourceData
			if err := json.Unmarshal(baseMsg.Data, &data); err != nil {
				h.sendError(client, "BAD_REQUEST", "malformed PLACE_RESOURCE payload")
				continue
			}
			h.handlePlaceResource(roomCode, client, data)

		case internal.MsgSubmitTurn:
			h.handleSubmitTurn(roomCode, client)

		case internal.MsgHostStart:
			h.handleHostStart(roomCode, client)

		case internal.MsgHostPause:
			h.handleHostPause(roomCode, client)

		case internal.MsgHostResume:
			h.handleHostResume(roomCode, client)

		case internal.MsgHostSkip:
			h.handleHostSkip(roomCode, client)

		case internal.MsgHostEnd:
			h.handleHostEnd(roomCode, client)

		case internal.MsgPong:
			// Heartbeat acknowledgment.

		default:
			log.Printf("[readLoop][Room:%s] Client %s sent unknown type %q", roomCode, client.ID, baseMsg.Type)
		}
	}
}
