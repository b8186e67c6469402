package internal

type Message[T any] struct {
	Type string `json:"type"`
	Data T      `json:"data"`
}

// Inbound message types.
const (
	MsgAuth          = "AUTH"
	MsgPlaceResource = "PLACE_RESOURCE"
	MsgSubmitTurn    = "SUBMIT_TURN"
	MsgHostStart     = "HOST_START"
	MsgHostPause     = "HOST_PAUSE"
	MsgHostResume    = "HOST_RESUME"
	MsgHostSkip      = "HOST_SKIP"
	MsgHostEnd       = "HOST_END"
	MsgPong          = "PONG"
)

// Outbound message types.
const (
	MsgConnected        = "CONNECTED"
	MsgAuthSuccess      = "AUTH_SUCCESS"
	MsgAuthFailed       = "AUTH_FAILED"
	MsgGameState        = "GAME_STATE"
	MsgTeamConnected    = "TEAM_CONNECTED"
	MsgTeamDisconnected = "TEAM_DISCONNECTED"
	MsgTeamSubmitted    = "TEAM_SUBMITTED"
	MsgTurnResult       = "TURN_RESULT"
	MsgGameOver         = "GAME_OVER"
	MsgError            = "ERROR"
	MsgPing             = "PING"
)

type AuthData struct {
	Role   ClientRole `json:"role"`
	Token  string     `json:"token"`
	TeamID string     `json:"team_id,omitempty"`
}

type PlaceResourceData struct {
	CellID string `json:"cell_id"`
	Amount int    `json:"amount"`
}

type ConnectedData struct {
	ClientID string `json:"client_id"`
}

type AuthSuccessData struct {
	Role ClientRole `json:"role"`
}

type AuthFailedData struct {
	Reason string `json:"reason"`
}

type TeamEventData struct {
	TeamID string `json:"team_id"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
