package realtime

import "encoding/json"

// Client -> server events
const (
	EventAuthenticate = "authenticate"
	EventJoinList     = "joinList"
	EventLeaveList    = "leaveList"
)

// Server -> client events
const (
	EventJoinedList      = "joinedList"
	EventListUpdated     = "listUpdated"
	EventListShared      = "listShared"
	EventListUnshared    = "listUnshared"
	EventListDeleted     = "listDeleted"
	EventListNameUpdated = "listnameUpdated"
)

// ClientMessage is the envelope for messages received from a client.
// Data carries the token for authenticate and the list id for
// joinList/leaveList.
type ClientMessage struct {
	Event string `json:"event"`
	Data  string `json:"data"`
}

// ServerMessage is the envelope for messages pushed to clients
type ServerMessage struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

func encodeServerMessage(event string, payload interface{}) ([]byte, error) {
	return json.Marshal(ServerMessage{Event: event, Data: payload})
}
