package websockets

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Event types pushed to subscribers
const (
	EventCaseSubmitted = "case_submitted"
	EventCaseUpdated   = "case_updated"
	EventCaseStatus    = "case_status_update"
	EventCaseDeleted   = "case_deleted"
	EventVoteUpdate    = "vote_update"
)

// Event is the JSON frame written to every subscriber.
type Event struct {
	Type   string      `json:"type"`
	CaseID int64       `json:"case_id"`
	Actor  string      `json:"actor,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}

// Client represents a connected, authenticated subscriber
type Client struct {
	conn     *websocket.Conn
	Username string
	send     chan []byte
}

type Hub struct {
	clients    map[*Client]struct{}
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.Mutex
}
