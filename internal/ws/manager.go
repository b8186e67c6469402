package ws

import (
	"errors"
	"log"
	"sync"

	"github.com/truongvq/kienquoc-backend/internal"
)

var (
	ErrConnNotFound      = errors.New("connection not found")
	ErrHostConnected     = errors.New("host already connected")
	ErrTeamConnected     = errors.New("team already connected")
)

// Conn is the write side of a websocket connection. *websocket.Conn satisfies
// it; tests substitute an in-memory fake.
type Conn interface {
	WriteJSON(v any) error
	Close() error
}

// Client wraps a connection with an id and a write mutex so concurrent
// broadcasts never interleave frames.
type Client struct {
	ID   string
	conn Conn

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

func NewClient(id string, conn Conn) *Client {
	return &Client{ID: id, conn: conn, done: make(chan struct{})}
}

func (c *Client) SafeWriteJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// Close shuts the connection down; safe to call more than once.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.done)
	_ = c.conn.Close()
}

// Done is closed once the client is shut down.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// ConnInfo is the authentication state of one connection.
type ConnInfo struct {
	Authenticated bool
	Role          internal.ClientRole
	TeamID        string
}

// Projector transforms an outbound message for one recipient. Returning
// false skips that recipient entirely.
type Projector interface {
	Project(msg any, info ConnInfo) (any, bool)
}

// Manager tracks live connections per room and enforces at most one
// authenticated connection per team and per host. Rooms are independent; all
// maps are keyed by room code first.
type Manager struct {
	mu    sync.RWMutex
	conns map[string]map[*Client]*ConnInfo
	teams map[string]map[string]*Client
	hosts map[string]*Client
}

func NewManager() *Manager {
	return &Manager{
		conns: make(map[string]map[*Client]*ConnInfo),
		teams: make(map[string]map[string]*Client),
		hosts: make(map[string]*Client),
	}
}

// Register adds a fresh, unauthenticated connection to a room.
func (m *Manager) Register(roomCode string, client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conns[roomCode] == nil {
		m.conns[roomCode] = make(map[*Client]*ConnInfo)
	}
	m.conns[roomCode][client] = &ConnInfo{}
}

// Unregister removes a connection and releases any team/host binding it held,
// so the same credential can authenticate a new connection. Returns a copy of
// the connection's info, or nil if it was unknown.
func (m *Manager) Unregister(roomCode string, client *Client) *ConnInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	clients, ok := m.conns[roomCode]
	if !ok {
		return nil
	}
	info, ok := clients[client]
	if !ok {
		return nil
	}
	delete(clients, client)

	if info.TeamID != "" {
		if m.teams[roomCode][info.TeamID] == client {
			delete(m.teams[roomCode], info.TeamID)
		}
	}
	if info.Role == internal.RoleHost && m.hosts[roomCode] == client {
		delete(m.hosts, roomCode)
	}

	if len(clients) == 0 {
		delete(m.conns, roomCode)
		delete(m.teams, roomCode)
	}

	copied := *info
	return &copied
}

// Authenticate binds a connection to a role. A second host, or a second
// connection for an already-bound team, is rejected instead of replacing the
// first.
func (m *Manager) Authenticate(roomCode string, client *Client, role internal.ClientRole, teamID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	clients, ok := m.conns[roomCode]
	if !ok {
		return ErrConnNotFound
	}
	info, ok := clients[client]
	if !ok {
		return ErrConnNotFound
	}

	switch {
	case role == internal.RoleHost:
		if _, taken := m.hosts[roomCode]; taken {
			return ErrHostConnected
		}
		m.hosts[roomCode] = client
	case role == internal.RolePlayer && teamID != "":
		if _, taken := m.teams[roomCode][teamID]; taken {
			return ErrTeamConnected
		}
		if m.teams[roomCode] == nil {
			m.teams[roomCode] = make(map[string]*Client)
		}
		m.teams[roomCode][teamID] = client
	}

	info.Authenticated = true
	info.Role = role
	info.TeamID = teamID
	return nil
}

// Info returns a copy of a connection's authentication state.
func (m *Manager) Info(roomCode string, client *Client) (ConnInfo, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	info, ok := m.conns[roomCode][client]
	if !ok {
		return ConnInfo{}, false
	}
	return *info, true
}

// Broadcast fans a message out to every authenticated connection in a room.
// exclude skips one connection; filter, when non-nil, reshapes the message per
// recipient (or drops it). Send failures are logged and swallowed so one dead
// peer never blocks the rest.
func (m *Manager) Broadcast(roomCode string, msg any, exclude *Client, filter Projector) {
	type recipient struct {
		client *Client
		info   ConnInfo
	}

	m.mu.RLock()
	recipients := make([]recipient, 0, len(m.conns[roomCode]))
	for client, info := range m.conns[roomCode] {
		if client == exclude || !info.Authenticated {
			continue
		}
		recipients = append(recipients, recipient{client: client, info: *info})
	}
	m.mu.RUnlock()

	for _, r := range recipients {
		out := msg
		if filter != nil {
			projected, keep := filter.Project(msg, r.info)
			if !keep {
				continue
			}
			out = projected
		}
		if err := r.client.SafeWriteJSON(out); err != nil {
			log.Printf("[Broadcast][Room:%s] Failed for client %s: %v", roomCode, r.client.ID, err)
		}
	}
}

// SendToTeam delivers a message to the connection bound to a team, if any.
func (m *Manager) SendToTeam(roomCode, teamID string, msg any) {
	m.mu.RLock()
	client := m.teams[roomCode][teamID]
	m.mu.RUnlock()
	if client == nil {
		return
	}
	if err := client.SafeWriteJSON(msg); err != nil {
		log.Printf("[SendToTeam][Room:%s] Failed for team %s: %v", roomCode, teamID, err)
	}
}

// IsTeamConnected reports whether a team currently holds a connection.
func (m *Manager) IsTeamConnected(roomCode, teamID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.teams[roomCode][teamID]
	return ok
}

// ConnectionCount reports the number of connections in a room.
func (m *Manager) ConnectionCount(roomCode string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.conns[roomCode])
}

// ClearRoom drops every connection record for a room.
func (m *Manager) ClearRoom(roomCode string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.conns, roomCode)
	delete(m.teams, roomCode)
	delete(m.hosts, roomCode)
}
