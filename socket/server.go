package socket

import (
	socketio "github.com/googollee/go-socket.io"

	"github.com/charmbracelet/log"
)

// Events sent by clients
const (
	EventRegisterUser   = "register_user"
	EventUnregisterUser = "unregister_user"
)

// NewSocketServer initializes a Socket.IO server whose connections register
// themselves as live channels in registry.
func NewSocketServer(registry *Registry, pushBuffer int) *socketio.Server {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(c socketio.Conn) error {
		log.Debug("Socket connected", "conn", c.ID())
		return nil
	})

	// The client sends its party id once authenticated
	server.OnEvent("/", EventRegisterUser, func(c socketio.Conn, partyID string) {
		if partyID == "" {
			log.Warn("Ignoring register_user without a party id", "conn", c.ID())
			return
		}
		registry.Register(partyID, NewConnChannel(c, pushBuffer))
	})

	server.OnEvent("/", EventUnregisterUser, func(c socketio.Conn) {
		registry.Unregister(c.ID())
	})

	server.OnError("/", func(c socketio.Conn, err error) {
		if c == nil {
			log.Error("Socket error", "error", err)
			return
		}
		log.Error("Socket error", "conn", c.ID(), "error", err)
	})

	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		log.Debug("Socket disconnected", "conn", c.ID(), "reason", reason)
		registry.Unregister(c.ID())
	})

	return server
}
