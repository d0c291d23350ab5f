package socket

import (
	"encoding/json"
	"net/http"

	"github.com/Vishkec/monopoly/platform/config"
	socketio "github.com/googollee/go-socket.io"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

type socketMember struct {
	conn socketio.Conn
}

func (s socketMember) ID() string {
	return s.conn.ID()
}

func (s socketMember) Send(event string, payload interface{}) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	s.conn.Emit(event, string(b))
	return nil
}

func NewSocketIOServer(reg *Registry, log *logrus.Entry) (*socketio.Server, error) {
	server, err := socketio.NewServer(nil)
	if err != nil {
		return nil, err
	}

	server.OnConnect("/", func(s socketio.Conn) error {
		s.SetContext("")
		log.WithField("member", s.ID()).Debug("connected")
		return nil
	})

	for _, event := range clientEvents {
		event := event
		server.OnEvent("/", event, func(s socketio.Conn, jsonStr string) {
			reg.Dispatch(socketMember{conn: s}, event, []byte(jsonStr))
		})
	}

	server.OnError("/", func(s socketio.Conn, e error) {
		log.WithError(e).Warn("socket error")
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		log.WithField("member", s.ID()).WithField("reason", reason).Debug("disconnected")
		reg.Leave(socketMember{conn: s})
		s.LeaveAll()
	})

	return server, nil
}

// ServeSocketIO runs the socket.io relay until the listener fails.
func ServeSocketIO(cfg config.Config, server *socketio.Server) error {
	go server.Serve()
	defer server.Close()

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
	})

	mux := http.NewServeMux()
	mux.Handle("/socket.io/", server)
	return http.ListenAndServe(cfg.SocketAddr, c.Handler(mux))
}
