package socket

import (
	"encoding/json"
	"sync"

	"github.com/Vishkec/monopoly/app/models"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
)

type wsMember struct {
	id   string
	mu   sync.Mutex
	conn *websocket.Conn
}

func (w *wsMember) ID() string {
	return w.id
}

func (w *wsMember) Send(event string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteJSON(models.Envelope{Event: event, Data: data})
}

func WebsocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// WebsocketHandler relays enveloped messages between native websocket
// clients and the registry.
func WebsocketHandler(reg *Registry, log *logrus.Entry) fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		m := &wsMember{id: uuid.NewV4().String(), conn: c}
		log := log.WithField("member", m.id)
		log.Debug("connected")
		defer func() {
			reg.Leave(m)
			log.Debug("disconnected")
		}()

		for {
			_, msg, err := c.ReadMessage()
			if err != nil {
				return
			}
			var env models.Envelope
			if err := json.Unmarshal(msg, &env); err != nil {
				log.WithError(err).Debug("dropped malformed envelope")
				continue
			}
			reg.Dispatch(m, env.Event, env.Data)
		}
	})
}
