package participant

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/Vishkec/monopoly/app/models"
	"github.com/gorilla/websocket"
)

// Client is a Transport over the relay's native websocket endpoint.
type Client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

func (c *Client) send(event string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(models.Envelope{Event: event, Data: data})
}

func (c *Client) CreateRoom(name, color string) error {
	return c.send("createRoom", models.CreateRoomDto{Name: name, Color: color})
}

func (c *Client) JoinRoom(code, name, color string) error {
	return c.send("joinRoom", models.JoinRoomDto{RoomCode: code, Name: name, Color: color})
}

func (c *Client) Broadcast(roomCode string, state []byte) error {
	return c.send("stateUpdate", models.StateUpdateDto{RoomCode: roomCode, State: state})
}

func (c *Client) SendAction(roomCode string, intent models.Intent) error {
	return c.send("action", models.ActionDto{RoomCode: roomCode, Intent: intent})
}

// Listen passes every envelope to fn until the connection fails or ctx ends.
func (c *Client) Listen(ctx context.Context, fn func(models.Envelope)) error {
	go func() {
		<-ctx.Done()
		c.conn.Close()
	}()
	for {
		var env models.Envelope
		if err := c.conn.ReadJSON(&env); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		fn(env)
	}
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return c.conn.Close()
}
