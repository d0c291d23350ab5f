package socket

import (
	"encoding/json"
	"errors"

	"github.com/Vishkec/monopoly/app/models"
)

// Events a client may send to the relay.
var clientEvents = []string{"createRoom", "joinRoom", "leaveRoom", "stateUpdate", "action"}

func roomError(m Member, message string) {
	m.Send("roomError", models.RoomErrorDto{Message: message})
}

// Dispatch decodes one client message and applies it to the registry.
// Malformed messages are answered with roomError or dropped, never fatal.
func (r *Registry) Dispatch(m Member, event string, data []byte) {
	log := r.log.WithField("member", m.ID()).WithField("event", event)
	switch event {
	case "createRoom":
		var dto models.CreateRoomDto
		if err := json.Unmarshal(data, &dto); err != nil {
			roomError(m, "Malformed request.")
			return
		}
		if _, err := r.Create(m, dto); err != nil {
			log.WithError(err).Error("create room failed")
			roomError(m, "Could not create room.")
		}
	case "joinRoom":
		var dto models.JoinRoomDto
		if err := json.Unmarshal(data, &dto); err != nil {
			roomError(m, "Malformed request.")
			return
		}
		_, err := r.Join(m, dto)
		switch {
		case err == nil:
		case errors.Is(err, ErrRoomNotFound):
			roomError(m, "Room not found.")
		case errors.Is(err, ErrRoomFull):
			roomError(m, "Room is full.")
		default:
			roomError(m, err.Error())
		}
	case "leaveRoom":
		r.Leave(m)
	case "stateUpdate":
		var dto models.StateUpdateDto
		if err := json.Unmarshal(data, &dto); err != nil {
			log.WithError(err).Debug("dropped malformed state")
			return
		}
		if err := r.SetState(m, dto.State); err != nil {
			log.WithError(err).Debug("dropped state")
		}
	case "action":
		var dto models.ActionDto
		if err := json.Unmarshal(data, &dto); err != nil {
			log.WithError(err).Debug("dropped malformed action")
			return
		}
		if err := r.Forward(m, dto.Intent); err != nil {
			log.WithError(err).Debug("dropped action")
		}
	default:
		log.Debug("unknown event")
	}
}
