package notification

import (
	"fmt"

	"ngi/services/logger"

	"github.com/olahol/melody"
)

// Service pushes a raw message to every connected browser
type Service interface {
	SendMessage(message string) error
}

type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) SendMessage(message string) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.m.Broadcast([]byte(message))
}

// Forward sends every bus event, JSON encoded, through svc
func Forward(bus Bus, svc Service, log logger.Logger) func() {
	return bus.Subscribe(func(e Event) {
		payload, err := e.Encode()
		if err != nil {
			log.Error("encode %s: %v", e.Type, err)
			return
		}
		if err := svc.SendMessage(string(payload)); err != nil {
			log.Error("broadcast %s: %v", e.Type, err)
		}
	})
}
