package eventpubsub

import (
	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"
)

type PubSub struct {
	bus EventBus.Bus
}

func New() *PubSub {
	return &PubSub{
		bus: EventBus.New(),
	}
}

func (p *PubSub) Publish(topic string, event interface{}) {
	p.bus.Publish(topic, event)
}

func (p *PubSub) Subscribe(topic string, callbackFn interface{}) error {
	if err := p.bus.SubscribeAsync(topic, callbackFn, false); err != nil {
		return err
	}

	log.Infof("Subscribed to topic %s", topic)
	return nil
}
