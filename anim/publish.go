package anim

import (
	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// A Publisher receives each persisted frame as PNG bytes, for live
// preview of a long render. A publish error fails the job like any
// other frame failure.
type Publisher interface {
	PublishFrame(index int, data []byte) error
}

// MQTTPublisher pushes frames to an MQTT topic.
type MQTTPublisher struct {
	client mqtt.Client
	topic  string
	qos    byte
}

// NewMQTTPublisher creates an MQTTPublisher on an already-connected
// client.
func NewMQTTPublisher(client mqtt.Client, topic string, qos byte) *MQTTPublisher {
	p := new(MQTTPublisher)
	p.client = client
	p.topic = topic
	p.qos = qos
	return p
}

// PublishFrame sends the frame bytes and waits for the broker ack.
func (p *MQTTPublisher) PublishFrame(index int, data []byte) error {
	token := p.client.Publish(p.topic, p.qos, false, data)
	token.Wait()
	return token.Error()
}
