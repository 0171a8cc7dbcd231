// Package remote connects the display to an MQTT broker: a message on
// <topic>/skip requests a skip, and every scene change is published to
// <topic>/scene.
package remote

import (
	"fmt"
	"strings"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"
)

// Broker is the part of an MQTT client the bridge depends on.
type Broker interface {
	Subscribe(topic string, handler paho.MessageHandler) error
	Publish(topic string, payload []byte)
	Disconnect()
}

// Bridge implements stage.Notifier. onSkip runs on the MQTT client's
// goroutine, so it must hand the request over to the display loop rather
// than touch the orchestrator.
type Bridge struct {
	broker Broker
	topic  string
	onSkip func()
	log    zerolog.Logger
}

func NewBridge(broker Broker, topic string, onSkip func(), log zerolog.Logger) *Bridge {
	topic = strings.TrimSuffix(topic, "/")
	if topic == "" {
		topic = DefaultTopic
	}
	return &Bridge{broker: broker, topic: topic, onSkip: onSkip, log: log}
}

// Dial connects a real client and starts the bridge.
func Dial(broker, clientID, topic string, onSkip func(), log zerolog.Logger) (*Bridge, error) {
	c := NewClient(broker, clientID)
	if err := c.Connect(); err != nil {
		return nil, fmt.Errorf("connect %s: %w", broker, err)
	}
	b := NewBridge(c, topic, onSkip, log)
	if err := b.Start(); err != nil {
		c.Disconnect()
		return nil, err
	}
	return b, nil
}

func (b *Bridge) SkipTopic() string  { return b.topic + "/skip" }
func (b *Bridge) SceneTopic() string { return b.topic + "/scene" }

// Start subscribes to the skip topic.
func (b *Bridge) Start() error {
	if err := b.broker.Subscribe(b.SkipTopic(), b.handleSkip); err != nil {
		return fmt.Errorf("subscribe %s: %w", b.SkipTopic(), err)
	}
	b.log.Info().Str("topic", b.SkipTopic()).Msg("remote skip armed")
	return nil
}

func (b *Bridge) handleSkip(_ paho.Client, msg paho.Message) {
	b.log.Debug().Str("topic", msg.Topic()).Int("bytes", len(msg.Payload())).Msg("remote skip")
	if b.onSkip != nil {
		b.onSkip()
	}
}

// ShowName publishes the scene name without waiting for delivery.
func (b *Bridge) ShowName(name string) {
	b.broker.Publish(b.SceneTopic(), []byte(name))
}

func (b *Bridge) Close() {
	b.broker.Disconnect()
}
