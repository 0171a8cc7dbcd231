package remote

import (
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

const (
	DefaultBroker   = "tcp://localhost:1883"
	DefaultClientID = "nocturne"
	DefaultTopic    = "nocturne"

	waitTimeout = 10 * time.Second
)

// Client wraps the paho client with the handful of calls the bridge needs.
type Client struct {
	client paho.Client
	mu     sync.Mutex
}

// NewClient creates a client for broker but does not connect.
func NewClient(broker, clientID string) *Client {
	if broker == "" {
		broker = DefaultBroker
	}
	if clientID == "" {
		clientID = DefaultClientID
	}
	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetryInterval(5 * time.Second).
		SetKeepAlive(30 * time.Second)

	return &Client{client: paho.NewClient(opts)}
}

// Connect attempts to connect to the broker without blocking indefinitely.
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	token := c.client.Connect()
	if !token.WaitTimeout(waitTimeout) {
		return &TimeoutError{Op: "connect"}
	}
	return token.Error()
}

func (c *Client) Subscribe(topic string, handler paho.MessageHandler) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	token := c.client.Subscribe(topic, 1, handler)
	if !token.WaitTimeout(waitTimeout) {
		return &TimeoutError{Op: "subscribe", Topic: topic}
	}
	return token.Error()
}

// Publish queues a retained message and returns without waiting for the
// broker.
func (c *Client) Publish(topic string, payload []byte) {
	c.client.Publish(topic, 0, true, payload)
}

func (c *Client) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.client.Disconnect(250)
}

func (c *Client) IsConnected() bool {
	return c.client.IsConnected()
}

// TimeoutError reports a broker operation that did not complete in time.
type TimeoutError struct {
	Op    string
	Topic string
}

func (e *TimeoutError) Error() string {
	if e.Topic == "" {
		return "mqtt " + e.Op + " timeout"
	}
	return "mqtt " + e.Op + " timeout: " + e.Topic
}
