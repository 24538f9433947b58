// Package mqtt implements the transport contract over an MQTT broker
// using the Eclipse Paho client. Reconnection, TLS and authentication are
// handled here (and by Paho itself), keeping them out of the node layer.
package mqtt

import (
	"crypto/tls"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/agentlink/agentlink/transport"
)

// ConnectionConfig describes how to reach and authenticate with an MQTT
// broker. Zero values fall back to sensible defaults in NewClient.
type ConnectionConfig struct {
	// Broker is the broker hostname or IP. Required.
	Broker string

	// Port is the broker port. Defaults to 8883 with TLS, 1883 without.
	Port int

	// ClientID identifies this client to the broker. Defaults to a
	// generated "agentlink-<uuid>" id.
	ClientID string

	// Username and Password are used for USERPASS authentication when
	// Username is non-empty.
	Username string
	Password string

	// UseTLS enables TLS on the broker connection.
	UseTLS bool

	// KeepAlive is the MQTT keep-alive interval. Defaults to 60s.
	KeepAlive time.Duration

	// ConnectTimeout bounds Connect and per-operation token waits.
	// Defaults to 30s.
	ConnectTimeout time.Duration
}

func (c ConnectionConfig) withDefaults() ConnectionConfig {
	if c.Port == 0 {
		if c.UseTLS {
			c.Port = 8883
		} else {
			c.Port = 1883
		}
	}
	if c.ClientID == "" {
		c.ClientID = "agentlink-" + uuid.NewString()
	}
	if c.KeepAlive == 0 {
		c.KeepAlive = 60 * time.Second
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = 30 * time.Second
	}
	return c
}

func (c ConnectionConfig) brokerURL() string {
	scheme := "tcp"
	if c.UseTLS {
		scheme = "ssl"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, c.Broker, c.Port)
}

// Client is an MQTT-backed transport. It implements
// [transport.Transport].
type Client struct {
	cfg    ConnectionConfig
	client paho.Client
}

var _ transport.Transport = (*Client)(nil)

// NewClient creates an MQTT transport client from the given configuration.
// The connection is not opened until Connect is called.
func NewClient(cfg ConnectionConfig) *Client {
	cfg = cfg.withDefaults()

	opts := paho.NewClientOptions()
	opts.AddBroker(cfg.brokerURL())
	opts.SetClientID(cfg.ClientID)
	opts.SetKeepAlive(cfg.KeepAlive)
	opts.SetConnectTimeout(cfg.ConnectTimeout)
	opts.SetAutoReconnect(true)
	opts.SetOrderMatters(true)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	if cfg.UseTLS {
		opts.SetTLSConfig(&tls.Config{MinVersion: tls.VersionTLS12})
	}

	return &Client{cfg: cfg, client: paho.NewClient(opts)}
}

func (c *Client) wait(op string, token paho.Token) error {
	if !token.WaitTimeout(c.cfg.ConnectTimeout) {
		return fmt.Errorf("mqtt: %s timed out after %s", op, c.cfg.ConnectTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt: %s: %w", op, err)
	}
	return nil
}

// Connect opens the broker connection.
func (c *Client) Connect() error {
	return c.wait("connect", c.client.Connect())
}

// Disconnect closes the broker connection, allowing a short quiesce for
// in-flight work.
func (c *Client) Disconnect() error {
	c.client.Disconnect(250)
	return nil
}

// Subscribe registers a handler for a topic. The handler runs on Paho's
// delivery goroutine.
func (c *Client) Subscribe(topic string, handler transport.MessageHandler, qos transport.QOS) error {
	token := c.client.Subscribe(topic, byte(qos), func(_ paho.Client, msg paho.Message) {
		handler(msg.Topic(), msg.Payload())
	})
	return c.wait(fmt.Sprintf("subscribe %q", topic), token)
}

// Unsubscribe removes the subscription for a topic.
func (c *Client) Unsubscribe(topic string) error {
	return c.wait(fmt.Sprintf("unsubscribe %q", topic), c.client.Unsubscribe(topic))
}

// Publish sends a payload to a topic.
func (c *Client) Publish(topic string, payload []byte, qos transport.QOS) error {
	return c.wait(fmt.Sprintf("publish %q", topic), c.client.Publish(topic, byte(qos), false, payload))
}
