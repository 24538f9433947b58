// Command chatclient is an interactive chat client for an agentlink room.
// It connects to an MQTT broker configured through environment variables,
// prints every inbound message, and sends what you type — directly to
// HOST_ID when set, otherwise to the whole room.
//
// Environment: MQTT_BROKER, MQTT_PORT, MQTT_USER, MQTT_PASS,
// MQTT_USE_TLS, ROOM_ID, HOST_ID. A .env file is loaded when present.
package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/agentlink/agentlink"
	"github.com/agentlink/agentlink/transport/mqtt"
)

func main() {
	godotenv.Load()
	logger := slog.Default()

	broker := os.Getenv("MQTT_BROKER")
	if broker == "" {
		logger.Error("MQTT_BROKER is required")
		os.Exit(1)
	}

	tr := mqtt.NewClient(mqtt.ConnectionConfig{
		Broker:   broker,
		Port:     envInt("MQTT_PORT", 0),
		Username: os.Getenv("MQTT_USER"),
		Password: os.Getenv("MQTT_PASS"),
		UseTLS:   envBool("MQTT_USE_TLS", true),
	})

	roomID := envOr("ROOM_ID", "my_chat_room")
	clientID := fmt.Sprintf("human_client_%d", time.Now().Unix())
	hostID := os.Getenv("HOST_ID")

	node := agentlink.New(tr,
		agentlink.WithRoomID(roomID),
		agentlink.WithAgentID(clientID),
		agentlink.WithLogger(logger),
	)
	logger.Info("client starting", "client_id", clientID, "room_id", roomID)
	if hostID != "" {
		logger.Info("sending direct messages", "host_id", hostID)
	} else {
		logger.Info("no HOST_ID set, sending to everyone in the room")
	}

	node.AddHandler(func(msg agentlink.Message) (agentlink.Response, error) {
		fmt.Printf("\n[%s]: %v\n", msg.SenderID, msg.Content)
		fmt.Print("You: ")
		return nil, nil
	})

	if err := node.Join(); err != nil {
		logger.Error("failed to join room", "error", err)
		os.Exit(1)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		logger.Info("shutting down client")
		node.Leave()
		os.Exit(0)
	}()

	reader := bufio.NewReader(os.Stdin)
	fmt.Println("Connected. Type a message and press enter (ctrl-c to quit).")
	for {
		fmt.Print("You: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			break
		}
		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}

		var sendErr error
		if hostID != "" {
			_, sendErr = node.SendMessage(text, agentlink.ToAgent(hostID))
		} else {
			_, sendErr = node.SendMessage(text)
		}
		if sendErr != nil {
			logger.Error("failed to send message", "error", sendErr)
		}
	}

	node.Leave()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return fallback
	}
}
