// Command llmhost runs an LLM-backed agent in an agentlink room. Every
// inbound message is answered with a completion from Anthropic or OpenAI,
// selected by whichever API key is set (ANTHROPIC_API_KEY wins).
//
// Environment: MQTT_BROKER, MQTT_PORT, MQTT_USER, MQTT_PASS,
// MQTT_USE_TLS, ROOM_ID, HOST_ID (this agent's id), LLM_MODEL,
// ANTHROPIC_API_KEY, OPENAI_API_KEY. A .env file is loaded when present.
package main

import (
	"context"
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
	"github.com/agentlink/agentlink/a2a"
	"github.com/agentlink/agentlink/transport/mqtt"
)

// completer answers a plain-text prompt. Both provider adapters satisfy
// it, keeping the handler independent of the SDK in use.
type completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

func main() {
	godotenv.Load()
	logger := slog.Default()

	broker := os.Getenv("MQTT_BROKER")
	if broker == "" {
		logger.Error("MQTT_BROKER is required")
		os.Exit(1)
	}

	llm, label, err := pickProvider()
	if err != nil {
		logger.Error("no usable LLM provider", "error", err)
		os.Exit(1)
	}
	logger.Info("using LLM provider", "provider", label)

	tr := mqtt.NewClient(mqtt.ConnectionConfig{
		Broker:   broker,
		Port:     envInt("MQTT_PORT", 0),
		Username: os.Getenv("MQTT_USER"),
		Password: os.Getenv("MQTT_PASS"),
		UseTLS:   envBool("MQTT_USE_TLS", true),
	})

	opts := []agentlink.Option{
		agentlink.WithRoomID(envOr("ROOM_ID", "my_chat_room")),
		agentlink.WithLogger(logger),
	}
	if hostID := os.Getenv("HOST_ID"); hostID != "" {
		opts = append(opts, agentlink.WithAgentID(hostID))
	}
	node := agentlink.New(tr, opts...)
	logger.Info("host starting", "agent_id", node.AgentID(), "room_id", node.RoomID())

	node.AddHandler(func(msg agentlink.Message) (agentlink.Response, error) {
		prompt, ok := msg.Content.(string)
		if !ok {
			prompt = fmt.Sprintf("%v", msg.Content)
		}
		logger.Info("answering message", "sender", msg.SenderID, "message_id", msg.MessageID)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		answer, err := llm.Complete(ctx, prompt)
		if err != nil {
			return nil, fmt.Errorf("completion failed: %w", err)
		}

		// Answer in the format the question arrived in.
		if msg.Envelope != nil {
			reply := a2a.NewTextMessage(a2a.MessageRoleAgent, answer)
			reply.Metadata = map[string]any{"sender_id": node.AgentID()}
			return agentlink.ReplyA2A(reply), nil
		}
		return agentlink.Reply(answer), nil
	})

	if err := node.Join(); err != nil {
		logger.Error("failed to join room", "error", err)
		os.Exit(1)
	}

	greeting := fmt.Sprintf("Hello! I'm an LLM agent (%s) and I've joined the room.", node.AgentID())
	if _, err := node.SendMessage(greeting); err != nil {
		logger.Error("failed to announce", "error", err)
	}
	logger.Info("host running", "room_id", node.RoomID())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	logger.Info("shutting down host")
	if err := node.Leave(); err != nil {
		logger.Error("failed to leave room", "error", err)
	}
}

func pickProvider() (completer, string, error) {
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return newAnthropicCompleter(key, envOr("LLM_MODEL", "claude-sonnet-4-5")), "anthropic", nil
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return newOpenAICompleter(key, envOr("LLM_MODEL", "gpt-4o")), "openai", nil
	}
	return nil, "", fmt.Errorf("set ANTHROPIC_API_KEY or OPENAI_API_KEY")
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
