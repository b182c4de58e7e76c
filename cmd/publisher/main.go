package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"blinds-orders/internal/configs"
	"blinds-orders/internal/delivery/kafka"
	"blinds-orders/internal/models"
)

// publisher sends the status commands in COMMAND_FILE_PATH to the command
// topic. The file holds one command object or an array of them; anything
// else is sent as is, which is handy for exercising the dead-letter path.
func main() {
	cfg, err := configs.LoadConfig(".env")
	if err != nil {
		logrus.Fatalf("error loading config: %s", err)
	}
	logrus.Print("config loaded")

	brokers := cfg.KafkaBrokersSlice()
	if len(brokers) == 0 {
		logrus.Fatal("KAFKA_BROKERS is empty")
	}
	pub := kafka.NewCommandPublisher(brokers, cfg.KafkaCommandTopic)
	defer func() {
		if cerr := pub.Close(); cerr != nil {
			logrus.Errorf("publisher close: %v", cerr)
		}
	}()

	body, err := os.ReadFile(cfg.CommandFilePath)
	if err != nil {
		logrus.Fatalf("read command file: %s", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmds, ok := decodeCommands(body)
	if !ok {
		if err := pub.PublishRaw(ctx, "", body); err != nil {
			logrus.Fatalf("publish failed: %s", err)
		}
		logrus.Warn("command file did not decode, published raw payload")
		return
	}
	for _, cmd := range cmds {
		if err := pub.Publish(ctx, cmd); err != nil {
			logrus.Fatalf("publish failed: %s", err)
		}
		logrus.WithFields(logrus.Fields{
			"order_id": cmd.OrderID,
			"action":   cmd.Action,
			"status":   cmd.Status,
			"expected": cmd.ExpectedStatus,
		}).Print("status command published")
	}
}

func decodeCommands(body []byte) ([]models.StatusCommand, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var cmds []models.StatusCommand
		if err := json.Unmarshal(trimmed, &cmds); err != nil {
			return nil, false
		}
		return cmds, true
	}
	var cmd models.StatusCommand
	if err := json.Unmarshal(trimmed, &cmd); err != nil {
		return nil, false
	}
	return []models.StatusCommand{cmd}, true
}
