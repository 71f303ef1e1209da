package kafka

import (
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"samad-backend/internal/config"
	"samad-backend/internal/logger"
)

// EnsureTopicsExist creates the site's topics if they don't already exist.
// Creation failures are logged per topic; a missing topic only breaks the
// optional event stream, not the API.
func EnsureTopicsExist(cfg config.KafkaConfig, log *logger.Logger) error {
	conn, err := kafka.Dial("tcp", cfg.Brokers[0])
	if err != nil {
		return err
	}
	defer conn.Close()

	controller, err := conn.Controller()
	if err != nil {
		return err
	}
	controllerConn, err := kafka.Dial("tcp", fmt.Sprintf("%s:%d", controller.Host, controller.Port))
	if err != nil {
		return err
	}
	defer controllerConn.Close()

	topics := []string{
		cfg.Topics.TicketIssued,
		cfg.Topics.MerchOrderPlaced,
		cfg.Topics.PaymentVerified,
	}

	for _, topic := range topics {
		err = controllerConn.CreateTopics(kafka.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		})
		if err != nil {
			log.Warn("KAFKA", fmt.Sprintf("Could not create topic %s: %v", topic, err))
			continue
		}
		log.Info("KAFKA", fmt.Sprintf("Created topic: %s", topic))
	}

	// Give the cluster a moment to propagate the new topics.
	time.Sleep(1 * time.Second)
	return nil
}
