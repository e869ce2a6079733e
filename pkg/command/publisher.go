package command

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Ignition command tokens understood by the bike firmware.
const (
	CommandBlock = "BLOCK"
	CommandAllow = "ALLOW"
)

const (
	controlTopicFormat = "smarthelmet/%s/control"
	pairTopicFormat    = "smarthelmet/%s/pair"
)

// Publisher sends administrator commands to the per-bike device
// topics. Delivery is fire-and-forget: the device bridge subscribes to
// its bike's topics, there is no acknowledgement and no retry; the
// persisted bike document remains the source of administrative intent.
type Publisher struct {
	client redis.UniversalClient
}

func NewPublisher(client redis.UniversalClient) *Publisher {
	return &Publisher{client: client}
}

// PublishControl sends an ignition command token to the bike's control
// topic.
func (p *Publisher) PublishControl(bikeID, cmd string) error {
	return p.publish(fmt.Sprintf(controlTopicFormat, bikeID), cmd)
}

// PublishPairing sends the helmet identifier to the bike's pairing
// topic.
func (p *Publisher) PublishPairing(bikeID, helmetID string) error {
	return p.publish(fmt.Sprintf(pairTopicFormat, bikeID), helmetID)
}

func (p *Publisher) publish(topic, payload string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := p.client.Publish(ctx, topic, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}
