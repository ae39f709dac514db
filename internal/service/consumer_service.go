package service

import (
	"context"
	"encoding/json"
	"log"

	"rag-assistant-be/internal/dto"
	"rag-assistant-be/internal/repository/memory"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	cache     *memory.SessionCache
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	cache *memory.SessionCache,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		cache:     cache,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload dto.DocumentsIngestedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal ingest message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	// The upload path writes document rows after the cached list may have
	// been served, so any cached copy for this session is stale now.
	cs.cache.InvalidateDocuments(payload.SessionId)

	log.Printf("[INFO] Documents ingested for session %s: %d files, %d chunks",
		payload.SessionId, len(payload.FileNames), payload.Chunks)
	msg.Ack()
}
