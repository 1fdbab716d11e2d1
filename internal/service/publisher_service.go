package service

import (
	"context"
	"encoding/json"

	"ai-customer-service-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IPublisherService interface {
	PublishIndexDocument(ctx context.Context, domain, source, content string) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (ps *publisherService) PublishIndexDocument(ctx context.Context, domain, source, content string) error {
	payload, err := json.Marshal(dto.PublishIndexDocumentMessage{
		Domain:  domain,
		Source:  source,
		Content: content,
	})
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	return ps.pubSub.Publish(ps.topicName, msg)
}
