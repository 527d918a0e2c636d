package mocks

import (
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
)

// Publisher records published messages per topic.
type Publisher struct {
	mu       sync.Mutex
	Messages map[string][]*message.Message
	Err      error
}

func NewPublisher() *Publisher {
	return &Publisher{Messages: make(map[string][]*message.Message)}
}

// Publish implements message.Publisher.
func (p *Publisher) Publish(topic string, messages ...*message.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.Messages[topic] = append(p.Messages[topic], messages...)
	return nil
}

// Close implements message.Publisher.
func (p *Publisher) Close() error {
	return nil
}

func (p *Publisher) Topic(topic string) []*message.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Messages[topic]
}
