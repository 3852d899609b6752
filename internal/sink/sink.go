// Package sink forwards poll stream items to a NATS subject.
package sink

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/fivetwenty-io/reapi-client/internal/constants"
	"github.com/fivetwenty-io/reapi-client/pkg/reapi"
)

// Publisher is the subset of *nats.Conn the sink needs.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Sink publishes JSON documents to one subject.
type Sink struct {
	publisher Publisher
	subject   string
	closer    func() error
}

// ErrorMessage is published once when a stream ends with a fetch error.
type ErrorMessage struct {
	Error string `json:"error"`
}

// New creates a sink over an existing publisher.
func New(publisher Publisher, subject string) (*Sink, error) {
	if publisher == nil {
		return nil, constants.ErrSinkNotConnected
	}

	if subject == "" {
		return nil, constants.ErrSubjectRequired
	}

	return &Sink{publisher: publisher, subject: subject}, nil
}

// Connect dials a NATS server and creates a sink publishing to subject.
func Connect(url, subject string) (*Sink, error) {
	if subject == "" {
		return nil, constants.ErrSubjectRequired
	}

	conn, err := nats.Connect(url, nats.Name(reapi.DefaultUserAgent))
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS at %s: %w", url, err)
	}

	return &Sink{publisher: conn, subject: subject, closer: conn.Drain}, nil
}

// Subject returns the subject messages are published to.
func (s *Sink) Subject() string {
	return s.subject
}

// Publish marshals v and publishes it.
func (s *Sink) Publish(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding stream item: %w", err)
	}

	err = s.publisher.Publish(s.subject, data)
	if err != nil {
		return fmt.Errorf("publishing to %s: %w", s.subject, err)
	}

	return nil
}

// Close flushes pending messages and closes the connection, if the sink
// owns one.
func (s *Sink) Close() error {
	if s.closer == nil {
		return nil
	}

	return s.closer()
}

// Forward publishes every item of stream until it ends. A fetch error is
// published as {"error": "..."} and returned. It returns the number of items
// published, not counting the error message.
func Forward[T any](s *Sink, stream reapi.Stream[T]) (int, error) {
	published := 0

	for item, err := range stream.All() {
		if err != nil {
			pubErr := s.Publish(ErrorMessage{Error: err.Error()})
			if pubErr != nil {
				return published, fmt.Errorf("%w (stream failed: %w)", pubErr, err)
			}

			return published, err
		}

		err = s.Publish(item)
		if err != nil {
			return published, err
		}

		published++
	}

	return published, nil
}
