package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/meshforge/meshlink-server/internal/config"
	"github.com/meshforge/meshlink-server/pkg/meshproto"
)

// Subjects served and published by the encode worker
const (
	SubjectEncode    = "meshlink.encode"
	SubjectNetwork   = "meshlink.network"
	SubjectPrivate   = "meshlink.private"
	SubjectGenerated = "meshlink.generated"
)

// NATSSubscriber serves channel-link requests over NATS request/reply
// and publishes an event for every link it generates
type NATSSubscriber struct {
	nc   *nats.Conn
	link *config.LinkConfig
	subs []*nats.Subscription
}

// NewNATSSubscriber creates a NATS subscriber
func NewNATSSubscriber(nc *nats.Conn, link *config.LinkConfig) *NATSSubscriber {
	return &NATSSubscriber{
		nc:   nc,
		link: link,
		subs: make([]*nats.Subscription, 0),
	}
}

// Start starts subscriptions and blocks until the context is done
func (s *NATSSubscriber) Start(ctx context.Context) error {
	sub1, err := s.nc.Subscribe(SubjectEncode, s.handleEncode)
	if err != nil {
		return fmt.Errorf("subscribe encode: %w", err)
	}
	s.subs = append(s.subs, sub1)

	sub2, err := s.nc.Subscribe(SubjectNetwork, s.handleNetwork)
	if err != nil {
		return fmt.Errorf("subscribe network: %w", err)
	}
	s.subs = append(s.subs, sub2)

	sub3, err := s.nc.Subscribe(SubjectPrivate, s.handlePrivate)
	if err != nil {
		return fmt.Errorf("subscribe private: %w", err)
	}
	s.subs = append(s.subs, sub3)

	log.Info().
		Int("subscriptions", len(s.subs)).
		Msg("NATS subscriber started")

	<-ctx.Done()

	for _, sub := range s.subs {
		sub.Unsubscribe()
	}

	return ctx.Err()
}

// reply sends a JSON reply and swallows marshal errors into logs;
// request/reply callers only ever see a well-formed message
func (s *NATSSubscriber) reply(msg *nats.Msg, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("subject", msg.Subject).Msg("Failed to marshal reply")
		return
	}
	if err := msg.Respond(data); err != nil {
		log.Error().Err(err).Str("subject", msg.Subject).Msg("Failed to respond")
	}
}

func (s *NATSSubscriber) replyError(msg *nats.Msg, err error) {
	s.reply(msg, map[string]string{"error": err.Error()})
}

// publishGenerated announces a freshly generated link. The private
// PSK is never included in the event.
func (s *NATSSubscriber) publishGenerated(kind, url string) {
	data, _ := json.Marshal(map[string]string{
		"kind": kind,
		"url":  url,
	})
	if err := s.nc.Publish(SubjectGenerated, data); err != nil {
		log.Error().Err(err).Msg("Failed to publish generated event")
	}
}

// handleEncode serializes a channel set from the request into a link
func (s *NATSSubscriber) handleEncode(msg *nats.Msg) {
	log.Debug().
		Str("subject", msg.Subject).
		Int("size", len(msg.Data)).
		Msg("Received encode request")

	var cs meshproto.ChannelSet
	if err := json.Unmarshal(msg.Data, &cs); err != nil {
		s.replyError(msg, fmt.Errorf("unmarshal channel set: %w", err))
		return
	}

	if len(cs.Channels) == 0 {
		s.replyError(msg, fmt.Errorf("at least one channel is required"))
		return
	}

	url, err := meshproto.GenerateURL(s.link.BaseURL, &cs)
	if err != nil {
		s.replyError(msg, err)
		return
	}

	s.reply(msg, map[string]string{"url": url})
	s.publishGenerated("custom", url)

	log.Info().
		Int("channels", len(cs.Channels)).
		Msg("Channel set encoded")
}

// handleNetwork returns the default public network link
func (s *NATSSubscriber) handleNetwork(msg *nats.Msg) {
	url, err := meshproto.GenerateNetworkURL(s.link.BaseURL)
	if err != nil {
		s.replyError(msg, err)
		return
	}

	s.reply(msg, map[string]string{"url": url})
	s.publishGenerated("network", url)
}

// handlePrivate generates a private channel and returns link plus key
func (s *NATSSubscriber) handlePrivate(msg *nats.Msg) {
	var req struct {
		Name string `json:"name"`
	}
	if len(msg.Data) > 0 {
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			s.replyError(msg, fmt.Errorf("unmarshal private request: %w", err))
			return
		}
	}

	pc, err := meshproto.GeneratePrivateChannelURL(s.link.BaseURL, req.Name)
	if err != nil {
		s.replyError(msg, err)
		return
	}

	s.reply(msg, pc)
	s.publishGenerated("private", pc.URL)

	log.Info().Str("name", req.Name).Msg("Private channel generated over NATS")
}
