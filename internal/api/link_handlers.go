package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/meshforge/meshlink-server/pkg/meshproto"
)

// ========== Link handlers ==========

// HandleNetworkLink returns the deep link for the default public
// network channel
func (s *RESTServer) HandleNetworkLink(w http.ResponseWriter, r *http.Request) {
	url, err := meshproto.GenerateNetworkURL(s.config.Link.BaseURL)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"url": url})
}

// HandlePrivateLink generates a private channel with a fresh 256-bit
// PSK. The key is returned once, alongside the link, for out-of-band
// backup; it is not stored.
func (s *RESTServer) HandlePrivateLink(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name" validate:"max=30"`
	}

	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	pc, err := meshproto.GeneratePrivateChannelURL(s.config.Link.BaseURL, req.Name)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Info().Str("name", req.Name).Msg("Private channel generated")

	s.respondJSON(w, http.StatusOK, pc)
}

// HandleEncodeLink serializes a caller-supplied channel set into a
// shareable deep link
func (s *RESTServer) HandleEncodeLink(w http.ResponseWriter, r *http.Request) {
	var cs meshproto.ChannelSet

	if err := json.NewDecoder(r.Body).Decode(&cs); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if len(cs.Channels) == 0 {
		s.respondError(w, http.StatusBadRequest, "at least one channel is required")
		return
	}

	payload, err := meshproto.BuildChannelSetBytes(&cs)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"url":          s.config.Link.BaseURL + "#" + meshproto.ToBase64URL(payload),
		"payloadBytes": len(payload),
	})
}

// HandleDecodeLink parses a deep link (or bare fragment) back into a
// channel set
func (s *RESTServer) HandleDecodeLink(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	cs, err := meshproto.DecodeURL(req.URL)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, meshproto.ErrTruncated) {
			status = http.StatusUnprocessableEntity
		}
		s.respondError(w, status, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, cs)
}
