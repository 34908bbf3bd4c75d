package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/meshforge/meshlink-server/internal/models"
	"github.com/meshforge/meshlink-server/internal/storage"
	"github.com/meshforge/meshlink-server/pkg/meshproto"
)

// ========== Channel profile handlers ==========

// HandleListProfiles lists the caller's saved channel profiles
func (s *RESTServer) HandleListProfiles(w http.ResponseWriter, r *http.Request) {
	claims := requestClaims(r)
	if claims == nil {
		s.respondError(w, http.StatusUnauthorized, "missing claims")
		return
	}

	limit, offset := parsePagination(r)

	// Admins see everything
	var owner *uuid.UUID
	if !claims.IsAdmin {
		owner = &claims.UserID
	}

	profiles, total, err := s.store.ListChannelProfiles(r.Context(), owner, limit, offset)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"profiles": profiles,
		"total":    total,
	})
}

// HandleCreateProfile saves a named channel-set configuration. The
// stored URL is generated server-side from the config so it is always
// canonical for the payload.
func (s *RESTServer) HandleCreateProfile(w http.ResponseWriter, r *http.Request) {
	claims := requestClaims(r)
	if claims == nil {
		s.respondError(w, http.StatusUnauthorized, "missing claims")
		return
	}

	var req struct {
		Name        string               `json:"name" validate:"required,min=1,max=100"`
		Description string               `json:"description" validate:"max=500"`
		Config      meshproto.ChannelSet `json:"config"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if len(req.Config.Channels) == 0 {
		s.respondError(w, http.StatusBadRequest, "config must contain at least one channel")
		return
	}

	url, err := meshproto.GenerateURL(s.config.Link.BaseURL, &req.Config)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	profile := &models.ChannelProfile{
		OwnerID:     claims.UserID,
		Name:        req.Name,
		Description: req.Description,
		Config:      models.ChannelSetConfig{ChannelSet: req.Config},
		URL:         url,
	}

	if err := s.store.CreateChannelProfile(r.Context(), profile); err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			s.respondError(w, http.StatusConflict, "profile name already in use")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusCreated, profile)
}

// getOwnedProfile loads a profile and checks the caller may touch it
func (s *RESTServer) getOwnedProfile(w http.ResponseWriter, r *http.Request) *models.ChannelProfile {
	claims := requestClaims(r)
	if claims == nil {
		s.respondError(w, http.StatusUnauthorized, "missing claims")
		return nil
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid profile id")
		return nil
	}

	profile, err := s.store.GetChannelProfile(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "profile not found")
			return nil
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return nil
	}

	if profile.OwnerID != claims.UserID && !claims.IsAdmin {
		s.respondError(w, http.StatusForbidden, "not your profile")
		return nil
	}

	return profile
}

// HandleGetProfile gets a channel profile
func (s *RESTServer) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile := s.getOwnedProfile(w, r)
	if profile == nil {
		return
	}

	s.respondJSON(w, http.StatusOK, profile)
}

// HandleUpdateProfile updates a channel profile and re-encodes its URL
func (s *RESTServer) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	profile := s.getOwnedProfile(w, r)
	if profile == nil {
		return
	}

	var req struct {
		Name        string                `json:"name" validate:"max=100"`
		Description *string               `json:"description"`
		Config      *meshproto.ChannelSet `json:"config"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Name != "" {
		profile.Name = req.Name
	}
	if req.Description != nil {
		profile.Description = *req.Description
	}
	if req.Config != nil {
		if len(req.Config.Channels) == 0 {
			s.respondError(w, http.StatusBadRequest, "config must contain at least one channel")
			return
		}
		profile.Config = models.ChannelSetConfig{ChannelSet: *req.Config}
	}

	url, err := meshproto.GenerateURL(s.config.Link.BaseURL, &profile.Config.ChannelSet)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	profile.URL = url

	if err := s.store.UpdateChannelProfile(r.Context(), profile); err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			s.respondError(w, http.StatusConflict, "profile name already in use")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, profile)
}

// HandleDeleteProfile deletes a channel profile
func (s *RESTServer) HandleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	profile := s.getOwnedProfile(w, r)
	if profile == nil {
		return
	}

	if err := s.store.DeleteChannelProfile(r.Context(), profile.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "profile not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusNoContent, nil)
}
