// ABOUTME: HTTP handlers for relaygate's admin API and health endpoint
// ABOUTME: Handlers reach the store only through the guard's Admin capability

package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/relayforge/relaygate/internal/auth"
)

// maxBodySize caps admin request bodies; domain lists are tiny.
const maxBodySize = 1 << 20

// DomainsRequest is the JSON request body for allow/disallow/block/unblock.
type DomainsRequest struct {
	Domains []string `json:"domains"`
}

// AllowedDomainsResponse is the JSON response for allowlist reads and writes.
type AllowedDomainsResponse struct {
	AllowedDomains []string `json:"allowed_domains"`
}

// BlockedDomainsResponse is the JSON response for blocklist reads and writes.
type BlockedDomainsResponse struct {
	BlockedDomains []string `json:"blocked_domains"`
}

// InstanceResponse is the JSON shape of one connected instance.
type InstanceResponse struct {
	ActorID     string `json:"actor_id"`
	Domain      string `json:"domain"`
	InboxURL    string `json:"inbox_url"`
	ConnectedAt string `json:"connected_at"`
	LastSeen    string `json:"last_seen"`
}

// ConnectedResponse is the JSON response for GET /api/v1/admin/connected.
type ConnectedResponse struct {
	Connected []InstanceResponse `json:"connected"`
}

// StatsResponse is the JSON response for GET /api/v1/admin/stats.
type StatsResponse struct {
	AllowedDomains int `json:"allowed_domains"`
	BlockedDomains int `json:"blocked_domains"`
	Connected      int `json:"connected"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeMsg writes the same {"msg": ...} failure shape the guard uses.
func writeMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"msg": msg})
}

func decodeDomains(w http.ResponseWriter, r *http.Request) (*DomainsRequest, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "reading request body")
		return nil, false
	}

	var req DomainsRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid JSON body")
		return nil, false
	}

	if len(req.Domains) == 0 {
		writeMsg(w, http.StatusBadRequest, "domains list is empty")
		return nil, false
	}
	for _, d := range req.Domains {
		if d == "" {
			writeMsg(w, http.StatusBadRequest, "domains list contains an empty domain")
			return nil, false
		}
	}

	return &req, true
}

// handleHealth handles GET /health (no auth).
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMsg(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleListAllowed handles GET /api/v1/admin/allowed.
func (s *Server) handleListAllowed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMsg(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	admin := auth.MustAdminFrom(r.Context())
	domains, err := admin.Store().ListAllowed(r.Context())
	if err != nil {
		s.logger.Error("listing allowed domains", "error", err)
		writeMsg(w, http.StatusInternalServerError, "listing allowed domains")
		return
	}

	writeJSON(w, http.StatusOK, AllowedDomainsResponse{AllowedDomains: domains})
}

// handleAllow handles POST /api/v1/admin/allow.
func (s *Server) handleAllow(w http.ResponseWriter, r *http.Request) {
	s.mutateDomains(w, r, "allowing domain", func(r *http.Request, admin *auth.Admin, domain string) error {
		return admin.Store().AllowDomain(r.Context(), domain)
	})
}

// handleDisallow handles POST /api/v1/admin/disallow.
func (s *Server) handleDisallow(w http.ResponseWriter, r *http.Request) {
	s.mutateDomains(w, r, "disallowing domain", func(r *http.Request, admin *auth.Admin, domain string) error {
		return admin.Store().DisallowDomain(r.Context(), domain)
	})
}

// handleListBlocked handles GET /api/v1/admin/blocked.
func (s *Server) handleListBlocked(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMsg(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	admin := auth.MustAdminFrom(r.Context())
	domains, err := admin.Store().ListBlocked(r.Context())
	if err != nil {
		s.logger.Error("listing blocked domains", "error", err)
		writeMsg(w, http.StatusInternalServerError, "listing blocked domains")
		return
	}

	writeJSON(w, http.StatusOK, BlockedDomainsResponse{BlockedDomains: domains})
}

// handleBlock handles POST /api/v1/admin/block.
func (s *Server) handleBlock(w http.ResponseWriter, r *http.Request) {
	s.mutateDomains(w, r, "blocking domain", func(r *http.Request, admin *auth.Admin, domain string) error {
		return admin.Store().BlockDomain(r.Context(), domain)
	})
}

// handleUnblock handles POST /api/v1/admin/unblock.
func (s *Server) handleUnblock(w http.ResponseWriter, r *http.Request) {
	s.mutateDomains(w, r, "unblocking domain", func(r *http.Request, admin *auth.Admin, domain string) error {
		return admin.Store().UnblockDomain(r.Context(), domain)
	})
}

// mutateDomains is the shared POST body for the four list mutations. It
// applies op to each domain and responds with the refreshed stats so CLI
// callers see the effect immediately.
func (s *Server) mutateDomains(w http.ResponseWriter, r *http.Request, action string, op func(*http.Request, *auth.Admin, string) error) {
	if r.Method != http.MethodPost {
		writeMsg(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	req, ok := decodeDomains(w, r)
	if !ok {
		return
	}

	admin := auth.MustAdminFrom(r.Context())
	for _, domain := range req.Domains {
		if err := op(r, admin, domain); err != nil {
			s.logger.Error(action, "domain", domain, "error", err)
			writeMsg(w, http.StatusInternalServerError, fmt.Sprintf("%s %s", action, domain))
			return
		}
	}

	stats, err := admin.Store().Stats(r.Context())
	if err != nil {
		s.logger.Error("reading stats", "error", err)
		writeMsg(w, http.StatusInternalServerError, "reading stats")
		return
	}

	writeJSON(w, http.StatusOK, StatsResponse{
		AllowedDomains: stats.AllowedDomains,
		BlockedDomains: stats.BlockedDomains,
		Connected:      stats.Connected,
	})
}

// handleConnected handles GET /api/v1/admin/connected.
func (s *Server) handleConnected(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMsg(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	admin := auth.MustAdminFrom(r.Context())
	instances, err := admin.Store().ListInstances(r.Context())
	if err != nil {
		s.logger.Error("listing instances", "error", err)
		writeMsg(w, http.StatusInternalServerError, "listing connected instances")
		return
	}

	resp := ConnectedResponse{Connected: make([]InstanceResponse, 0, len(instances))}
	for _, inst := range instances {
		resp.Connected = append(resp.Connected, InstanceResponse{
			ActorID:     inst.ActorID,
			Domain:      inst.Domain,
			InboxURL:    inst.InboxURL,
			ConnectedAt: inst.ConnectedAt.UTC().Format(time.RFC3339),
			LastSeen:    inst.LastSeen.UTC().Format(time.RFC3339),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleStats handles GET /api/v1/admin/stats.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMsg(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	admin := auth.MustAdminFrom(r.Context())
	stats, err := admin.Store().Stats(r.Context())
	if err != nil {
		s.logger.Error("reading stats", "error", err)
		writeMsg(w, http.StatusInternalServerError, "reading stats")
		return
	}

	writeJSON(w, http.StatusOK, StatsResponse{
		AllowedDomains: stats.AllowedDomains,
		BlockedDomains: stats.BlockedDomains,
		Connected:      stats.Connected,
	})
}
