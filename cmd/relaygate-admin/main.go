// ABOUTME: Admin CLI for relaygate domain allow/block management
// ABOUTME: Talks to the admin HTTP API using the X-Api-Token header

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/relayforge/relaygate/internal/auth"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	host := os.Getenv("RELAYGATE_HOST")
	if host == "" {
		host = "localhost:8080"
	}
	baseURL := "http://" + host

	token, err := getToken()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	c := &client{baseURL: baseURL, token: token}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "allowed":
		err = cmdAllowed(ctx, c)
	case "blocked":
		err = cmdBlocked(ctx, c)
	case "connected":
		err = cmdConnected(ctx, c)
	case "stats":
		err = cmdStats(ctx, c)
	case "allow":
		err = cmdMutate(ctx, c, "/api/v1/admin/allow", args)
	case "disallow":
		err = cmdMutate(ctx, c, "/api/v1/admin/disallow", args)
	case "block":
		err = cmdMutate(ctx, c, "/api/v1/admin/block", args)
	case "unblock":
		err = cmdMutate(ctx, c, "/api/v1/admin/unblock", args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: relaygate-admin <command> [args]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  allowed               List allowlisted domains")
	fmt.Println("  blocked               List blocklisted domains")
	fmt.Println("  connected             List connected instances")
	fmt.Println("  stats                 Show relay stats")
	fmt.Println("  allow DOMAIN...       Add domains to the allowlist")
	fmt.Println("  disallow DOMAIN...    Remove domains from the allowlist")
	fmt.Println("  block DOMAIN...       Add domains to the blocklist")
	fmt.Println("  unblock DOMAIN...     Remove domains from the blocklist")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  RELAYGATE_HOST        Server host:port (default localhost:8080)")
	fmt.Println("  RELAYGATE_API_TOKEN   Admin API token")
}

// getToken reads the admin token from RELAYGATE_API_TOKEN or the token file
// at ~/.config/relaygate/token.
func getToken() (string, error) {
	if token := os.Getenv("RELAYGATE_API_TOKEN"); token != "" {
		return token, nil
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("no RELAYGATE_API_TOKEN and no home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	tokenPath := filepath.Join(configDir, "relaygate", "token")
	data, err := os.ReadFile(tokenPath)
	if err != nil {
		return "", fmt.Errorf("set RELAYGATE_API_TOKEN or write the token to %s", tokenPath)
	}

	return strings.TrimSpace(string(data)), nil
}

type client struct {
	baseURL string
	token   string
}

// do issues a request with the admin token header and decodes the JSON
// response into out. Non-2xx responses surface the server's msg field.
func (c *client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if err := auth.NewXAPIToken(c.token).SetHeader(req.Header); err != nil {
		return fmt.Errorf("encoding token header: %w", err)
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var fail struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(data, &fail); err == nil && fail.Msg != "" {
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, fail.Msg)
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

func cmdAllowed(ctx context.Context, c *client) error {
	var resp struct {
		AllowedDomains []string `json:"allowed_domains"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/admin/allowed", nil, &resp); err != nil {
		return err
	}

	if len(resp.AllowedDomains) == 0 {
		fmt.Println("No allowed domains.")
		return nil
	}
	for _, d := range resp.AllowedDomains {
		color.Green("  %s", d)
	}
	return nil
}

func cmdBlocked(ctx context.Context, c *client) error {
	var resp struct {
		BlockedDomains []string `json:"blocked_domains"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/admin/blocked", nil, &resp); err != nil {
		return err
	}

	if len(resp.BlockedDomains) == 0 {
		fmt.Println("No blocked domains.")
		return nil
	}
	for _, d := range resp.BlockedDomains {
		color.Red("  %s", d)
	}
	return nil
}

func cmdConnected(ctx context.Context, c *client) error {
	var resp struct {
		Connected []struct {
			ActorID     string `json:"actor_id"`
			Domain      string `json:"domain"`
			InboxURL    string `json:"inbox_url"`
			ConnectedAt string `json:"connected_at"`
			LastSeen    string `json:"last_seen"`
		} `json:"connected"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/admin/connected", nil, &resp); err != nil {
		return err
	}

	if len(resp.Connected) == 0 {
		fmt.Println("No connected instances.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DOMAIN\tACTOR\tCONNECTED\tLAST SEEN")
	for _, inst := range resp.Connected {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", inst.Domain, inst.ActorID, inst.ConnectedAt, inst.LastSeen)
	}
	return w.Flush()
}

func cmdStats(ctx context.Context, c *client) error {
	var resp struct {
		AllowedDomains int `json:"allowed_domains"`
		BlockedDomains int `json:"blocked_domains"`
		Connected      int `json:"connected"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/admin/stats", nil, &resp); err != nil {
		return err
	}

	fmt.Printf("Allowed:   %d\n", resp.AllowedDomains)
	fmt.Printf("Blocked:   %d\n", resp.BlockedDomains)
	fmt.Printf("Connected: %d\n", resp.Connected)
	return nil
}

func cmdMutate(ctx context.Context, c *client, path string, domains []string) error {
	if len(domains) == 0 {
		return fmt.Errorf("at least one domain is required")
	}

	body := struct {
		Domains []string `json:"domains"`
	}{Domains: domains}

	var resp struct {
		AllowedDomains int `json:"allowed_domains"`
		BlockedDomains int `json:"blocked_domains"`
		Connected      int `json:"connected"`
	}
	if err := c.do(ctx, http.MethodPost, path, body, &resp); err != nil {
		return err
	}

	color.Green("ok")
	fmt.Printf("Allowed: %d  Blocked: %d  Connected: %d\n",
		resp.AllowedDomains, resp.BlockedDomains, resp.Connected)
	return nil
}
