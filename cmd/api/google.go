package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"
	docs "google.golang.org/api/docs/v1"
	drive "google.golang.org/api/drive/v3"
	gmailapi "google.golang.org/api/gmail/v1"
)

// googleScopes is the full Workspace surface the assistant drives. One OAuth
// consent covers all four APIs.
var googleScopes = []string{
	calendar.CalendarScope,
	gmailapi.GmailModifyScope,
	docs.DocumentsScope,
	drive.DriveScope,
}

// newGoogleHTTPClient builds one authenticated HTTP client shared by the
// Calendar, Gmail, Docs, and Drive services. Service Account credentials are
// tried first; OAuth Desktop credentials fall back to a stored token file.
func newGoogleHTTPClient(ctx context.Context, credentialsPath, tokenPath string) (*http.Client, error) {
	credentialsJSON, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	if config, jwtErr := google.JWTConfigFromJSON(credentialsJSON, googleScopes...); jwtErr == nil {
		return oauth2.NewClient(ctx, config.TokenSource(ctx)), nil
	}

	var oauthCreds struct {
		Installed struct {
			ClientID     string   `json:"client_id"`
			ClientSecret string   `json:"client_secret"`
			RedirectURIs []string `json:"redirect_uris"`
		} `json:"installed"`
	}
	if jsonErr := json.Unmarshal(credentialsJSON, &oauthCreds); jsonErr != nil {
		return nil, fmt.Errorf("unsupported credentials format: %w", jsonErr)
	}

	oauthConfig := &oauth2.Config{
		ClientID:     oauthCreds.Installed.ClientID,
		ClientSecret: oauthCreds.Installed.ClientSecret,
		Scopes:       googleScopes,
		Endpoint:     google.Endpoint,
	}

	tokenData, tokenErr := os.ReadFile(tokenPath)
	if tokenErr != nil {
		return nil, fmt.Errorf("google credentials are OAuth Desktop type but %s not found: run scripts/gcal-auth to generate it", tokenPath)
	}

	var tok oauth2.Token
	if jsonErr := json.Unmarshal(tokenData, &tok); jsonErr != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", tokenPath, jsonErr)
	}

	return oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, &tok)), nil
}
