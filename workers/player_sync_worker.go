package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pool-league-system/models"
)

// PlayerSyncClient mirrors player identity, fargo ratings and robustness from
// the profile service. Those fields are owned there; this service never
// writes them outside this worker.
type PlayerSyncClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	DB         *gorm.DB
}

func NewPlayerSyncClient(db *gorm.DB) *PlayerSyncClient {
	baseURL := os.Getenv("PROFILE_SERVICE_URL")
	if baseURL == "" {
		log.Fatal("PROFILE_SERVICE_URL environment variable is required")
	}
	token := os.Getenv("LEAGUE_SERVICE_TOKEN")
	if token == "" {
		log.Fatal("LEAGUE_SERVICE_TOKEN environment variable is required for player sync")
	}

	return &PlayerSyncClient{
		BaseURL: baseURL,
		Token:   token,
		DB:      db,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type RemotePlayer struct {
	ExternalUserID string   `json:"external_user_id"`
	DisplayName    string   `json:"display_name"`
	AvatarURL      *string  `json:"avatar_url,omitempty"`
	Bio            *string  `json:"bio,omitempty"`
	Location       *string  `json:"location,omitempty"`
	FargoRating    *float64 `json:"fargo_rating,omitempty"`
	Robustness     *float64 `json:"robustness,omitempty"`
}

// GetChangedPlayers fetches profiles updated since the given time.
func (c *PlayerSyncClient) GetChangedPlayers(ctx context.Context, since time.Time) ([]RemotePlayer, error) {
	u, err := url.Parse(fmt.Sprintf("%s/api/v1/public/players", c.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("since", since.UTC().Format(time.RFC3339))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Service-Token", c.Token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call profile service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("profile service returned status %d: %s", resp.StatusCode, string(body))
	}

	var response struct {
		Players []RemotePlayer `json:"players"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode profile service response: %w", err)
	}
	return response.Players, nil
}

// PollPlayers upserts changed profiles on a fixed interval until ctx ends.
// notify is called after a successful batch so clients re-fetch rankings.
func PollPlayers(ctx context.Context, client *PlayerSyncClient, pollInterval time.Duration, notify func()) {
	log.Println("Starting player profile polling...")
	lastSyncTime := time.Now().UTC().Add(-24 * time.Hour)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Player polling stopped.")
			return
		case <-ticker.C:
			tickTime := time.Now().UTC()

			changed, err := client.GetChangedPlayers(ctx, lastSyncTime)
			if err != nil {
				log.Printf("❌ Error polling players: %v", err)
				continue
			}
			if len(changed) == 0 {
				continue
			}

			players := make([]models.Player, 0, len(changed))
			for _, p := range changed {
				players = append(players, models.Player{
					ExternalUserID: p.ExternalUserID,
					DisplayName:    p.DisplayName,
					AvatarURL:      p.AvatarURL,
					Bio:            p.Bio,
					Location:       p.Location,
					FargoRating:    p.FargoRating,
					Robustness:     p.Robustness,
				})
			}

			if err := client.DB.Clauses(
				clause.OnConflict{
					Columns: []clause.Column{{Name: "external_user_id"}},
					DoUpdates: clause.AssignmentColumns([]string{
						"display_name",
						"bio",
						"location",
						"fargo_rating",
						"robustness",
						"updated_at",
					}),
				},
			).Create(&players).Error; err != nil {
				log.Printf("❌ Failed to upsert %d player(s): %v", len(players), err)
				// lastSyncTime stays put — retry the same window next tick
				continue
			}

			lastSyncTime = tickTime
			log.Printf("✅ Upserted %d player profile(s).", len(players))
			if notify != nil {
				notify()
			}
		}
	}
}
