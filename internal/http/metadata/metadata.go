// Package metadata fetches the now-playing feed published by the
// stream CDN and normalizes it for the player frontend.
package metadata

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/willmarzolf/radio-calico/internal/model"
)

const cacheTTL = 30 * time.Second

// Client handles communication with the metadata endpoint. Fetches are
// cached for the feed's publish interval so the /api/now-playing
// handler never hammers the CDN.
type Client struct {
	URL    string
	Client *http.Client

	mu        sync.Mutex
	cached    *model.NowPlaying
	fetchedAt time.Time
}

// NewClient creates a metadata client for the given feed URL.
func NewClient(url string) *Client {
	return &Client{
		URL:    url,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

// feed mirrors the CDN JSON: the current track plus up to five
// previously played title/artist pairs.
type feed struct {
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Album       string `json:"album"`
	PrevTitle1  string `json:"prev_title_1"`
	PrevTitle2  string `json:"prev_title_2"`
	PrevTitle3  string `json:"prev_title_3"`
	PrevTitle4  string `json:"prev_title_4"`
	PrevTitle5  string `json:"prev_title_5"`
	PrevArtist1 string `json:"prev_artist_1"`
	PrevArtist2 string `json:"prev_artist_2"`
	PrevArtist3 string `json:"prev_artist_3"`
	PrevArtist4 string `json:"prev_artist_4"`
	PrevArtist5 string `json:"prev_artist_5"`
}

// NowPlaying returns the current normalized feed, serving a cached
// copy when it is younger than the feed's publish interval.
func (c *Client) NowPlaying(ctx context.Context) (*model.NowPlaying, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != nil && time.Since(c.fetchedAt) < cacheTTL {
		return c.cached, nil
	}

	np, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}

	c.cached = np
	c.fetchedAt = time.Now()
	return np, nil
}

func (c *Client) fetch(ctx context.Context) (*model.NowPlaying, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch metadata: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("metadata endpoint error: status %d", resp.StatusCode)
	}

	var f feed
	if err := json.NewDecoder(resp.Body).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}

	return normalize(&f), nil
}

func normalize(f *feed) *model.NowPlaying {
	np := &model.NowPlaying{
		TrackID:      TrackID(f.Title, f.Artist),
		Title:        orUnknown(f.Title, "Unknown Title"),
		Artist:       orUnknown(f.Artist, "Unknown Artist"),
		Album:        orUnknown(f.Album, "Unknown Album"),
		RecentTracks: []model.RecentTrack{},
	}

	prev := [][2]string{
		{f.PrevTitle1, f.PrevArtist1},
		{f.PrevTitle2, f.PrevArtist2},
		{f.PrevTitle3, f.PrevArtist3},
		{f.PrevTitle4, f.PrevArtist4},
		{f.PrevTitle5, f.PrevArtist5},
	}
	for _, p := range prev {
		if p[0] == "" || p[1] == "" {
			continue
		}
		np.RecentTracks = append(np.RecentTracks, model.RecentTrack{Title: p[0], Artist: p[1]})
	}

	return np
}

func orUnknown(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// TrackID derives the opaque track identifier the player computes:
// base64 of the lowercased "title|artist" pair, stripped of every
// non-alphanumeric character.
func TrackID(title, artist string) string {
	encoded := base64.StdEncoding.EncodeToString([]byte(strings.ToLower(title + "|" + artist)))

	var b strings.Builder
	for _, r := range encoded {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
