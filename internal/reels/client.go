package reels

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// Creator is the author summary the server attaches to each reel.
type Creator struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	FullName string `json:"full_name"`
}

// Reel is a short-form travel video with its engagement counters.
// IsLiked is client state and never comes from the server.
type Reel struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	VideoURL    string    `json:"videoUrl"`
	Thumbnail   string    `json:"thumbnail"`
	Likes       int       `json:"likes"`
	Comments    int       `json:"comments"`
	Shares      int       `json:"shares"`
	Views       int       `json:"views"`
	Duration    int       `json:"duration"`
	CreatorID   string    `json:"creator_id"`
	Tags        []string  `json:"tags"`
	CreatedAt   Timestamp `json:"created_at"`
	Creator     *Creator  `json:"creator,omitempty"`

	IsLiked bool `json:"-"`
}

type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	Likes     int       `json:"likes"`
	CreatedAt Timestamp `json:"created_at"`
	User      *struct {
		Username string `json:"username"`
		Avatar   string `json:"avatar"`
	} `json:"user,omitempty"`
}

// Details is the payload of the reel details route.
type Details struct {
	Reel
	CommentsList []Comment `json:"comments_list"`
}

// Page is one slice of the server's feed.
type Page struct {
	Reels   []Reel
	Cursor  string
	HasMore bool
}

type feedEnvelope struct {
	Data *struct {
		Reels   []Reel  `json:"reels"`
		Cursor  *string `json:"cursor"`
		HasMore bool    `json:"has_more"`
	} `json:"data"`
}

type detailsEnvelope struct {
	Data *Details `json:"data"`
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
	newID   func() string
}

func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    httpClient,
		newID:   uuid.NewString,
	}
}

// ListReels fetches one page of the feed. A response without data.reels is
// an empty page, not an error.
func (c *Client) ListReels(ctx context.Context, cursor string, limit int) (Page, error) {
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	q := make(url.Values)
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	q.Set("limit", strconv.Itoa(limit))

	var env feedEnvelope
	if err := c.getJSON(ctx, "/reels?"+q.Encode(), "reels", &env); err != nil {
		return Page{}, err
	}

	page := Page{Reels: []Reel{}}
	if env.Data == nil {
		return page, nil
	}
	if env.Data.Reels != nil {
		page.Reels = env.Data.Reels
	}
	if env.Data.Cursor != nil {
		page.Cursor = *env.Data.Cursor
	}
	page.HasMore = env.Data.HasMore && page.Cursor != ""
	return page, nil
}

func (c *Client) GetReel(ctx context.Context, reelID string) (Details, error) {
	if strings.TrimSpace(reelID) == "" {
		return Details{}, fmt.Errorf("reel id is required")
	}

	var env detailsEnvelope
	if err := c.getJSON(ctx, "/reels/"+url.PathEscape(reelID), "reel "+reelID, &env); err != nil {
		return Details{}, err
	}
	if env.Data == nil {
		return Details{}, fmt.Errorf("reel %s: empty response", reelID)
	}
	return *env.Data, nil
}

func (c *Client) getJSON(ctx context.Context, path, resource string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("get %s request failed: %w", resource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("get %s failed with status %d: %s", resource, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", resource, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	fullURL := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", c.newID())
	return req, nil
}
