package wordpress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var errNotFound = errors.New("wordpress: not found")

// Client is a read-only consumer of the WordPress REST API (wp/v2) plus The
// Events Calendar endpoints (tribe/events/v1). Responses are flattened into
// app-shaped payloads before they leave this package.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// ---------- transformed payloads ----------

type PostCategory struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Post struct {
	ID            int            `json:"id"`
	Title         string         `json:"title"`
	Excerpt       string         `json:"excerpt"`
	Content       string         `json:"content"`
	Date          string         `json:"date"`
	Modified      string         `json:"modified"`
	Slug          string         `json:"slug"`
	FeaturedImage string         `json:"featuredImage,omitempty"`
	Categories    []PostCategory `json:"categories"`
	Author        string         `json:"author"`
	IsLocked      bool           `json:"isLocked,omitempty"`
}

type PostList struct {
	Posts      []Post `json:"posts"`
	Total      int    `json:"total"`
	TotalPages int    `json:"totalPages"`
}

type Category struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

type Event struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Venue       string `json:"venue"`
	Image       string `json:"image,omitempty"`
}

type EventList struct {
	Events     []Event `json:"events"`
	Total      int     `json:"total"`
	TotalPages int     `json:"totalPages"`
}

// ---------- raw WordPress shapes ----------

type rendered struct {
	Rendered string `json:"rendered"`
}

type rawPost struct {
	ID       int      `json:"id"`
	Date     string   `json:"date"`
	Modified string   `json:"modified"`
	Slug     string   `json:"slug"`
	Title    rendered `json:"title"`
	Excerpt  rendered `json:"excerpt"`
	Content  rendered `json:"content"`
	Embedded struct {
		FeaturedMedia []struct {
			SourceURL string `json:"source_url"`
		} `json:"wp:featuredmedia"`
		Terms [][]struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"wp:term"`
		Author []struct {
			Name string `json:"name"`
		} `json:"author"`
	} `json:"_embedded"`
}

type rawEvent struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Venue       struct {
		Venue string `json:"venue"`
	} `json:"venue"`
	Image struct {
		URL string `json:"url"`
	} `json:"image"`
}

// ---------- operations ----------

func (c *Client) GetPosts(ctx context.Context, page, perPage int, category string) (*PostList, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("_embed", "true")
	if category != "" {
		q.Set("categories", category)
	}

	var raw []rawPost
	header, err := c.getJSON(ctx, c.baseURL+"/posts?"+q.Encode(), &raw)
	if err != nil {
		return nil, err
	}

	list := &PostList{Posts: make([]Post, 0, len(raw))}
	for i := range raw {
		list.Posts = append(list.Posts, transformPost(&raw[i]))
	}
	list.Total, _ = strconv.Atoi(header.Get("X-WP-Total"))
	list.TotalPages, _ = strconv.Atoi(header.Get("X-WP-TotalPages"))
	return list, nil
}

// GetPost fetches a single post by numeric id, or by slug otherwise.
// A missing post yields (nil, nil).
func (c *Client) GetPost(ctx context.Context, idOrSlug string) (*Post, error) {
	if _, err := strconv.Atoi(idOrSlug); err == nil {
		var raw rawPost
		if _, err := c.getJSON(ctx, c.baseURL+"/posts/"+idOrSlug+"?_embed=true", &raw); err != nil {
			if errors.Is(err, errNotFound) {
				return nil, nil
			}
			return nil, err
		}
		p := transformPost(&raw)
		return &p, nil
	}

	var raw []rawPost
	if _, err := c.getJSON(ctx, c.baseURL+"/posts?_embed=true&slug="+url.QueryEscape(idOrSlug), &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	p := transformPost(&raw[0])
	return &p, nil
}

func (c *Client) GetCategories(ctx context.Context) ([]Category, error) {
	var raw []struct {
		ID    int    `json:"id"`
		Name  string `json:"name"`
		Slug  string `json:"slug"`
		Count int    `json:"count"`
	}
	if _, err := c.getJSON(ctx, c.baseURL+"/categories?per_page=100", &raw); err != nil {
		return nil, err
	}

	out := make([]Category, 0, len(raw))
	for _, cat := range raw {
		out = append(out, Category{ID: cat.ID, Name: cat.Name, Slug: cat.Slug, Count: cat.Count})
	}
	return out, nil
}

// GetEvents degrades to an empty list when the events plugin is unreachable,
// since not every WordPress install carries it.
func (c *Client) GetEvents(ctx context.Context, page, perPage int) *EventList {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))

	eventsBase := strings.Replace(c.baseURL, "/wp/v2", "/tribe/events/v1", 1)

	var raw struct {
		Events     []rawEvent `json:"events"`
		Total      int        `json:"total"`
		TotalPages int        `json:"total_pages"`
	}
	if _, err := c.getJSON(ctx, eventsBase+"/events?"+q.Encode(), &raw); err != nil {
		return &EventList{Events: []Event{}}
	}

	list := &EventList{
		Events:     make([]Event, 0, len(raw.Events)),
		Total:      raw.Total,
		TotalPages: raw.TotalPages,
	}
	for _, ev := range raw.Events {
		list.Events = append(list.Events, Event{
			ID:          ev.ID,
			Title:       ev.Title,
			Description: StripHTML(ev.Description),
			StartDate:   ev.StartDate,
			EndDate:     ev.EndDate,
			Venue:       ev.Venue.Venue,
			Image:       ev.Image.URL,
		})
	}
	return list
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) (http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build wordpress request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wordpress request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wordpress returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return nil, fmt.Errorf("failed to decode wordpress response: %w", err)
	}
	return resp.Header, nil
}

// ---------- transforms ----------

func transformPost(raw *rawPost) Post {
	p := Post{
		ID:         raw.ID,
		Title:      raw.Title.Rendered,
		Excerpt:    StripHTML(raw.Excerpt.Rendered),
		Content:    raw.Content.Rendered,
		Date:       raw.Date,
		Modified:   raw.Modified,
		Slug:       raw.Slug,
		Author:     "VSSCT",
		Categories: []PostCategory{},
	}
	if len(raw.Embedded.FeaturedMedia) > 0 {
		p.FeaturedImage = raw.Embedded.FeaturedMedia[0].SourceURL
	}
	if len(raw.Embedded.Terms) > 0 {
		for _, t := range raw.Embedded.Terms[0] {
			p.Categories = append(p.Categories, PostCategory{ID: t.ID, Name: t.Name})
		}
	}
	if len(raw.Embedded.Author) > 0 && raw.Embedded.Author[0].Name != "" {
		p.Author = raw.Embedded.Author[0].Name
	}
	return p
}

var (
	tagRe    = regexp.MustCompile(`<[^>]*>`)
	entityRe = regexp.MustCompile(`&[^;]+;`)
)

// StripHTML reduces rendered markup to plain text for excerpts.
func StripHTML(html string) string {
	s := tagRe.ReplaceAllString(html, "")
	s = entityRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
