// Package calendar pulls upcoming events from the club's published ICS
// feeds.
package calendar

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sort"
	"time"

	ics "github.com/arran4/golang-ical"
	"golang.org/x/time/rate"
)

// Event is one upcoming calendar entry, already filtered and ordered.
type Event struct {
	Title       string
	Location    string
	Description string
	Start       time.Time
	End         time.Time
}

// Client fetches and merges the configured feeds. Fetches are paced so a
// long URL list cannot hammer the calendar host.
type Client struct {
	urls    []string
	http    *http.Client
	limiter *rate.Limiter
	now     func() time.Time
}

func NewClient(urls []string) *Client {
	return &Client{
		urls:    urls,
		http:    &http.Client{Timeout: 15 * time.Second},
		limiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
		now:     time.Now,
	}
}

// Upcoming returns future events across all feeds, soonest first, capped at
// limit. A feed that fails to fetch or parse is logged and skipped; the
// remaining feeds still contribute.
func (c *Client) Upcoming(ctx context.Context, limit int) ([]Event, error) {
	now := c.now()
	var events []Event

	for _, url := range c.urls {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		feed, err := c.fetch(ctx, url)
		if err != nil {
			log.Printf("[WARN] Skipping calendar feed %s: %v", url, err)
			continue
		}
		events = append(events, futureEvents(feed, now)...)
	}

	sort.Slice(events, func(i, j int) bool { return events[i].Start.Before(events[j].Start) })
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

func (c *Client) fetch(ctx context.Context, url string) (*ics.Calendar, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return ics.ParseCalendar(resp.Body)
}

// futureEvents extracts VEVENTs that start after now. Entries without a
// parseable start time are skipped.
func futureEvents(feed *ics.Calendar, now time.Time) []Event {
	var events []Event
	for _, v := range feed.Events() {
		start, err := v.GetStartAt()
		if err != nil || !start.After(now) {
			continue
		}

		e := Event{Start: start}
		if end, err := v.GetEndAt(); err == nil {
			e.End = end
		}
		if p := v.GetProperty(ics.ComponentPropertySummary); p != nil {
			e.Title = p.Value
		}
		if p := v.GetProperty(ics.ComponentPropertyLocation); p != nil {
			e.Location = p.Value
		}
		if p := v.GetProperty(ics.ComponentPropertyDescription); p != nil {
			e.Description = p.Value
		}
		events = append(events, e)
	}
	return events
}
