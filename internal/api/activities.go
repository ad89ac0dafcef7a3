package api

import (
	"context"
	"net/url"
	"time"
)

// Activity is a build or deployment run on the hosting platform.
type Activity struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	State        string    `json:"state"`
	Result       string    `json:"result"`
	Description  string    `json:"description"`
	Environments []string  `json:"environments"`
	CreatedAt    time.Time `json:"created_at"`
	CompletedAt  time.Time `json:"completed_at"`
	Progress     int       `json:"completion_percent"`
}

// Duration is the wall time of a completed activity, or zero while it runs.
func (a Activity) Duration() time.Duration {
	if a.CreatedAt.IsZero() || a.CompletedAt.IsZero() {
		return 0
	}
	return a.CompletedAt.Sub(a.CreatedAt)
}

// Resource selects whose activities are listed.
// An empty Environment lists the whole project.
type Resource struct {
	Project     string
	Environment string
}

// Path is the activities endpoint for the resource.
func (r Resource) Path() string {
	path := "/projects/" + url.PathEscape(r.Project)
	if r.Environment != "" {
		path += "/environments/" + url.PathEscape(r.Environment)
	}
	return path + "/activities"
}

// Filters narrows the activity listing.
type Filters struct {
	Types  []string
	State  string
	Result string
	// Limit caps the number of activities returned. Zero means no cap.
	Limit int
	// Since drops activities created before it.
	Since time.Time
}

func (f Filters) query(cursor time.Time) url.Values {
	q := url.Values{}
	for _, t := range f.Types {
		q.Add("type", t)
	}
	if f.State != "" {
		q.Set("state", f.State)
	}
	if f.Result != "" {
		q.Set("result", f.Result)
	}
	if !cursor.IsZero() {
		q.Set("starts_at", cursor.UTC().Format(time.RFC3339Nano))
	}
	return q
}

// LoadActivities lists activities newest first. Pages are followed using
// the created_at of the last activity as the next starts_at cursor until
// the limit is reached, a page is empty, or Since is passed.
func (c *Client) LoadActivities(ctx context.Context, resource Resource, filters Filters) ([]Activity, error) {
	var (
		activities []Activity
		cursor     time.Time
		seen       = make(map[string]bool)
	)

	for {
		var page []Activity
		if err := c.get(ctx, resource.Path(), filters.query(cursor), &page); err != nil {
			return nil, err
		}

		added := 0
		for _, activity := range page {
			if seen[activity.ID] {
				continue
			}
			seen[activity.ID] = true

			if !filters.Since.IsZero() && activity.CreatedAt.Before(filters.Since) {
				return activities, nil
			}
			activities = append(activities, activity)
			added++

			if filters.Limit > 0 && len(activities) >= filters.Limit {
				return activities, nil
			}
		}

		// An empty page, or one repeating only the cursor item, ends the listing.
		if added == 0 {
			return activities, nil
		}
		cursor = page[len(page)-1].CreatedAt
	}
}
