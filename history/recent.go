package history

import (
	"encoding/json"
	"os"
	"time"
)

// Visit is one entry in the flat recency list.
type Visit struct {
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	VisitedAt time.Time `json:"visited_at"`
}

// Recents is a small JSON-backed list of the most recently visited
// URLs, newest first, with no duplicates. It trades the durable
// store's search and retention machinery for a file that can be read
// at a glance.
type Recents struct {
	path   string
	limit  int
	Visits []Visit `json:"visits"`
}

// LoadRecents reads the recency list from path, returning an empty
// list if the file doesn't exist yet. At most limit entries are kept.
func LoadRecents(path string, limit int) (*Recents, error) {
	r := &Recents{path: path, limit: limit}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return r, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, r); err != nil {
		return nil, err
	}
	if limit > 0 && len(r.Visits) > limit {
		r.Visits = r.Visits[:limit]
	}
	return r, nil
}

// Save writes the list to disk.
func (r *Recents) Save() error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, data, 0644)
}

// Add records a visit at the front of the list. A URL already present
// is moved to the front rather than listed twice, and the list is
// trimmed to its limit.
func (r *Recents) Add(url, title string) {
	for i, v := range r.Visits {
		if v.URL == url {
			r.Visits = append(r.Visits[:i], r.Visits[i+1:]...)
			break
		}
	}

	r.Visits = append([]Visit{{URL: url, Title: title, VisitedAt: time.Now()}}, r.Visits...)
	if r.limit > 0 && len(r.Visits) > r.limit {
		r.Visits = r.Visits[:r.limit]
	}
}

// Len returns the number of recorded visits.
func (r *Recents) Len() int {
	return len(r.Visits)
}
