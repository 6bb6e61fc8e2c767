// Package burst flags coordinated reply activity: groups of distinct
// accounts answering the same post within a short window. A single account
// spamming a thread is not a burst, and a slow pile-on over hours is not
// either.
package burst

import (
	"math"
	"sort"
	"time"

	"observatory/internal/config"
)

// minEvents is the corpus floor below which burst statistics are noise.
const minEvents = 100

// Event is one comment placed on a post.
type Event struct {
	PostID string
	Author string
	At     time.Time
}

// Burst is one detected coordinated window on a post.
type Burst struct {
	PostID        string    `json:"post_id"`
	Start         time.Time `json:"start"`
	Size          int       `json:"size"`
	UniqueAuthors int       `json:"unique_authors"`
	Authors       []string  `json:"authors"`
}

// AccountStats summarizes one account's burst participation.
type AccountStats struct {
	BurstCount   int     `json:"burst_count"`
	MaxBurstSize int     `json:"max_burst_size"`
	Score        float64 `json:"burst_score"`
}

// Report is the full detection outcome.
type Report struct {
	Bursts   []Burst                 `json:"bursts"`
	Accounts map[string]AccountStats `json:"accounts"`
}

// Detector scans comment streams for coordinated windows.
type Detector struct {
	th config.Thresholds
}

// NewDetector creates a burst detector.
func NewDetector(th config.Thresholds) *Detector {
	return &Detector{th: th}
}

// Detect finds bursts across all posts. ok is false when the corpus is too
// small to distinguish coordination from chance.
func (d *Detector) Detect(events []Event) (*Report, bool) {
	if len(events) < minEvents {
		return nil, false
	}

	window := time.Duration(d.th.BurstWindowSecs) * time.Second
	minSize := d.th.BurstMinSize

	byPost := make(map[string][]Event)
	for _, e := range events {
		byPost[e.PostID] = append(byPost[e.PostID], e)
	}

	postIDs := make([]string, 0, len(byPost))
	for id := range byPost {
		postIDs = append(postIDs, id)
	}
	sort.Strings(postIDs)

	var kept []Burst
	for _, postID := range postIDs {
		comments := byPost[postID]
		if len(comments) < minSize {
			continue
		}
		sort.Slice(comments, func(i, j int) bool { return comments[i].At.Before(comments[j].At) })

		for i, start := range comments {
			end := start.At.Add(window)

			authors := make(map[string]bool)
			size := 0
			for _, c := range comments[i:] {
				if c.At.After(end) {
					break
				}
				size++
				authors[c.Author] = true
			}
			if size < minSize || float64(len(authors)) < float64(minSize)*0.5 {
				continue
			}
			// Collapse windows starting within one window length of a
			// burst already kept on the same post.
			if overlapsKept(kept, postID, start.At, window) {
				continue
			}
			kept = append(kept, Burst{
				PostID:        postID,
				Start:         start.At,
				Size:          size,
				UniqueAuthors: len(authors),
				Authors:       sortedKeys(authors),
			})
		}
	}

	report := &Report{Bursts: kept, Accounts: make(map[string]AccountStats)}
	for _, b := range kept {
		for _, author := range b.Authors {
			s := report.Accounts[author]
			s.BurstCount++
			if b.Size > s.MaxBurstSize {
				s.MaxBurstSize = b.Size
			}
			report.Accounts[author] = s
		}
	}
	for author, s := range report.Accounts {
		raw := 0.1*float64(s.BurstCount) + 0.02*float64(s.MaxBurstSize)
		s.Score = math.Round(math.Min(1, raw)*10000) / 10000
		report.Accounts[author] = s
	}
	return report, true
}

func overlapsKept(kept []Burst, postID string, start time.Time, window time.Duration) bool {
	for _, b := range kept {
		if b.PostID != postID {
			continue
		}
		gap := start.Sub(b.Start)
		if gap < 0 {
			gap = -gap
		}
		if gap < window {
			return true
		}
	}
	return false
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
