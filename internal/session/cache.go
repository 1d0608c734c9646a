package session

import (
	"sync"

	"github.com/dmarkovs/codetutor/internal/api"
)

// Cache is a read-only mirror of the latest successful profile, stats and
// snippet fetches. It tolerates partial population: readers get zero values
// or the documented defaults for anything that was never fetched, so the
// dashboard can render without blocking.
type Cache struct {
	mu       sync.RWMutex
	profile  *api.UserProfile
	stats    *api.DashboardStats
	snippets []api.Snippet
}

func NewCache() *Cache {
	return &Cache{}
}

// Clear drops everything. Called on logout and before a new session's data
// is fetched so a prior user's numbers never flash under a new dashboard.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profile = nil
	c.stats = nil
	c.snippets = nil
}

func (c *Cache) SetProfile(p *api.UserProfile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profile = p
}

func (c *Cache) SetStats(s *api.DashboardStats) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats = s
}

func (c *Cache) SetSnippets(list []api.Snippet) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snippets = list
}

// Profile returns a copy of the cached profile and whether one is present.
func (c *Cache) Profile() (api.UserProfile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.profile == nil {
		return api.UserProfile{}, false
	}
	return *c.profile, true
}

// Stats returns a copy of the cached dashboard stats and whether they are
// present. A missing snapshot renders as zeros.
func (c *Cache) Stats() (api.DashboardStats, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.stats == nil {
		return api.DashboardStats{}, false
	}
	return *c.stats, true
}

func (c *Cache) Snippets() []api.Snippet {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]api.Snippet, len(c.snippets))
	copy(out, c.snippets)
	return out
}

// Username falls back to the empty string when no profile is cached.
func (c *Cache) Username() string {
	p, _ := c.Profile()
	return p.Username
}

// TotalXP and StreakDays treat a missing profile as zero.
func (c *Cache) TotalXP() int {
	p, _ := c.Profile()
	return p.TotalXP
}

func (c *Cache) StreakDays() int {
	p, _ := c.Profile()
	return p.StreakDays
}

// SkillLevel falls back to the registration default.
func (c *Cache) SkillLevel() string {
	p, ok := c.Profile()
	if !ok || p.SkillLevel == "" {
		return DefaultSkillLevel
	}
	return p.SkillLevel
}

// PreferredLanguages falls back to the single default entry.
func (c *Cache) PreferredLanguages() []string {
	p, ok := c.Profile()
	if !ok || len(p.PreferredLanguages) == 0 {
		out := make([]string, len(DefaultPreferredLanguages))
		copy(out, DefaultPreferredLanguages)
		return out
	}
	out := make([]string, len(p.PreferredLanguages))
	copy(out, p.PreferredLanguages)
	return out
}
