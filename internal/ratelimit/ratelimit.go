package ratelimit

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Policy is a named (requests, window) budget applied per remote address.
type Policy struct {
	Name        string
	Limit       int
	Window      time.Duration
	Description string
}

// DefaultPolicyName is used when a handler asks for an unknown policy.
const DefaultPolicyName = "default"

func defaultPolicies() []Policy {
	return []Policy{
		{Name: "login", Limit: 5, Window: time.Minute, Description: "5 per minute"},
		{Name: "register", Limit: 3, Window: time.Hour, Description: "3 per hour"},
		{Name: "parse_resume", Limit: 10, Window: time.Hour, Description: "10 per hour"},
		{Name: DefaultPolicyName, Limit: 100, Window: time.Minute, Description: "100 per minute"},
	}
}

type counter struct {
	mu          sync.Mutex
	windowStart time.Time
	count       int
}

// Limiter keeps fixed-window counters per (policy, remote address). Counters
// live in an expirable LRU sized per policy so idle addresses age out without
// a reaper goroutine. The policy table is read-only after construction.
type Limiter struct {
	mu       sync.Mutex
	policies map[string]Policy
	counters map[string]*expirable.LRU[string, *counter]
}

// maxTrackedAddresses bounds memory per policy under address churn.
const maxTrackedAddresses = 65536

// New builds a limiter with the standard policy table.
func New() *Limiter {
	return NewWithPolicies(defaultPolicies())
}

// NewWithPolicies builds a limiter from an explicit policy table. A policy
// named "default" must be present.
func NewWithPolicies(policies []Policy) *Limiter {
	l := &Limiter{
		policies: make(map[string]Policy, len(policies)),
		counters: make(map[string]*expirable.LRU[string, *counter], len(policies)),
	}
	for _, p := range policies {
		l.policies[p.Name] = p
		l.counters[p.Name] = expirable.NewLRU[string, *counter](maxTrackedAddresses, nil, p.Window)
	}
	return l
}

// Policy returns the named policy, falling back to the default budget.
func (l *Limiter) Policy(name string) Policy {
	if p, ok := l.policies[name]; ok {
		return p
	}
	return l.policies[DefaultPolicyName]
}

// Allow records one request from addr against the named policy and reports
// whether it fits the budget. The returned policy carries the human-readable
// description for 429 responses.
func (l *Limiter) Allow(policyName, addr string) (bool, Policy) {
	p := l.Policy(policyName)

	l.mu.Lock()
	cache := l.counters[p.Name]
	c, ok := cache.Get(addr)
	if !ok {
		c = &counter{windowStart: time.Now()}
		cache.Add(addr, c)
	}
	l.mu.Unlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if now.Sub(c.windowStart) >= p.Window {
		c.windowStart = now
		c.count = 0
	}
	c.count++
	return c.count <= p.Limit, p
}
