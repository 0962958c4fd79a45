package service

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	dmn "github.com/beka-birhanu/patrol-api/domain"
	"github.com/beka-birhanu/patrol-api/service/i"
)

type memLogger struct {
	mu       sync.Mutex
	warnings []string
	errors   []string
}

func (l *memLogger) Info(string) {}

func (l *memLogger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warnings = append(l.warnings, msg)
}

func (l *memLogger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}

type memCache struct {
	mu       sync.Mutex
	entries  map[string]*dmn.Outcome
	locks    int
	getErr   error
	lockErr  error
	sets     int
	keyLocks map[string]*sync.Mutex
}

func newMemCache() *memCache {
	return &memCache{entries: map[string]*dmn.Outcome{}, keyLocks: map[string]*sync.Mutex{}}
}

func (c *memCache) Get(_ context.Context, key string) (*dmn.Outcome, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	o, ok := c.entries[key]
	return o, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, o *dmn.Outcome) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = o
	c.sets++
	return nil
}

func (c *memCache) Lock(_ context.Context, key string) (func(), error) {
	c.mu.Lock()
	if c.lockErr != nil {
		c.mu.Unlock()
		return nil, c.lockErr
	}
	c.locks++
	m, ok := c.keyLocks[key]
	if !ok {
		m = &sync.Mutex{}
		c.keyLocks[key] = m
	}
	c.mu.Unlock()

	m.Lock()
	return m.Unlock, nil
}

type memMapRepo struct {
	maps map[string]*dmn.Map
	err  error
}

func (r *memMapRepo) Save(_ context.Context, m *dmn.Map) error {
	if r.err != nil {
		return r.err
	}
	r.maps[m.ID] = m
	return nil
}

func (r *memMapRepo) ByID(_ context.Context, id string) (*dmn.Map, error) {
	if r.err != nil {
		return nil, r.err
	}
	m, ok := r.maps[id]
	if !ok {
		return nil, i.ErrNotFound
	}
	return m, nil
}

func (r *memMapRepo) All(context.Context) ([]*dmn.Map, error) {
	if r.err != nil {
		return nil, r.err
	}
	var all []*dmn.Map
	for _, m := range r.maps {
		all = append(all, m)
	}
	slices.SortFunc(all, func(a, b *dmn.Map) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return all, nil
}

type memResultRepo struct {
	results []*dmn.Result
}

func (r *memResultRepo) Save(_ context.Context, res *dmn.Result) error {
	r.results = append(r.results, res)
	return nil
}

func (r *memResultRepo) ByID(_ context.Context, id string) (*dmn.Result, error) {
	for _, res := range r.results {
		if res.ID == id {
			return res, nil
		}
	}
	return nil, i.ErrNotFound
}

func (r *memResultRepo) ByMap(_ context.Context, mapID string) ([]*dmn.Result, error) {
	var out []*dmn.Result
	for _, res := range r.results {
		if res.MapID == mapID {
			out = append(out, res)
		}
	}
	return out, nil
}

type memRanking struct {
	scores map[string]map[string]float64
	err    error
}

func (r *memRanking) Add(_ context.Context, mapID string, score float64, resultID string) error {
	if r.err != nil {
		return r.err
	}
	if r.scores[mapID] == nil {
		r.scores[mapID] = map[string]float64{}
	}
	r.scores[mapID][resultID] = score
	return nil
}

func (r *memRanking) Top(_ context.Context, mapID string, n int64) ([]string, error) {
	if r.err != nil {
		return nil, r.err
	}
	var ids []string
	for id := range r.scores[mapID] {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b string) int {
		sa, sb := r.scores[mapID][a], r.scores[mapID][b]
		switch {
		case sa > sb:
			return -1
		case sa < sb:
			return 1
		}
		return 0
	})
	if int64(len(ids)) > n {
		ids = ids[:n]
	}
	return ids, nil
}

type published struct {
	subject string
	payload []byte
}

type memPublisher struct {
	events []published
	err    error
}

func (p *memPublisher) Publish(_ context.Context, subject string, payload []byte) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, published{subject, payload})
	return nil
}

type memTokenizer struct {
	claims map[string]interface{}
	ttl    time.Duration
}

func (t *memTokenizer) Generate(claims map[string]interface{}, ttl time.Duration) (string, error) {
	t.claims, t.ttl = claims, ttl
	return "token", nil
}

func (t *memTokenizer) Decode(string) (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}
