package httpapi

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"

	"github.com/i474232898/forecast-browser/internal/client"
	"github.com/i474232898/forecast-browser/internal/session"
)

const (
	defaultPageSessionTTL = 24 * time.Hour
	pageCookieName        = "forecast_session"
	sweepInterval         = time.Minute
)

// pageSessions keeps one page Session per browser, keyed by the id of a
// fiber session cookie. Entries idle for longer than ttl are dropped.
type pageSessions struct {
	cookies *fibersession.Store
	fetcher client.Fetcher
	ttl     time.Duration
	now     func() time.Time

	mu        sync.Mutex
	byID      map[string]*pageEntry
	lastSweep time.Time
}

type pageEntry struct {
	sess     *session.Session
	lastSeen time.Time
}

func newPageSessions(fetcher client.Fetcher, ttl time.Duration) *pageSessions {
	if ttl <= 0 {
		ttl = defaultPageSessionTTL
	}
	return &pageSessions{
		cookies: fibersession.New(fibersession.Config{
			Expiration:     ttl,
			KeyLookup:      "cookie:" + pageCookieName,
			CookieHTTPOnly: true,
			CookieSameSite: fiber.CookieSameSiteLaxMode,
		}),
		fetcher: fetcher,
		ttl:     ttl,
		now:     time.Now,
		byID:    make(map[string]*pageEntry),
	}
}

// get returns the Session of the requesting browser, creating it and
// setting the cookie on first visit.
func (p *pageSessions) get(c *fiber.Ctx) (*session.Session, error) {
	cs, err := p.cookies.Get(c)
	if err != nil {
		return nil, err
	}
	id := cs.ID()
	if err := cs.Save(); err != nil {
		return nil, err
	}

	now := p.now()
	p.mu.Lock()
	defer p.mu.Unlock()

	p.sweep(now)
	e, ok := p.byID[id]
	if !ok {
		e = &pageEntry{sess: session.New(p.fetcher)}
		p.byID[id] = e
	}
	e.lastSeen = now
	return e.sess, nil
}

// sweep drops idle entries, at most once per sweepInterval. Callers hold mu.
func (p *pageSessions) sweep(now time.Time) {
	if now.Sub(p.lastSweep) < sweepInterval {
		return
	}
	p.lastSweep = now
	for id, e := range p.byID {
		if now.Sub(e.lastSeen) > p.ttl {
			delete(p.byID, id)
		}
	}
}

func (p *pageSessions) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.byID)
}
