package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	domainerror "github.com/CauaPrates/organiza-ai-app/internal/domain/error"
	"github.com/CauaPrates/organiza-ai-app/internal/integration/entrypoint/dto"
)

// maxPeekedBody bounds how much of a credentials body is read to find the e-mail.
const maxPeekedBody = 64 << 10

// LoginThrottle limits sign-in and sign-up attempts per client address and
// per e-mail. An attempt passes only when both keys have budget left, so
// rotating addresses does not buy more guesses against one account.
type LoginThrottle struct {
	mu      sync.Mutex
	byIP    map[string]*attemptBudget
	byEmail map[string]*attemptBudget

	limit  rate.Limit
	burst  int
	idle   time.Duration
	pruned time.Time
	now    func() time.Time
}

type attemptBudget struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLoginThrottle allows attempts per key within window, refilling evenly.
func NewLoginThrottle(attempts int, window time.Duration) *LoginThrottle {
	if attempts < 1 {
		attempts = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &LoginThrottle{
		byIP:    make(map[string]*attemptBudget),
		byEmail: make(map[string]*attemptBudget),
		limit:   rate.Every(window / time.Duration(attempts)),
		burst:   attempts,
		idle:    window,
		now:     time.Now,
	}
}

// Middleware rejects throttled attempts with 429 and a Retry-After header.
// The request body is left intact for the handler.
func (t *LoginThrottle) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := peekEmail(c)

		wait, ok := t.allow(c.ClientIP(), email)
		if !ok {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many attempts. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			return
		}

		c.Next()
	}
}

// allow takes one attempt from the address and from the e-mail, if any. A
// rejected attempt costs neither key anything. wait is how long the caller
// should back off.
func (t *LoginThrottle) allow(ip, email string) (wait time.Duration, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.pruneLocked(now)

	var taken []*rate.Reservation
	for _, b := range t.budgetsLocked(now, ip, email) {
		r := b.limiter.ReserveN(now, 1)
		if d := r.DelayFrom(now); !r.OK() || d > 0 {
			r.CancelAt(now)
			for _, prev := range taken {
				prev.CancelAt(now)
			}
			return max(d, time.Second), false
		}
		taken = append(taken, r)
	}
	return 0, true
}

func (t *LoginThrottle) budgetsLocked(now time.Time, ip, email string) []*attemptBudget {
	budgets := []*attemptBudget{t.budgetLocked(t.byIP, ip, now)}
	if email != "" {
		budgets = append(budgets, t.budgetLocked(t.byEmail, email, now))
	}
	return budgets
}

func (t *LoginThrottle) budgetLocked(m map[string]*attemptBudget, key string, now time.Time) *attemptBudget {
	b, ok := m[key]
	if !ok {
		b = &attemptBudget{limiter: rate.NewLimiter(t.limit, t.burst)}
		m[key] = b
	}
	b.lastSeen = now
	return b
}

// pruneLocked forgets keys unused for a whole window; their budget is full again.
func (t *LoginThrottle) pruneLocked(now time.Time) {
	if now.Sub(t.pruned) < t.idle {
		return
	}
	t.pruned = now
	for _, m := range []map[string]*attemptBudget{t.byIP, t.byEmail} {
		for key, b := range m {
			if now.Sub(b.lastSeen) >= t.idle {
				delete(m, key)
			}
		}
	}
}

// peekEmail reads the e-mail of a credentials body and puts the body back.
func peekEmail(c *gin.Context) string {
	if c.Request.Body == nil {
		return ""
	}
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxPeekedBody))
	c.Request.Body = io.NopCloser(io.MultiReader(bytes.NewReader(body), c.Request.Body))
	if err != nil {
		return ""
	}

	var creds struct {
		Email string `json:"email"`
	}
	if json.Unmarshal(body, &creds) != nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(creds.Email))
}
