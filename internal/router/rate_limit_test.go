package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vitrine-next/internal/config"
	"github.com/vitrine-next/internal/constants"

	"github.com/gin-gonic/gin"
)

func TestKeyByIPAndJSONField(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(`{"contact_email":" Ada@Example.com "}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.RemoteAddr = "1.2.3.4:5678"

	key := KeyByIPAndJSONField("contact_email")(c)
	if key != "ada@example.com|1.2.3.4" {
		t.Fatalf("key want ada@example.com|1.2.3.4 got %s", key)
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		t.Fatalf("read body after key extraction failed: %v", err)
	}
	if !strings.Contains(string(body), "Ada@Example.com") {
		t.Fatalf("request body should be restored after reading field")
	}
}

func TestKeyByOwnerFallsBackToIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/checkout", nil)
	c.Request.RemoteAddr = "5.6.7.8:1000"

	if got := KeyByOwner(c); got != "5.6.7.8" {
		t.Fatalf("expected ip fallback, got %s", got)
	}
	c.Set(constants.ContextKeyOwner, "owner-1")
	if got := KeyByOwner(c); got != "owner-1" {
		t.Fatalf("expected owner key, got %s", got)
	}
}

func TestRateLimitMiddlewareWithoutClient(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimitMiddleware(nil, RateLimitRule{WindowSeconds: 60, MaxRequests: 1}, KeyByIP))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok":true`) {
			t.Fatalf("request %d should pass without redis, got %d %s", i, w.Code, w.Body.String())
		}
	}
}

func TestNewRateLimitRule(t *testing.T) {
	rule := newRateLimitRule("vt", "checkout", config.RateLimitRule{WindowSeconds: 60, MaxRequests: 5})
	if rule.Prefix != "vt:rate:checkout" || rule.WindowSeconds != 60 || rule.MaxRequests != 5 {
		t.Fatalf("unexpected rule %+v", rule)
	}
}

func TestToInt64(t *testing.T) {
	cases := []struct {
		name  string
		input interface{}
		want  int64
		ok    bool
	}{
		{name: "int64", input: int64(10), want: 10, ok: true},
		{name: "int", input: int(11), want: 11, ok: true},
		{name: "float64", input: float64(13.9), want: 13, ok: true},
		{name: "string", input: "bad", want: 0, ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := toInt64(tc.input)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("toInt64(%v)=%d,%v want %d,%v", tc.input, got, ok, tc.want, tc.ok)
			}
		})
	}
}
