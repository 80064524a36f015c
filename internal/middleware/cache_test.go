package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func browseContext(e *echo.Echo, target, route string) echo.Context {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath(route)
	return c
}

func TestCacheKeyDistinguishesPathParams(t *testing.T) {
	e := echo.New()

	tests := []struct {
		name     string
		targetA  string
		targetB  string
		route    string
		wantSame bool
	}{
		{"different seat ids", "/v1/seats/1", "/v1/seats/2", "/v1/seats/:id", false},
		{"different zones", "/v1/seats/zone/VIP", "/v1/seats/zone/A", "/v1/seats/zone/:zone", false},
		{"different queries", "/v1/bookings/price?seat_id=1&customer_type=member", "/v1/bookings/price?seat_id=1&customer_type=student", "/v1/bookings/price", false},
		{"identical requests", "/v1/seats/1", "/v1/seats/1", "/v1/seats/:id", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := cacheKey("cache", browseContext(e, tt.targetA, tt.route))
			b := cacheKey("cache", browseContext(e, tt.targetB, tt.route))
			if (a == b) != tt.wantSame {
				t.Errorf("cacheKey(%q) = %q, cacheKey(%q) = %q, wantSame = %v",
					tt.targetA, a, tt.targetB, b, tt.wantSame)
			}
		})
	}
}
