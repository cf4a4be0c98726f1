package middleware

import (
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/modulixo/storefront/internal/domain/model"
	pkgAuth "github.com/modulixo/storefront/internal/pkg/auth"
	testhelpers "github.com/modulixo/storefront/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type capturedIdentity struct {
	userID int64
	role   model.Role
	seen   bool
}

func identityCapture(captured *capturedIdentity) gin.HandlerFunc {
	return func(c *gin.Context) {
		if val, ok := c.Get(UserIDContextKey); ok {
			captured.seen = true
			captured.userID, _ = val.(int64)
		}
		if val, ok := c.Get(UserRoleContextKey); ok {
			captured.role, _ = val.(model.Role)
		}
		c.Status(http.StatusOK)
	}
}

func TestAuthRequired(t *testing.T) {
	t.Run("valid bearer token sets identity", func(t *testing.T) {
		var captured capturedIdentity
		engine := gin.New()
		engine.GET("/", AuthRequired(testhelpers.TokenParserStub{ID: 7, Role: model.RoleAdmin}), identityCapture(&captured))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer good")
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if !captured.seen || captured.userID != 7 || captured.role != model.RoleAdmin {
			t.Fatalf("identity = %+v", captured)
		}
	})

	t.Run("token from cookie", func(t *testing.T) {
		var captured capturedIdentity
		engine := gin.New()
		engine.GET("/", AuthRequired(testhelpers.TokenParserStub{ID: 3}), identityCapture(&captured))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "storefront_token", Value: "good"})
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK || captured.userID != 3 {
			t.Fatalf("status = %d, identity = %+v", rec.Code, captured)
		}
	})

	t.Run("missing token", func(t *testing.T) {
		engine := gin.New()
		engine.GET("/", AuthRequired(testhelpers.TokenParserStub{}), func(c *gin.Context) {
			t.Fatal("handler reached without token")
		})

		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("invalid token", func(t *testing.T) {
		engine := gin.New()
		engine.GET("/", AuthRequired(testhelpers.TokenParserStub{Err: pkgAuth.ErrInvalidToken}), func(c *gin.Context) {
			t.Fatal("handler reached with bad token")
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer bad")
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("parser failure", func(t *testing.T) {
		engine := gin.New()
		engine.GET("/", AuthRequired(testhelpers.TokenParserStub{Err: errors.New("boom")}), func(c *gin.Context) {
			t.Fatal("handler reached after parser failure")
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer any")
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}

func TestOptionalAuth(t *testing.T) {
	t.Run("anonymous request passes through", func(t *testing.T) {
		var captured capturedIdentity
		engine := gin.New()
		engine.GET("/", OptionalAuth(testhelpers.TokenParserStub{ID: 7}), identityCapture(&captured))

		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if captured.seen {
			t.Fatal("anonymous request should carry no identity")
		}
	})

	t.Run("valid token attaches identity", func(t *testing.T) {
		var captured capturedIdentity
		engine := gin.New()
		engine.GET("/", OptionalAuth(testhelpers.TokenParserStub{ID: 42}), identityCapture(&captured))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer good")
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		if !captured.seen || captured.userID != 42 {
			t.Fatalf("identity = %+v", captured)
		}
	})

	t.Run("invalid token never aborts", func(t *testing.T) {
		var captured capturedIdentity
		engine := gin.New()
		engine.GET("/", OptionalAuth(testhelpers.TokenParserStub{Err: pkgAuth.ErrInvalidToken}), identityCapture(&captured))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer bad")
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK || captured.seen {
			t.Fatalf("status = %d, identity = %+v", rec.Code, captured)
		}
	})
}

func TestAdminRequired(t *testing.T) {
	newEngine := func(parser testhelpers.TokenParserStub) *gin.Engine {
		engine := gin.New()
		engine.GET("/", AuthRequired(parser), AdminRequired(), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return engine
	}

	t.Run("admin passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer good")
		rec := httptest.NewRecorder()
		newEngine(testhelpers.TokenParserStub{ID: 1, Role: model.RoleAdmin}).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("customer forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer good")
		rec := httptest.NewRecorder()
		newEngine(testhelpers.TokenParserStub{ID: 1, Role: model.RoleCustomer}).ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("missing identity forbidden", func(t *testing.T) {
		engine := gin.New()
		engine.GET("/", AdminRequired(), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}

func TestRequestLogger(t *testing.T) {
	newEngine := func(buf *bytes.Buffer) *gin.Engine {
		logger := slog.New(slog.NewJSONHandler(buf, nil))
		engine := gin.New()
		engine.Use(RequestLogger(logger))
		engine.GET("/ping", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return engine
	}

	t.Run("assigns request id and logs", func(t *testing.T) {
		var buf bytes.Buffer
		rec := httptest.NewRecorder()
		newEngine(&buf).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

		if rec.Header().Get(RequestIDHeader) == "" {
			t.Fatal("expected generated request id header")
		}
		logged := buf.String()
		if !strings.Contains(logged, `"path":"/ping"`) || !strings.Contains(logged, `"status":200`) {
			t.Fatalf("log = %s", logged)
		}
	})

	t.Run("keeps inbound request id", func(t *testing.T) {
		var buf bytes.Buffer
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, "req-123")
		rec := httptest.NewRecorder()
		newEngine(&buf).ServeHTTP(rec, req)

		if got := rec.Header().Get(RequestIDHeader); got != "req-123" {
			t.Fatalf("request id = %q", got)
		}
		if !strings.Contains(buf.String(), `"request_id":"req-123"`) {
			t.Fatalf("log = %s", buf.String())
		}
	})
}

func TestDecompressRequest(t *testing.T) {
	newEngine := func(received *string) *gin.Engine {
		engine := gin.New()
		engine.Use(DecompressRequest())
		engine.POST("/", func(c *gin.Context) {
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				c.Status(http.StatusInternalServerError)
				return
			}
			*received = string(body)
			c.Status(http.StatusOK)
		})
		return engine
	}

	t.Run("gzip body is decompressed", func(t *testing.T) {
		var compressed bytes.Buffer
		writer := gzip.NewWriter(&compressed)
		if _, err := writer.Write([]byte(`{"total":19.99}`)); err != nil {
			t.Fatalf("compress: %v", err)
		}
		if err := writer.Close(); err != nil {
			t.Fatalf("close writer: %v", err)
		}

		var received string
		req := httptest.NewRequest(http.MethodPost, "/", &compressed)
		req.Header.Set("Content-Encoding", "gzip")
		rec := httptest.NewRecorder()
		newEngine(&received).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if received != `{"total":19.99}` {
			t.Fatalf("body = %q", received)
		}
	})

	t.Run("plain body passes through", func(t *testing.T) {
		var received string
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("plain"))
		rec := httptest.NewRecorder()
		newEngine(&received).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK || received != "plain" {
			t.Fatalf("status = %d, body = %q", rec.Code, received)
		}
	})

	t.Run("corrupt gzip rejected", func(t *testing.T) {
		var received string
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("not gzip"))
		req.Header.Set("Content-Encoding", "gzip")
		rec := httptest.NewRecorder()
		newEngine(&received).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}
