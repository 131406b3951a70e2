package router

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/peeves/backend/tests/testutil"
)

type pingRegistrar struct{}

func (pingRegistrar) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	NewRouter(engine).Register(pingRegistrar{}).Setup()

	resp := testutil.PerformRequest(t, engine, http.MethodGet, "/api/v1/ping", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "pong", resp.Body.String())
}

func TestRouterAPIVersion(t *testing.T) {
	engine := gin.New()
	NewRouter(engine, WithAPIVersion("v2")).Register(pingRegistrar{}).Setup()

	resp := testutil.PerformRequest(t, engine, http.MethodGet, "/api/v2/ping", nil)
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = testutil.PerformRequest(t, engine, http.MethodGet, "/api/v1/ping", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
