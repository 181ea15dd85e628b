package router_test

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"judol-guard/api/router"
	"judol-guard/config"
	"judol-guard/services"
)

func testConfig() config.AppConfig {
	return config.AppConfig{
		Dashboard: config.DashboardConfig{Username: "admin", Password: "secret"},
	}
}

func TestNewRejectsMissingDashboardCredentials(t *testing.T) {
	gin.SetMode(gin.TestMode)
	blocklistSvc := services.NewBlocklistService(nil, config.PipelineConfig{})

	cfg := testConfig()
	cfg.Dashboard.Username = ""
	_, err := router.New(cfg, blocklistSvc, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "basic auth")

	cfg = testConfig()
	cfg.Dashboard.Password = ""
	_, err = router.New(cfg, blocklistSvc, nil)
	assert.Error(t, err)
}

func TestNewBuildsRouterWithCredentials(t *testing.T) {
	gin.SetMode(gin.TestMode)
	blocklistSvc := services.NewBlocklistService(nil, config.PipelineConfig{})

	r, err := router.New(testConfig(), blocklistSvc, nil)

	require.NoError(t, err)
	require.NotNil(t, r)

	routes := make(map[string]bool)
	for _, route := range r.Routes() {
		routes[route.Method+" "+route.Path] = true
	}
	assert.True(t, routes["GET /api/v1/blocked-words"])
	assert.True(t, routes["GET /api/v1/blocked-channels"])
	assert.True(t, routes["POST /job/collect-comment"])
	assert.True(t, routes["POST /job/check-batch"])
	assert.True(t, routes["GET /health"])
}
