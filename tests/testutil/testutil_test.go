package testutil

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMockDB(t *testing.T) {
	mdb := NewMockDB(t)
	defer mdb.Close()

	mdb.Mock.ExpectQuery(`SELECT 1`).
		WillReturnRows(mdb.Mock.NewRows([]string{"result"}).AddRow(1))

	var result int
	require.NoError(t, mdb.DB.Raw("SELECT 1").Scan(&result).Error)
	assert.Equal(t, 1, result)

	mdb.ExpectationsWereMet(t)
}

func TestNewTestUUID(t *testing.T) {
	assert.Equal(t, NewTestUUID("seed"), NewTestUUID("seed"))
	assert.NotEqual(t, NewTestUUID("seed"), NewTestUUID("other"))
	assert.Equal(t, TestUserID(), NewTestUUID("test-user"))
}

func newEnvelopeEngine() *gin.Engine {
	engine := gin.New()
	engine.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    gin.H{"name": "Air Max 90"},
		})
	})
	engine.GET("/missing", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   gin.H{"code": "ERR_NOT_FOUND", "message": "Product not found"},
		})
	})
	engine.POST("/echo", func(c *gin.Context) {
		var body map[string]interface{}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   gin.H{"code": "ERR_INVALID_INPUT"},
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": body})
	})
	return engine
}

func TestPerformRequest(t *testing.T) {
	engine := newEnvelopeEngine()

	t.Run("success envelope", func(t *testing.T) {
		resp := PerformRequest(t, engine, http.MethodGet, "/ok", nil)
		resp.AssertSuccess(t, http.StatusOK)

		env := resp.Envelope(t)
		data := env["data"].(map[string]interface{})
		assert.Equal(t, "Air Max 90", data["name"])
	})

	t.Run("error envelope", func(t *testing.T) {
		resp := PerformRequest(t, engine, http.MethodGet, "/missing", nil)
		resp.AssertError(t, http.StatusNotFound, "ERR_NOT_FOUND")
	})

	t.Run("marshals struct bodies as JSON", func(t *testing.T) {
		resp := PerformRequest(t, engine, http.MethodPost, "/echo", map[string]string{"size": "46"})
		resp.AssertSuccess(t, http.StatusOK)

		var body struct {
			Data map[string]string `json:"data"`
		}
		resp.DecodeJSON(t, &body)
		assert.Equal(t, "46", body.Data["size"])
	})

	t.Run("passes raw string bodies through", func(t *testing.T) {
		resp := PerformRequest(t, engine, http.MethodPost, "/echo", `{"size":"47"}`)
		assert.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("sets extra headers", func(t *testing.T) {
		engine := gin.New()
		engine.GET("/ping", func(c *gin.Context) {
			c.String(http.StatusOK, c.GetHeader("X-Request-ID"))
		})

		resp := PerformRequestWithHeaders(t, engine, http.MethodGet, "/ping", nil,
			map[string]string{"X-Request-ID": "req-1"})
		assert.Equal(t, "req-1", resp.Body.String())
	})
}
