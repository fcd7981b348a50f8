package httpx

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ApiResponse is the success envelope every handler returns.
type ApiResponse struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

type errorResponse struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

// OK writes a 200 success envelope.
func OK(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, ApiResponse{
		StatusCode: http.StatusOK,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// Fail converts err into the error envelope. Anything that is not an
// ApiError is reported as a generic 500 so internals never leak to clients.
func Fail(c *gin.Context, err error) {
	apiErr, ok := err.(*ApiError)
	if !ok {
		log.Printf("unhandled error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		apiErr = ErrInternal("Internal server error")
	}
	c.JSON(apiErr.StatusCode, errorResponse{
		StatusCode: apiErr.StatusCode,
		Message:    apiErr.Message,
		Success:    false,
		Errors:     apiErr.Errors,
	})
}

// Wrap adapts an error-returning handler to gin. Handlers report failures by
// returning; Wrap is the single place those failures become responses.
func Wrap(fn func(*gin.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := fn(c); err != nil {
			Fail(c, err)
		}
	}
}
