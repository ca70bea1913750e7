package response

import (
	"net/http"

	"recircle-core/pkg/errno"

	"github.com/gin-gonic/gin"
)

// Response defines the standard JSON structure
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"msg"`
	Data    interface{} `json:"data"`
}

// Success returns a success response with data
func Success(c *gin.Context, data interface{}) {
	if data == nil {
		data = gin.H{} // Return empty object instead of null
	}
	c.JSON(http.StatusOK, Response{
		Code:    errno.OK.Code,
		Message: errno.OK.Message,
		Data:    data,
	})
}

// Error returns an error response. The HTTP status follows the error's kind
// so scan clients can distinguish retryable conflicts from hard failures.
func Error(c *gin.Context, err error) {
	code, msg := errno.Decode(err)
	c.JSON(errno.KindOf(err).HTTPStatus(), Response{
		Code:    code,
		Message: msg,
		Data:    gin.H{},
	})
}
