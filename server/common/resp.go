package common

import (
	"github.com/gin-gonic/gin"

	"github.com/sprintdeck/sprintdeck/internal/conf"
	"github.com/sprintdeck/sprintdeck/pkg/utils"
)

// ErrResp is the error body every endpoint returns. Detail carries the
// underlying error text only outside production.
type ErrResp struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// ErrorResp logs err and answers with msg plus, in dev mode, the error
// detail.
func ErrorResp(c *gin.Context, err error, msg string, code int) {
	utils.Log.Errorf("%s: %+v", msg, err)
	body := ErrResp{Message: msg}
	if conf.Conf.Dev && err != nil {
		body.Error = err.Error()
	}
	c.JSON(code, body)
	c.Abort()
}

// ErrorStrResp answers a client mistake that carries no server error.
func ErrorStrResp(c *gin.Context, msg string, code int) {
	c.JSON(code, ErrResp{Message: msg})
	c.Abort()
}

func SuccessResp(c *gin.Context, data any) {
	c.JSON(200, data)
}
