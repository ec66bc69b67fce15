package handles

import (
	"github.com/gin-gonic/gin"

	"github.com/sprintdeck/sprintdeck/internal/db"
	"github.com/sprintdeck/sprintdeck/server/common"
	"github.com/sprintdeck/sprintdeck/server/middlewares"
)

func ListUsers(c *gin.Context) {
	users, err := db.ListUsers()
	if err != nil {
		common.ErrorResp(c, err, "Failed to retrieve users", 500)
		return
	}
	common.SuccessResp(c, users)
}

// Profile answers with the claims of the authenticated caller.
func Profile(c *gin.Context) {
	claims := middlewares.CurrentUser(c)
	common.SuccessResp(c, gin.H{
		"id":   claims.UserID,
		"name": claims.Name,
		"role": claims.Role,
	})
}
