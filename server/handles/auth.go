package handles

import (
	"github.com/gin-gonic/gin"

	"github.com/sprintdeck/sprintdeck/internal/db"
	"github.com/sprintdeck/sprintdeck/internal/errs"
	"github.com/sprintdeck/sprintdeck/server/common"
)

// Login issues a signed token for a known email. There is no password
// check; the board trusts its network and the token only carries
// identity for the audit trail.
func Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		common.ErrorStrResp(c, "Email and password are required", 400)
		return
	}
	user, err := db.GetUserByEmail(req.Email)
	if err != nil {
		if errs.IsNotFound(err) {
			common.ErrorStrResp(c, "Invalid credentials", 401)
			return
		}
		common.ErrorResp(c, err, "Login failed", 500)
		return
	}
	token, err := common.GenerateToken(user)
	if err != nil {
		common.ErrorResp(c, err, "Login failed", 500)
		return
	}
	common.SuccessResp(c, gin.H{
		"user": gin.H{
			"id":   user.ID,
			"name": user.Name,
			"role": user.Role,
		},
		"token": token,
	})
}

// Logout exists for API symmetry; the client just discards its token.
func Logout(c *gin.Context) {
	common.SuccessResp(c, gin.H{"status": "success", "message": "Logged out successfully"})
}
