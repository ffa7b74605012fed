package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/riyanshibariyaa/jp5/internal/model"
	"github.com/riyanshibariyaa/jp5/internal/utilities"
)

// CheckPermission protects an endpoint from HR users lacking a specific
// permission flag. Employers and admins pass unconditionally.
func CheckPermission(perm func(model.HRPermissions) bool) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, err := utilities.ExtractUser(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Error: err.Error(),
			})
			return
		}

		if user.Role != model.RoleAdmin && !user.Can(perm) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "User doesn't have permission to access",
			})
		}
	}
}
