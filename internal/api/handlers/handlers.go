// Package handlers implements the HTTP endpoints. Every handler operates
// only on rows belonging to the authenticated user.
package handlers

import "github.com/gin-gonic/gin"

// userID reads the authenticated user's ID set by the auth middleware.
func userID(c *gin.Context) string {
	return c.GetString("userID")
}
