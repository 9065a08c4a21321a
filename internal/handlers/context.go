package handlers

import "github.com/labstack/echo/v4"

// currentUserID returns the caller identity resolved by the identity
// middleware, or "" when none could be established.
func currentUserID(c echo.Context) string {
	if id, ok := c.Get("userID").(string); ok {
		return id
	}
	return ""
}
