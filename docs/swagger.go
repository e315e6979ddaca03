// Package docs Geo Users API
//
// @title  Geo Users API
// @version 0.1.0
// @description User registration, bulk status toggling, distance from the caller and weekday listings.
// @host      localhost:8080
// @BasePath /
// @schemes http https
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
package docs

import (
	_ "geo-users/cmd/server/handlers/httperr"
	_ "geo-users/internal/services/users"
)
