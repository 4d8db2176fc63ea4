package middleware

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// CORS returns a fully permissive cross-origin middleware: the proxy exists
// so that browser clients on any origin can fetch through it. Echo stamps the
// headers before the handler runs, so error responses carry them too, and
// answers preflight requests itself.
func CORS() echo.MiddlewareFunc {
	return echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowCredentials: true,
	})
}
