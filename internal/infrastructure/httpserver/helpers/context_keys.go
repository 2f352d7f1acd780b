package helpers

import "github.com/labstack/echo/v4"

type ctxKey string

const (
	keyRequestID ctxKey = "request_id"
	keyClientKey ctxKey = "client_key"
)

func SetRequestID(c echo.Context, id string) { c.Set(string(keyRequestID), id) }
func GetRequestIDRaw(c echo.Context) (string, bool) {
	v := c.Get(string(keyRequestID))
	s, ok := v.(string)
	return s, ok && s != ""
}

func SetClientKey(c echo.Context, key string) { c.Set(string(keyClientKey), key) }
func GetClientKeyRaw(c echo.Context) (string, bool) {
	v := c.Get(string(keyClientKey))
	s, ok := v.(string)
	return s, ok && s != ""
}
