package middleware

import (
	"net/http"

	"rental_coach_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionMaxAge = 30 * 24 * 3600

// SessionMiddleware 为每个浏览器确定会话标识。
// 优先取 ?session= 参数，其次是 cookie，都没有则生成新的。
// 最终标识与 cookie 不一致时写回 cookie，后续不带参数的请求仍落在同一会话。
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, _ := c.Cookie(util.SessionCookie)

		id := c.Query(util.SessionQuery)
		if id == "" {
			id = cookie
		}
		if id == "" {
			id = uuid.NewString()
		}
		if id != cookie {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(util.SessionCookie, id, sessionMaxAge, "/", "", false, true)
		}
		c.Set(util.SessionKey, id)
		c.Next()
	}
}

// GetSessionID 未经过 SessionMiddleware 时返回空串
func GetSessionID(c *gin.Context) string {
	return c.GetString(util.SessionKey)
}
