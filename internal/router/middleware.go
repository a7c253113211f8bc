package router

import (
	"strconv"
	"strings"
	"time"

	"github.com/hanbit-cms/internal/cache"
	"github.com/hanbit-cms/internal/config"
	"github.com/hanbit-cms/internal/constants"
	"github.com/hanbit-cms/internal/http/response"
	"github.com/hanbit-cms/internal/i18n"
	"github.com/hanbit-cms/internal/logger"
	"github.com/hanbit-cms/internal/repository"
	"github.com/hanbit-cms/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDKey = "request_id"
const requestIDHeader = "X-Request-ID"

// CORSMiddleware 교차 출처 미들웨어
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Authorization",
			"Cache-Control",
			"X-Requested-With",
			"X-Locale",
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	if len(allowedOrigins) == 0 {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware 요청 ID 미들웨어
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 구조화 요청 로그 미들웨어
func LoggerMiddleware(log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.L()
	}
	sugar := log.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			entry.Errorw("request", "errors", c.Errors.String())
			return
		}
		entry.Infow("request")
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

func abortUnauthorized(c *gin.Context, key string) {
	msg := i18n.T(i18n.ResolveLocale(c), key)
	response.Unauthorized(c, msg)
	c.Abort()
}

// JWTAuthMiddleware JWT 인증 미들웨어
// 액세스 토큰만 통과시킨다. 리프레시 토큰을 들고 와도 401 이다.
func JWTAuthMiddleware(secretKey string, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secretKey == "" {
			abortUnauthorized(c, "error.jwt_secret_missing")
			return
		}
		if userRepo == nil {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "error.auth_header_missing")
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			abortUnauthorized(c, "error.auth_header_invalid")
			return
		}

		tokenString := parts[1]
		parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		claims := &service.JWTClaims{}
		token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		if claims.UserID == 0 && claims.UID != 0 {
			claims.UserID = claims.UID
		}
		if claims.UserID == 0 || claims.TokenType != constants.TokenTypeAccess {
			abortUnauthorized(c, "error.token_invalid")
			return
		}

		// 캐시 스냅샷이 있으면 DB 조회 없이 통과시킨다.
		if state, hit := cache.GetUserAuthState(c.Request.Context(), claims.UserID); hit {
			if !state.IsActive || !issuedAfterInvalidBefore(claims.IssuedAt, state.TokenInvalidBefore) {
				abortUnauthorized(c, "error.token_invalid")
				return
			}
			setAuthContext(c, claims.UserID, state.Username, state.Role, state.LegacyRoles)
			c.Next()
			return
		}

		user, err := userRepo.GetByID(claims.UserID)
		if err != nil || user == nil {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		if !user.IsActive {
			abortUnauthorized(c, "error.user_disabled")
			return
		}
		if !issuedAfterInvalidBefore(claims.IssuedAt, user.TokenInvalidBefore) {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		cache.SetUserAuthState(c.Request.Context(), user)

		setAuthContext(c, user.ID, user.Username, user.Role, user.LegacyRoles)
		c.Next()
	}
}

func setAuthContext(c *gin.Context, userID uint, username, storedRole string, legacyRoles []string) {
	effective := service.EffectiveRole(username, storedRole, legacyRoles)
	if username == constants.SuperUsername && storedRole != constants.RoleAdmin {
		logger.SW("request_id", getRequestID(c)).Infow("role_override_applied",
			"user_id", userID,
			"username", username,
			"stored_role", storedRole,
		)
	}
	c.Set("user_id", userID)
	c.Set("username", username)
	c.Set("role", effective)
}

func issuedAfterInvalidBefore(issuedAt *jwt.NumericDate, invalidBefore *time.Time) bool {
	if invalidBefore == nil {
		return true
	}
	if issuedAt == nil {
		return false
	}
	return !issuedAt.Time.Before(*invalidBefore)
}

// RequireRoles 역할 허용 목록 미들웨어. 인증 여부와 권한 부족을 401/403 으로 구분한다.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(c *gin.Context) {
		roleValue, exists := c.Get("role")
		if !exists {
			abortUnauthorized(c, "error.unauthorized")
			return
		}
		role, ok := roleValue.(string)
		if !ok || role == "" {
			abortUnauthorized(c, "error.unauthorized")
			return
		}
		if _, ok := allowed[role]; !ok {
			msg := i18n.T(i18n.ResolveLocale(c), "error.forbidden")
			response.Forbidden(c, msg)
			c.Abort()
			return
		}
		c.Next()
	}
}
