package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/soniabinty/gizmorent-server/internal/http/response"
	"github.com/soniabinty/gizmorent-server/internal/service"
	"github.com/soniabinty/gizmorent-server/pkg/auth"
	"github.com/soniabinty/gizmorent-server/pkg/logger"
)

type claimsKey struct{}

type Handlers struct {
	catalogService      service.CatalogService
	authService         service.AuthService
	renterService       service.RenterService
	commerceService     service.CommerceService
	orderService        service.OrderService
	paymentService      service.PaymentService
	reviewService       service.ReviewService
	notificationService service.NotificationService
	jwtSecret           string
}

func New(
	catalogService service.CatalogService,
	authService service.AuthService,
	renterService service.RenterService,
	commerceService service.CommerceService,
	orderService service.OrderService,
	paymentService service.PaymentService,
	reviewService service.ReviewService,
	notificationService service.NotificationService,
	jwtSecret string,
) *Handlers {
	return &Handlers{
		catalogService:      catalogService,
		authService:         authService,
		renterService:       renterService,
		commerceService:     commerceService,
		orderService:        orderService,
		paymentService:      paymentService,
		reviewService:       reviewService,
		notificationService: notificationService,
		jwtSecret:           jwtSecret,
	}
}

// RequireJWT authenticates the bearer token and, when requiredRole is
// non-empty, enforces it. Admins pass every role gate.
func (h *Handlers) RequireJWT(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				response.WriteError(w, http.StatusUnauthorized, "Missing or invalid authorization header", response.CodeUnauthorized)
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := auth.Parse(token, h.jwtSecret)
			if err != nil {
				response.WriteError(w, http.StatusUnauthorized, "Invalid token", response.CodeInvalidToken)
				return
			}

			if requiredRole != "" && claims.Role != requiredRole && claims.Role != "admin" {
				response.Forbidden(w, "Insufficient permissions")
				return
			}

			ctx := context.WithValue(r.Context(), logger.UserKey, claims.Email)
			ctx = context.WithValue(ctx, claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func getClaims(r *http.Request) *auth.Claims {
	if claims, ok := r.Context().Value(claimsKey{}).(*auth.Claims); ok {
		return claims
	}
	return nil
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return false
	}
	return true
}
