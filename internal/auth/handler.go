package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vektah/gqlparser/v2/gqlerror"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"libraryql/internal/model"
	"libraryql/internal/repository"
)

const bearerPrefix = "Bearer "

// UserSource resolves a verified token's user id to the stored user record.
type UserSource interface {
	UserByID(ctx context.Context, id primitive.ObjectID) (model.User, error)
}

// Handler resolves the Authorization header into the request context before
// the GraphQL handler runs (this also covers websocket upgrade requests for
// subscriptions, which carry the header on the upgrade).
//
// No header, or a header without a Bearer prefix, leaves the request
// anonymous. A Bearer token that fails verification ends the request with a
// 401 - it is not downgraded to anonymous.
type Handler struct {
	tokens *Tokens
	users  UserSource
	inner  http.Handler
}

func NewHandler(tokens *Tokens, users UserSource, inner http.Handler) *Handler {
	return &Handler{tokens: tokens, users: users, inner: inner}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		h.inner.ServeHTTP(w, r) // anonymous
		return
	}

	id, err := h.tokens.UserID(header[len(bearerPrefix):])
	if err != nil {
		writeError(w, http.StatusUnauthorized, err)
		return
	}

	u, err := h.users.UserByID(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		// valid token for a user that no longer exists
		h.inner.ServeHTTP(w, r)
		return
	}
	if err != nil {
		slog.Error("failed to resolve token user", slog.String("op", "auth.Handler"), slog.String("err", err.Error()))
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	h.inner.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
}

// writeError emits the same JSON error shape the GraphQL handler uses.
func writeError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	body, _ := json.Marshal(struct {
		Errors gqlerror.List `json:"errors"`
	}{Errors: gqlerror.List{gqlerror.Errorf("%s", err.Error())}})
	_, _ = w.Write(body)
}
