package auth

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v4"
)

// Role codes carried in the token payload.
type Role string

const (
	RoleCustomer  Role = "customer"
	RoleCollector Role = "collector"
	RoleFacility  Role = "facility"
	RoleAdmin     Role = "admin"
	RoleFinance   Role = "finance"
	RolePartner   Role = "partner"
)

// ActorContext is the typed identity resolved once at the boundary.
// All role checks downstream are pure functions over this struct.
type ActorContext struct {
	SubjectID uint64
	Roles     map[Role]struct{}
}

// NewActorContext builds an actor from a subject id and role codes.
func NewActorContext(subjectID uint64, roles ...Role) *ActorContext {
	set := make(map[Role]struct{}, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return &ActorContext{SubjectID: subjectID, Roles: set}
}

// HasRole reports whether the actor carries the given role.
func (a *ActorContext) HasRole(role Role) bool {
	if a == nil {
		return false
	}
	_, ok := a.Roles[role]
	return ok
}

// HasAnyRole reports whether the actor carries at least one of the roles.
func (a *ActorContext) HasAnyRole(roles ...Role) bool {
	for _, r := range roles {
		if a.HasRole(r) {
			return true
		}
	}
	return false
}

// RoleList returns the actor's roles as strings, for logging.
func (a *ActorContext) RoleList() []string {
	out := make([]string, 0, len(a.Roles))
	for r := range a.Roles {
		out = append(out, string(r))
	}
	return out
}

var ErrInvalidToken = errors.New("invalid token")

// claims is the expected token payload: subject plus a roles array.
type claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// ParseToken validates a bearer token and resolves it into an ActorContext.
func ParseToken(tokenStr, secret string) (*ActorContext, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	subject, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil || subject == 0 {
		return nil, ErrInvalidToken
	}

	roles := make([]Role, 0, len(c.Roles))
	for _, r := range c.Roles {
		roles = append(roles, Role(r))
	}
	return NewActorContext(subject, roles...), nil
}

// SignToken issues a token for the given actor. Used by the CLI and tests;
// identity issuance itself lives outside this service.
func SignToken(subjectID uint64, roles []Role, secret string) (string, error) {
	strRoles := make([]string, 0, len(roles))
	for _, r := range roles {
		strRoles = append(strRoles, string(r))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Roles: strRoles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: strconv.FormatUint(subjectID, 10),
		},
	})
	return token.SignedString([]byte(secret))
}
