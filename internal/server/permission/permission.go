// Package permission описывает правила доступа к ресурсам AdHub.
//
// Правило: это предикат от текущего пользователя и автора ресурса.
// Предикаты комбинируются через Any (ИЛИ) и All (И).
package permission

import (
	"github.com/Altair788/AdHub/internal/server/models"
	serr "github.com/Altair788/AdHub/internal/shared/errors"
)

// Principal: пользователь, от имени которого выполняется запрос.
// Нулевое значение: анонимный пользователь.
type Principal struct {
	ID   int64
	Role models.Role
}

// Anonymous: запрос без токена.
var Anonymous = Principal{}

func (p Principal) Authenticated() bool {
	return p.ID > 0
}

func (p Principal) Admin() bool {
	return p.Authenticated() && p.Role == models.RoleAdmin
}

// Predicate решает, разрешено ли действие над ресурсом автора authorID.
// Для действий без конкретного ресурса authorID равен 0.
type Predicate func(p Principal, authorID int64) bool

func IsAuthenticated(p Principal, _ int64) bool {
	return p.Authenticated()
}

func IsAdmin(p Principal, _ int64) bool {
	return p.Admin()
}

func IsAuthor(p Principal, authorID int64) bool {
	return p.Authenticated() && authorID > 0 && p.ID == authorID
}

// Any разрешает действие, если разрешает хотя бы один предикат.
func Any(preds ...Predicate) Predicate {
	return func(p Principal, authorID int64) bool {
		for _, pred := range preds {
			if pred(p, authorID) {
				return true
			}
		}
		return false
	}
}

// All разрешает действие, только если разрешают все предикаты.
func All(preds ...Predicate) Predicate {
	return func(p Principal, authorID int64) bool {
		for _, pred := range preds {
			if !pred(p, authorID) {
				return false
			}
		}
		return true
	}
}

// Правила для объявлений, отзывов и профилей.
var (
	CanCreate         = Any(IsAdmin, IsAuthenticated)
	CanRetrieveAd     = Any(IsAuthenticated, IsAdmin)
	CanModify         = All(IsAuthenticated, Any(IsAdmin, IsAuthor))
	CanRetrieveReview = CanModify
)

// Require проверяет только аутентификацию. Вызывается до поиска объекта,
// чтобы анонимный запрос получал 401, а не 404.
func Require(p Principal) error {
	if !p.Authenticated() {
		return serr.ErrUnauthorized
	}
	return nil
}

// Check применяет предикат к уже найденному объекту.
//
// Возвращает:
//   - ErrUnauthorized, если пользователь не аутентифицирован
//   - ErrForbidden, если предикат не выполнен
func Check(p Principal, authorID int64, pred Predicate) error {
	if pred(p, authorID) {
		return nil
	}
	if !p.Authenticated() {
		return serr.ErrUnauthorized
	}
	return serr.ErrForbidden
}
