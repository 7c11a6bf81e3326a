// Package utils содержит мелкие обобщённые помощники для работы с указателями.
//
// Опциональные поля моделей (phone, image, tg_id) представлены указателями:
// nil соответствует NULL в БД и null в JSON.
package utils

func Ptr[T any](v T) *T {
	return &v
}

func StrPtr(s string) *string {
	return &s
}

// Deref возвращает значение по указателю или нулевое значение типа.
func Deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// PtrIf возвращает указатель на v, если valid, иначе nil.
// Удобно для sql.NullString и подобных: PtrIf(s.String, s.Valid).
func PtrIf[T any](v T, valid bool) *T {
	if !valid {
		return nil
	}
	return &v
}
