package db

import "errors"

// Ошибки уровня хранилища. Обработчики переводят их в HTTP-статусы:
// ErrNotFound — 404, ErrForbidden — 403, ErrConflict — 409.
// ErrForbidden возвращается, когда ресурс существует, но у пользователя
// нет прав на него — этот случай не смешивается с ErrNotFound.
var (
	ErrNotFound  = errors.New("запись не найдена")
	ErrForbidden = errors.New("нет прав на выполнение операции")
	ErrConflict  = errors.New("конфликт состояния")
)
