package catalog

import "errors"

var (
	// ErrNotFound возвращается, когда салон, мастер или процедура не найдены
	ErrNotFound = errors.New("catalog: entity not found")

	// ErrInUse возвращается при удалении сущности, на которую есть записи
	ErrInUse = errors.New("catalog: entity is referenced by appointments")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("catalog: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog: internal error")
)
