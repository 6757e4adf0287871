package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrDuplicateAppointment возвращается при нарушении уникальности (салон, мастер, дата, время)
	ErrDuplicateAppointment = errors.New("appointment.repository: duplicate appointment")

	// ErrReferenceNotFound возвращается, когда салон, мастер, процедура или клиент не существуют
	ErrReferenceNotFound = errors.New("appointment.repository: referenced entity not found")

	// ErrUnknownEntity возвращается при неизвестном типе сущности для занятости
	ErrUnknownEntity = errors.New("appointment.repository: unknown entity type")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
