package bookingrequest

import "errors"

var (
	// ErrBookingRequestNotFound возвращается, когда заявка не найдена
	ErrBookingRequestNotFound = errors.New("bookingrequest.repository: booking request not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("bookingrequest.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("bookingrequest.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("bookingrequest.repository: failed to scan row")
)
