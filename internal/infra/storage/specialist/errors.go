package specialist

import "errors"

var (
	// ErrSpecialistNotFound возвращается, когда мастер не найден
	ErrSpecialistNotFound = errors.New("specialist.repository: specialist not found")

	// ErrNoFreeSpecialist возвращается, когда на выбранное время нет свободных мастеров
	ErrNoFreeSpecialist = errors.New("specialist.repository: no free specialist")

	// ErrSpecialistInUse возвращается при удалении мастера, у которого есть записи
	ErrSpecialistInUse = errors.New("specialist.repository: specialist has appointments")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("specialist.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("specialist.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("specialist.repository: failed to scan row")
)
