package create_appointment

import "errors"

var (
	// ErrSlotTaken возвращается, когда на (салон, мастер, дата, время) уже есть запись
	ErrSlotTaken = errors.New("create_appointment: slot is already taken")

	// ErrNoFreeSpecialist возвращается, когда мастер не выбран и свободных мастеров нет
	ErrNoFreeSpecialist = errors.New("create_appointment: no free specialist")

	// ErrInvalidSelection возвращается, когда выбранный салон, мастер или процедура не существуют
	ErrInvalidSelection = errors.New("create_appointment: selected entity does not exist")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
