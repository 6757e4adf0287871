package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrBookingRequestNotFound возвращается, когда заявка не найдена
	ErrBookingRequestNotFound = errors.New("booking request not found")

	// ErrSlotTaken возвращается, когда слот уже занят
	ErrSlotTaken = errors.New("slot is already taken")

	// ErrNoFreeSpecialist возвращается, когда нет свободных мастеров на выбранное время
	ErrNoFreeSpecialist = errors.New("no free specialist")

	// ErrInvalidSelection возвращается, когда салон, мастер или процедура не существуют
	ErrInvalidSelection = errors.New("selected entity does not exist")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
