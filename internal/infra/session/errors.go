package session

import "errors"

var (
	// ErrEncode возвращается, если состояние не удалось сериализовать
	ErrEncode = errors.New("session.store: failed to encode state")

	// ErrDecode возвращается, если сохраненное состояние повреждено
	ErrDecode = errors.New("session.store: failed to decode state")

	// ErrStorage возвращается при ошибке хранилища
	ErrStorage = errors.New("session.store: storage error")
)
