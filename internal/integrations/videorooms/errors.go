package videorooms

import "errors"

var (
	// ErrRoomExists возвращается, когда комната с таким именем уже создана
	ErrRoomExists = errors.New("videorooms client: room already exists")

	// ErrUnauthorized возвращается при неверном API ключе
	ErrUnauthorized = errors.New("videorooms client: unauthorized")

	// ErrInternal возвращается при внутренних ошибках клиента (сеть, таймаут)
	ErrInternal = errors.New("videorooms client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе провайдера
	ErrInvalidResponse = errors.New("videorooms client: invalid response")
)
