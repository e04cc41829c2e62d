package meetingservice

import "errors"

var (
	// ErrUnauthorized возвращается, когда сервис встреч отклонил токен
	ErrUnauthorized = errors.New("meetingservice client: unauthorized")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("meetingservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса встреч
	ErrInvalidResponse = errors.New("meetingservice client: invalid response")
)
