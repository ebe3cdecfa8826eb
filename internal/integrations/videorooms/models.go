package videorooms

// CreateRoomRequest тело запроса на создание комнаты
type CreateRoomRequest struct {
	Name       string         `json:"name"`
	Privacy    string         `json:"privacy"`
	Properties RoomProperties `json:"properties"`
}

// RoomProperties настройки комнаты
type RoomProperties struct {
	Exp int64 `json:"exp,omitempty"` // unix time, после которого комната удаляется
}

// Room комната видеосвязи
type Room struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ErrorResponse модель ошибки провайдера
type ErrorResponse struct {
	Error string `json:"error"`
	Info  string `json:"info"`
}
