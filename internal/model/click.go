package model

import "time"

// Device - класс устройства, определенный по User-Agent
type Device string

const (
	DeviceMobile  Device = "mobile"
	DeviceTablet  Device = "tablet"
	DeviceDesktop Device = "desktop"
)

// Unknown - значение для браузера и ОС, которые не удалось распознать
const Unknown = "Unknown"

// AttributionRecord - производные атрибуты одного запроса, в БД напрямую не пишется
type AttributionRecord struct {
	Referrer  *string
	UserAgent string
	Device    Device
	Browser   string
	OS        string
	IP        *string
	Country   *string
	City      *string
}

// ClickEvent - неизменяемая запись об одном переходе
type ClickEvent struct {
	ID        string    `json:"id"`
	LinkID    string    `json:"link_id"`
	UserID    string    `json:"user_id"`
	Referrer  *string   `json:"referrer"`
	UserAgent string    `json:"user_agent"`
	Device    Device    `json:"device"`
	Browser   string    `json:"browser"`
	OS        string    `json:"os"`
	IP        *string   `json:"ip"`
	Country   *string   `json:"country"`
	City      *string   `json:"city"`
	CreatedAt time.Time `json:"created_at"`
}

// NewClickEvent копирует атрибуты запроса в событие для ссылки
func NewClickEvent(id string, link *Link, rec AttributionRecord, now time.Time) *ClickEvent {
	return &ClickEvent{
		ID:        id,
		LinkID:    link.ID,
		UserID:    link.UserID,
		Referrer:  rec.Referrer,
		UserAgent: rec.UserAgent,
		Device:    rec.Device,
		Browser:   rec.Browser,
		OS:        rec.OS,
		IP:        rec.IP,
		Country:   rec.Country,
		City:      rec.City,
		CreatedAt: now,
	}
}

// ClickFilter - условия выборки для агрегатов по кликам, пустые поля не фильтруют
type ClickFilter struct {
	UserID string
	LinkID string
	From   *time.Time
	To     *time.Time
}
