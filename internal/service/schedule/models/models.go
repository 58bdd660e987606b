package models

import (
	"time"

	"github.com/m04kA/FSP-BookingService/internal/domain"
)

// Request модели

// CreateBlockedSlotRequest запрос на блокировку слота (админка)
// Time = nil блокирует весь день
type CreateBlockedSlotRequest struct {
	Date   time.Time `json:"-"`
	Time   *string   `json:"time,omitempty"`
	Reason *string   `json:"reason,omitempty"`
}

// GetAvailabilityRequest запрос занятости за период
type GetAvailabilityRequest struct {
	From time.Time `json:"-"`
	To   time.Time `json:"-"`
}

// Response модели

// BusySlotResponse занятый интервал без каких-либо данных клиента
type BusySlotResponse struct {
	Date            string `json:"date"` // "2025-10-15"
	Time            string `json:"time"` // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
}

// BlockedSlotResponse блокировка в публичном ответе
// Time = nil означает блокировку всего дня
type BlockedSlotResponse struct {
	Date string  `json:"date"`
	Time *string `json:"time,omitempty"`
}

// AvailabilityResponse публичная занятость календаря.
// Ни имен, ни услуг, ни цен - только факт занятости.
type AvailabilityResponse struct {
	Busy    []BusySlotResponse    `json:"busy"`
	Blocked []BlockedSlotResponse `json:"blocked"`
}

// AdminBlockedSlotResponse блокировка в админском ответе, с причиной
type AdminBlockedSlotResponse struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"`
	Time      *string   `json:"time,omitempty"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// BlockedSlotListResponse ответ со списком блокировок
type BlockedSlotListResponse struct {
	BlockedSlots []AdminBlockedSlotResponse `json:"blockedSlots"`
}

// Методы конвертации

// FromDomainBlockedSlot конвертирует domain модель в админский DTO
func FromDomainBlockedSlot(s *domain.BlockedSlot) *AdminBlockedSlotResponse {
	if s == nil {
		return nil
	}
	resp := &AdminBlockedSlotResponse{
		ID:        s.ID,
		Date:      s.Date.Format(domain.DateFormat),
		Reason:    s.Reason,
		CreatedAt: s.CreatedAt,
	}
	if s.Time != nil {
		t := s.Time.String()
		resp.Time = &t
	}
	return resp
}

// FromDomainBlockedSlotList конвертирует список domain моделей в DTO
func FromDomainBlockedSlotList(slots []*domain.BlockedSlot) *BlockedSlotListResponse {
	resp := &BlockedSlotListResponse{
		BlockedSlots: make([]AdminBlockedSlotResponse, 0, len(slots)),
	}
	for _, s := range slots {
		if slotResp := FromDomainBlockedSlot(s); slotResp != nil {
			resp.BlockedSlots = append(resp.BlockedSlots, *slotResp)
		}
	}
	return resp
}
