package usecase

import (
	"github.com/dventura/autogest-api/internal/application/dto"
	"github.com/dventura/autogest-api/internal/domain/entity"
	"github.com/dventura/autogest-api/internal/domain/repository"
)

// NotificationUseCase bandeja de avisos del usuario.
type NotificationUseCase struct {
	notifRepo repository.NotificationRepository
}

// NewNotificationUseCase construye el caso de uso de notificaciones.
func NewNotificationUseCase(notifRepo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{notifRepo: notifRepo}
}

// List lista las notificaciones del usuario, opcionalmente solo las no leídas.
func (uc *NotificationUseCase) List(userID string, onlyUnread bool, limit, offset int) (*dto.NotificationListResponse, error) {
	list, err := uc.notifRepo.ListByUser(userID, onlyUnread, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		items = append(items, *toNotificationResponse(n))
	}
	return &dto.NotificationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// MarkRead marca como leída una notificación del usuario.
func (uc *NotificationUseCase) MarkRead(userID, id string) error {
	return uc.notifRepo.MarkRead(userID, id)
}

// MarkAllRead marca todas las notificaciones del usuario como leídas.
func (uc *NotificationUseCase) MarkAllRead(userID string) error {
	return uc.notifRepo.MarkAllRead(userID)
}

// Delete borra una notificación del usuario.
func (uc *NotificationUseCase) Delete(userID, id string) error {
	return uc.notifRepo.Delete(userID, id)
}

func toNotificationResponse(n *entity.Notification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		ID:        n.ID,
		CarID:     n.CarID,
		Type:      n.Type,
		Message:   n.Message,
		Link:      n.Link,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
