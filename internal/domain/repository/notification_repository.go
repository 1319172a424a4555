package repository

import "github.com/dventura/autogest-api/internal/domain/entity"

// NotificationRepository define el puerto de persistencia para Notification.
type NotificationRepository interface {
	Create(n *entity.Notification) error
	ListByUser(userID string, onlyUnread bool, limit, offset int) ([]*entity.Notification, error)
	// MarkRead marca como leída una notificación del usuario. Devuelve
	// ErrNotFound si no existe o pertenece a otro usuario.
	MarkRead(userID, id string) error
	MarkAllRead(userID string) error
	// Delete borra una notificación del usuario. Devuelve ErrNotFound si no
	// existe o pertenece a otro usuario.
	Delete(userID, id string) error
}
