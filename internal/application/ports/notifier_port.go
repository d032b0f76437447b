package ports

import "context"

// Notifier define el puerto de salida para notificaciones por correo.
// Cualquier adaptador (SendGrid, SMTP, mock) debe implementar esta interfaz.
// Siguiendo el principio de inversión de dependencias (DIP), la aplicación
// solo conoce este contrato, no la implementación concreta.
type Notifier interface {
	// SendWelcome envía las credenciales iniciales a un dueño recién creado
	// durante el check-in. El contexto debe llevar un timeout para evitar
	// bloqueos en llamadas externas.
	SendWelcome(ctx context.Context, email, name, tempPassword string) error
}
