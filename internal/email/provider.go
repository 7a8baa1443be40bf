package email

// Email - простое исходящее письмо
type Email struct {
	To      []string
	Subject string
	Body    string
	IsHTML  bool
}

// Provider определяет интерфейс для отправки email
type Provider interface {
	// Send отправляет письмо
	Send(email *Email) error

	// SendStatusUpdate - уведомление заявителю о смене статуса отклика
	SendStatusUpdate(to, jobTitle, status string) error

	// Close закрывает соединение с провайдером
	Close() error
}

// NoopProvider используется, когда email отключен конфигом
type NoopProvider struct{}

func NewNoopProvider() *NoopProvider {
	return &NoopProvider{}
}

func (p *NoopProvider) Send(email *Email) error { return nil }

func (p *NoopProvider) SendStatusUpdate(to, jobTitle, status string) error { return nil }

func (p *NoopProvider) Close() error { return nil }
