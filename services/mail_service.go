package services

import (
	"fmt"

	"mes-app/config"
	"mes-app/models"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"
)

// MailService sends operational notification mail. It is a no-op when no mail
// host is configured.
type MailService struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

func NewMailService() *MailService {
	if config.MailHost == "" || config.MailTo == "" {
		return &MailService{}
	}
	return &MailService{
		dialer: gomail.NewDialer(config.MailHost, config.MailPort, config.MailUser, config.MailPassword),
		from:   config.MailFrom,
		to:     config.MailTo,
	}
}

// SendLowStockAlert notifies warehouse staff that a material has dropped below
// its safety stock. Failures are logged, never propagated: stock mutations
// must not fail because the mail server is down.
func (m *MailService) SendLowStockAlert(material *models.Material) {
	if m.dialer == nil {
		return
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", fmt.Sprintf("Low stock alert: %s (%s)", material.Name, material.Code))
	msg.SetBody("text/plain", fmt.Sprintf(
		"Material %s (%s) is below safety stock.\nCurrent stock: %d %s\nSafety stock: %d %s\n",
		material.Name, material.Code,
		material.CurrentStock, material.Unit,
		material.SafetyStock, material.Unit,
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		log.Error().Err(err).Str("material", material.Code).Msg("failed to send low stock alert")
	}
}
