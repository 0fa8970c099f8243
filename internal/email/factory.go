package email

import (
	"fmt"

	"github.com/nfrund/userdesk/internal/config"
	"github.com/nfrund/userdesk/internal/domain"
	"github.com/spf13/afero"
)

// NewEmailService creates and returns an email sender based on the configuration.
func NewEmailService(cfg config.Provider) (domain.EmailSender, error) {
	switch cfg.GetEmailProvider() {
	case "log":
		return &LogSender{senderAddress: cfg.GetEmailSender()}, nil
	case "resend":
		if cfg.GetEmailAPIKey() == "" {
			return nil, fmt.Errorf("email provider is 'resend' but EMAIL_API_KEY is not set")
		}
		return NewResendSender(cfg.GetEmailAPIKey(), cfg.GetEmailSender()), nil
	case "smtp":
		if cfg.GetSMTPHost() == "" {
			return nil, fmt.Errorf("email provider is 'smtp' but SMTP_HOST is not set")
		}
		return NewSMTPSender(cfg.GetSMTPHost(), cfg.GetSMTPPort(), cfg.GetSMTPUser(), cfg.GetSMTPPass(), cfg.GetEmailSender()), nil
	case "file":
		return NewFileSender(afero.NewOsFs(), cfg.GetEmailOutboxDir(), cfg.GetEmailSender()), nil
	default:
		return nil, fmt.Errorf("unknown email provider: %s", cfg.GetEmailProvider())
	}
}
