package notify

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentAD25/nt8-status-tools/pkg/config"
	"github.com/agentAD25/nt8-status-tools/pkg/log"
	"github.com/agentAD25/nt8-status-tools/pkg/metrics"
	"github.com/agentAD25/nt8-status-tools/pkg/types"
)

// Emailer sends change notification emails, rate-limited by a cooldown so a
// flapping strategy cannot flood a mailbox. Only the poll loop calls it, so
// no locking around lastSent.
type Emailer struct {
	cfg      config.EmailConfig
	logger   zerolog.Logger
	lastSent time.Time
}

// NewEmailer creates an Emailer from config. Use Enabled to check whether
// sending is possible before calling Notify.
func NewEmailer(cfg config.EmailConfig) *Emailer {
	return &Emailer{
		cfg:    cfg,
		logger: log.WithComponent("notify"),
	}
}

// Enabled reports whether change emails are both requested and sendable.
func (e *Emailer) Enabled() bool {
	return e.cfg.OnChange &&
		e.cfg.SMTPHost != "" &&
		e.cfg.FromAddr != "" &&
		len(e.cfg.ToAddrs) > 0
}

// Notify sends a change email for rec unless still inside the cooldown
// window. Failures are logged and swallowed; notification is never fatal.
func (e *Emailer) Notify(rec types.StatusRecord, logPath string) {
	if !e.Enabled() {
		return
	}
	if !e.lastSent.IsZero() && time.Since(e.lastSent) < e.cfg.Cooldown {
		e.logger.Debug().Str("name", rec.Name).Msg("email suppressed by cooldown")
		return
	}

	state := "DISABLED"
	if rec.Enabled {
		state = "ENABLED"
	}
	subject := fmt.Sprintf("[NT8 Strategy Status Watcher] Change: %s %s", rec.Name, state)
	body := fmt.Sprintf(
		"%s Strategy status changed\nName: %s\nInstrument: %s\nEnabled: %t\nConnection: %s\nLog: %s\n",
		time.Now().Format("2006-01-02 15:04:05"),
		rec.Name, rec.Instrument, rec.Enabled, rec.Connection, logPath,
	)

	if err := e.send(subject, body); err != nil {
		e.logger.Error().Err(err).Msg("email notification failed")
		return
	}
	e.lastSent = time.Now()
	metrics.EmailsSent.Inc()
	e.logger.Info().Str("name", rec.Name).Str("state", state).Msg("change email sent")
}

func (e *Emailer) send(subject, body string) error {
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		e.cfg.FromAddr, strings.Join(e.cfg.ToAddrs, ", "), subject, body,
	)

	addr := fmt.Sprintf("%s:%d", e.cfg.SMTPHost, e.cfg.SMTPPort)
	auth := smtp.PlainAuth("", e.cfg.Username, e.cfg.Password, e.cfg.SMTPHost)

	if strings.EqualFold(e.cfg.Mode, "ssl") {
		return e.sendSSL(addr, auth, []byte(msg))
	}
	// STARTTLS: smtp.SendMail upgrades the connection when the server
	// advertises the extension.
	return smtp.SendMail(addr, auth, e.cfg.FromAddr, e.cfg.ToAddrs, []byte(msg))
}

// sendSSL speaks SMTP over an implicit TLS connection (typically port 465).
func (e *Emailer) sendSSL(addr string, auth smtp.Auth, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: e.cfg.SMTPHost})
	if err != nil {
		return fmt.Errorf("tls dial %s: %w", addr, err)
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, e.cfg.SMTPHost)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.Auth(auth); err != nil {
		return err
	}
	if err := c.Mail(e.cfg.FromAddr); err != nil {
		return err
	}
	for _, to := range e.cfg.ToAddrs {
		if err := c.Rcpt(to); err != nil {
			return err
		}
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}
