package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"mime/quotedprintable"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNoRecipient is returned when a message has no valid recipient address.
var ErrNoRecipient = errors.New("message has no valid recipient")

// Mailer hands a composed message to the mail relay.
type Mailer interface {
	Send(ctx context.Context, msg *Message) error
}

// SMTPConfig configures the SMTP relay.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	FromName string
	Timeout  time.Duration
}

// SMTPDispatcher delivers messages over SMTP. Port 465 uses implicit TLS;
// any other port upgrades with STARTTLS when the server offers it.
type SMTPDispatcher struct {
	cfg  SMTPConfig
	from mail.Address
	now  func() time.Time
}

// NewSMTPDispatcher creates a dispatcher. The authenticated account is the sender.
func NewSMTPDispatcher(cfg SMTPConfig) *SMTPDispatcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &SMTPDispatcher{
		cfg:  cfg,
		from: mail.Address{Name: cfg.FromName, Address: cfg.Username},
		now:  time.Now,
	}
}

// From returns the sender address as it appears in the From header.
func (d *SMTPDispatcher) From() string {
	return d.from.String()
}

// Send delivers msg. The call is bounded by ctx and the configured timeout.
func (d *SMTPDispatcher) Send(ctx context.Context, msg *Message) error {
	to, err := mail.ParseAddress(msg.To)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoRecipient, err)
	}

	ctx, cancel := context.WithTimeout(ctx, d.cfg.Timeout)
	defer cancel()

	conn, err := d.dial(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer func() { _ = conn.Close() }()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, d.cfg.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer func() { _ = client.Close() }()

	if _, isTLS := conn.(*tls.Conn); !isTLS {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(d.tlsConfig()); err != nil {
				return fmt.Errorf("failed to start TLS: %w", err)
			}
		}
	}

	if ok, _ := client.Extension("AUTH"); ok && d.cfg.Username != "" && d.cfg.Password != "" {
		auth := smtp.PlainAuth("", d.cfg.Username, d.cfg.Password, d.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	if err := client.Mail(d.from.Address); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to.Address); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	body, err := BuildMIME(&d.from, to, msg, d.now())
	if err != nil {
		return err
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to start message: %w", err)
	}
	if _, err := writer.Write(body); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close message: %w", err)
	}

	// The relay has accepted the message once DATA closes.
	_ = client.Quit()
	return nil
}

func (d *SMTPDispatcher) dial(ctx context.Context) (net.Conn, error) {
	addr := net.JoinHostPort(d.cfg.Host, strconv.Itoa(d.cfg.Port))
	dialer := &net.Dialer{Timeout: d.cfg.Timeout}
	if d.cfg.Port == 465 {
		tlsDialer := &tls.Dialer{NetDialer: dialer, Config: d.tlsConfig()}
		return tlsDialer.DialContext(ctx, "tcp", addr)
	}
	return dialer.DialContext(ctx, "tcp", addr)
}

func (d *SMTPDispatcher) tlsConfig() *tls.Config {
	return &tls.Config{
		ServerName: d.cfg.Host,
		MinVersion: tls.VersionTLS12,
	}
}

// BuildMIME renders msg as a single-part HTML email with encoded headers.
func BuildMIME(from, to *mail.Address, msg *Message, now time.Time) ([]byte, error) {
	var buf bytes.Buffer

	domain := "localhost"
	if at := strings.LastIndexByte(from.Address, '@'); at >= 0 {
		domain = from.Address[at+1:]
	}

	fmt.Fprintf(&buf, "From: %s\r\n", from.String())
	fmt.Fprintf(&buf, "To: %s\r\n", to.String())
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", now.Format(time.RFC1123Z))
	fmt.Fprintf(&buf, "Message-ID: <%s@%s>\r\n", uuid.NewString(), domain)
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	buf.WriteString("Content-Transfer-Encoding: quoted-printable\r\n")
	buf.WriteString("\r\n")

	qp := quotedprintable.NewWriter(&buf)
	if _, err := qp.Write([]byte(msg.HTML)); err != nil {
		return nil, fmt.Errorf("failed to encode message body: %w", err)
	}
	if err := qp.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode message body: %w", err)
	}
	buf.WriteString("\r\n")

	return buf.Bytes(), nil
}
