package email

import (
	"crypto/tls"
	"errors"
	"net"
	"os"
	"time"

	"github.com/emersion/go-imap/v2/imapclient"
	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
)

// ReadSession is one authenticated IMAP connection with a folder selected.
// It lives for a single operation and must be closed exactly once; Close
// is idempotent and safe on a dead connection.
type ReadSession struct {
	client *imapclient.Client
	folder string
	closed bool
}

// Folder returns the mailbox selected for this session.
func (s *ReadSession) Folder() string { return s.folder }

// Close logs out and releases the connection. Calling it again is a no-op.
func (s *ReadSession) Close() {
	if s.closed {
		return
	}
	s.closed = true
	// Best effort: the server side may already be gone.
	_ = s.client.Logout().Wait()
	_ = s.client.Close()
}

// SendSession is one authenticated SMTP connection. Same lifecycle rules
// as ReadSession.
type SendSession struct {
	client *smtp.Client
	closed bool
}

// Close quits the SMTP conversation and releases the connection.
func (s *SendSession) Close() {
	if s.closed {
		return
	}
	s.closed = true
	_ = s.client.Quit()
}

// openReadSession dials the IMAP endpoint, authenticates, and selects the
// requested folder. It performs exactly one attempt; retry policy belongs
// to the caller. A timeout while establishing the session is a
// ConnectError, not an AuthError: credentials were never judged.
func (c *Client) openReadSession(folder string) (*ReadSession, error) {
	folder = folderOrDefault(folder)
	addr := c.cfg.IMAPAddr

	conn, err := c.dialIMAP(addr)
	if err != nil {
		return nil, &ConnectError{Addr: addr, Err: err}
	}

	ic := imapclient.New(conn, &imapclient.Options{WordDecoder: &headerDecoder})
	if err := ic.Login(c.cfg.User, c.cfg.Pass).Wait(); err != nil {
		_ = ic.Close()
		if isTimeoutErr(err) {
			return nil, &ConnectError{Addr: addr, Err: err}
		}
		return nil, &AuthError{User: c.cfg.User, Err: err}
	}

	if _, err := ic.Select(folder, nil).Wait(); err != nil {
		_ = ic.Logout().Wait()
		_ = ic.Close()
		if isTimeoutErr(err) {
			return nil, &ConnectError{Addr: addr, Err: err}
		}
		return nil, &FolderError{Folder: folder, Err: err}
	}

	return &ReadSession{client: ic, folder: folder}, nil
}

// openSendSession dials the SMTP submission endpoint, upgrades the channel
// via STARTTLS before authenticating, and authenticates with SASL PLAIN.
func (c *Client) openSendSession() (*SendSession, error) {
	addr := c.cfg.SMTPAddr

	conn, err := net.DialTimeout("tcp", addr, c.dialTimeout())
	if err != nil {
		return nil, &ConnectError{Addr: addr, Err: err}
	}

	var sc *smtp.Client
	if c.cfg.SMTPStartTLS {
		sc, err = smtp.NewClientStartTLS(conn, c.tlsConfig(addr))
		if err != nil {
			conn.Close()
			return nil, &ConnectError{Addr: addr, Err: err}
		}
	} else {
		sc = smtp.NewClient(conn)
	}
	sc.CommandTimeout = c.opTimeout()
	sc.SubmissionTimeout = c.opTimeout()

	auth := sasl.NewPlainClient("", c.cfg.User, c.cfg.Pass)
	if err := sc.Auth(auth); err != nil {
		_ = sc.Close()
		if isTimeoutErr(err) {
			return nil, &ConnectError{Addr: addr, Err: err}
		}
		return nil, &AuthError{User: c.cfg.User, Err: err}
	}

	return &SendSession{client: sc}, nil
}

// dialIMAP opens the read connection, with implicit TLS when configured.
// The returned conn carries a rolling I/O deadline so every protocol step
// after the dial stays bounded too.
func (c *Client) dialIMAP(addr string) (net.Conn, error) {
	dialer := &net.Dialer{Timeout: c.dialTimeout()}

	var conn net.Conn
	var err error
	if c.cfg.IMAPTLS {
		conn, err = tls.DialWithDialer(dialer, "tcp", addr, c.tlsConfig(addr))
	} else {
		conn, err = dialer.Dial("tcp", addr)
	}
	if err != nil {
		return nil, err
	}
	return &deadlineConn{Conn: conn, timeout: c.opTimeout()}, nil
}

// tlsConfig returns the TLS client configuration for addr.
func (c *Client) tlsConfig(addr string) *tls.Config {
	if c.cfg.TLSConfig != nil {
		return c.cfg.TLSConfig
	}
	host, _, _ := net.SplitHostPort(addr)
	return &tls.Config{ServerName: host}
}

func (c *Client) dialTimeout() time.Duration {
	if c.cfg.DialTimeout > 0 {
		return c.cfg.DialTimeout
	}
	return 30 * time.Second
}

func (c *Client) opTimeout() time.Duration {
	if c.cfg.OpTimeout > 0 {
		return c.cfg.OpTimeout
	}
	return 30 * time.Second
}

// deadlineConn refreshes the read/write deadline before every I/O so a
// stalled server fails the in-flight command instead of hanging the call.
type deadlineConn struct {
	net.Conn
	timeout time.Duration
}

func (c *deadlineConn) Read(b []byte) (int, error) {
	if err := c.Conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
		return 0, err
	}
	return c.Conn.Read(b)
}

func (c *deadlineConn) Write(b []byte) (int, error) {
	if err := c.Conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
		return 0, err
	}
	return c.Conn.Write(b)
}

// isTimeoutErr reports whether err is a deadline expiry anywhere in its
// chain.
func isTimeoutErr(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
