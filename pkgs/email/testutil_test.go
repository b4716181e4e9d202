package email

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
	"github.com/emersion/go-imap/v2/imapserver"
	"github.com/emersion/go-imap/v2/imapserver/imapmemserver"
)

const (
	testUser = "testuser@example.com"
	testPass = "testpass"
)

// newTestIMAPServer starts an in-memory IMAP server with an INBOX and
// returns the listen address.
func newTestIMAPServer(t *testing.T) string {
	t.Helper()
	return newIMAPServer(t, nil)
}

// newTestIMAPServerTLS is newTestIMAPServer behind implicit TLS with a
// self-signed certificate.
func newTestIMAPServerTLS(t *testing.T) string {
	t.Helper()
	return newIMAPServer(t, newTestTLSConfig(t))
}

func newIMAPServer(t *testing.T, tlsCfg *tls.Config) string {
	t.Helper()

	memSrv := imapmemserver.New()
	user := imapmemserver.NewUser(testUser, testPass)
	user.Create("INBOX", nil)
	memSrv.AddUser(user)

	srv := imapserver.New(&imapserver.Options{
		NewSession: func(_ *imapserver.Conn) (imapserver.Session, *imapserver.GreetingData, error) {
			return memSrv.NewSession(), nil, nil
		},
		InsecureAuth: true,
		Caps: imap.CapSet{
			imap.CapIMAP4rev1: {},
		},
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	if tlsCfg != nil {
		ln = tls.NewListener(ln, tlsCfg)
	}

	go srv.Serve(ln)
	t.Cleanup(func() { srv.Close() })

	return ln.Addr().String()
}

// appendTestMail appends a raw RFC 5322 message to the given mailbox via a
// direct IMAP client, with optional flags.
func appendTestMail(t *testing.T, addr, mailbox, rawMsg string, flags ...imap.Flag) {
	t.Helper()

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatal(err)
	}
	c := imapclient.New(conn, nil)
	if err := c.Login(testUser, testPass).Wait(); err != nil {
		t.Fatal(err)
	}

	var options *imap.AppendOptions
	if len(flags) > 0 {
		options = &imap.AppendOptions{Flags: flags}
	}

	appendCmd := c.Append(mailbox, int64(len(rawMsg)), options)
	if _, err := appendCmd.Write([]byte(rawMsg)); err != nil {
		t.Fatal(err)
	}
	if err := appendCmd.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := appendCmd.Wait(); err != nil {
		t.Fatal(err)
	}
	c.Close()
}

// newTestClient creates a Client wired to the given test endpoints with
// TLS disabled and logging discarded.
func newTestClient(imapAddr, smtpAddr string) *Client {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(ClientConfig{
		User:     testUser,
		Pass:     testPass,
		IMAPAddr: imapAddr,
		SMTPAddr: smtpAddr,
	}, logger)
}

// newTestTLSConfig generates a self-signed TLS config for mock servers.
func newTestTLSConfig(t *testing.T) *tls.Config {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		DNSNames:     []string{"localhost", "127.0.0.1"},
		IPAddresses:  []net.IP{net.IPv4(127, 0, 0, 1)},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(24 * time.Hour),
	}
	certDER, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		t.Fatal(err)
	}

	cert := tls.Certificate{
		Certificate: [][]byte{certDER},
		PrivateKey:  key,
	}
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
	}
}

// insecureTLSConfig returns a client-side TLS config that skips verification.
func insecureTLSConfig() *tls.Config {
	return &tls.Config{InsecureSkipVerify: true}
}

// seenFlag is the flag set for messages appended as already read.
func seenFlag() []imap.Flag {
	return []imap.Flag{imap.FlagSeen}
}

// makeTestMail builds a minimal plain-text RFC 5322 message.
func makeTestMail(from, subject, body string) string {
	return "MIME-Version: 1.0\r\n" +
		"From: " + from + "\r\n" +
		"To: rcpt@example.com\r\n" +
		"Subject: " + subject + "\r\n" +
		"Date: Mon, 10 Feb 2026 08:00:00 +0000\r\n" +
		fmt.Sprintf("Message-Id: <%s-%s@example.com>\r\n", from, strings.ReplaceAll(subject, " ", "-")) +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"\r\n" +
		body
}

// testMailMultipart has a text/plain and a text/html part.
const testMailMultipart = "MIME-Version: 1.0\r\n" +
	"From: sender@example.com\r\n" +
	"To: rcpt@example.com\r\n" +
	"Subject: Multipart Test\r\n" +
	"Date: Mon, 10 Feb 2026 08:00:00 +0000\r\n" +
	"Message-Id: <test-multi@example.com>\r\n" +
	"Content-Type: multipart/alternative; boundary=\"TESTBOUNDARY\"\r\n" +
	"\r\n" +
	"--TESTBOUNDARY\r\n" +
	"Content-Type: text/plain; charset=utf-8\r\n" +
	"\r\n" +
	"Plain text body\r\n" +
	"--TESTBOUNDARY\r\n" +
	"Content-Type: text/html; charset=utf-8\r\n" +
	"\r\n" +
	"<p>HTML body</p>\r\n" +
	"--TESTBOUNDARY--\r\n"

// testMailHTMLOnly has a single text/html part and no plain alternative.
const testMailHTMLOnly = "MIME-Version: 1.0\r\n" +
	"From: sender@example.com\r\n" +
	"To: rcpt@example.com\r\n" +
	"Subject: HTML Only\r\n" +
	"Date: Mon, 10 Feb 2026 08:00:00 +0000\r\n" +
	"Message-Id: <test-html@example.com>\r\n" +
	"Content-Type: text/html; charset=utf-8\r\n" +
	"\r\n" +
	"<html><body><p>Hello from <b>HTML</b></p></body></html>"
