package email

import (
	"errors"
	"fmt"
	"mime"
	"strings"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-message/charset"
)

// dateLayout is the format used for the Date field exposed to callers.
const dateLayout = time.RFC1123Z

var errMissingEnvelope = errors.New("message has no envelope")

// headerDecoder decodes RFC 2047 encoded-words, including non-UTF-8
// charsets via the go-message charset table.
var headerDecoder = mime.WordDecoder{CharsetReader: charset.Reader}

// decodeHeader decodes any encoded-words in a header value. Values the
// decoder cannot handle are returned as-is rather than dropped.
func decodeHeader(value string) string {
	decoded, err := headerDecoder.DecodeHeader(value)
	if err != nil {
		return value
	}
	return decoded
}

// formatAddress renders one address as "Name <addr>" or bare addr.
func formatAddress(addr imap.Address) string {
	name := decodeHeader(addr.Name)
	if name != "" {
		return fmt.Sprintf("%s <%s>", name, addr.Addr())
	}
	return addr.Addr()
}

// formatAddressList renders an address list as a comma-separated string.
// An absent header normalizes to the empty string.
func formatAddressList(addrs []imap.Address) string {
	if len(addrs) == 0 {
		return ""
	}
	parts := make([]string, len(addrs))
	for i, a := range addrs {
		parts[i] = formatAddress(a)
	}
	return strings.Join(parts, ", ")
}
