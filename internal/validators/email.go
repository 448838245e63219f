package validators

import (
	"context"
	"net"
	"net/mail"
	"strings"
	"time"
)

const lookupTimeout = 3 * time.Second

// EmailDomain extracts the lower-cased domain of a syntactically valid
// address, or "" when the address is malformed.
func EmailDomain(email string) string {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ""
	}
	at := strings.LastIndex(addr.Address, "@")
	domain := strings.ToLower(addr.Address[at+1:])
	if !strings.Contains(domain, ".") || strings.HasSuffix(domain, ".") {
		return ""
	}
	return domain
}

// IsEmailDomainValid accepts an address whose domain publishes MX records or,
// failing that, resolves to an IP.
func IsEmailDomainValid(email string) bool {
	domain := EmailDomain(email)
	if domain == "" {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	r := net.DefaultResolver

	if mx, err := r.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := r.LookupIPAddr(ctx, domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
