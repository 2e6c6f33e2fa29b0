// Package validators concentra validações que vão além do binding do
// gin. Hoje: checagem de domínio de e-mail no cadastro de tutores e
// veterinários.
package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid confere se o domínio do e-mail existe de fato
// (MX, ou ao menos um A/AAAA). Barra typo de domínio no cadastro sem
// mandar e-mail de confirmação.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	// domínio sem MX ainda pode receber pelo registro A/AAAA
	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
