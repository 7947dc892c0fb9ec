// Copyright (c) 2025 SynBalance
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors explains transport failures to the user.
package httperrors

import (
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"syscall"

	"github.com/pterm/pterm"
)

// Cause is the diagnosed class of a network failure.
type Cause int

const (
	Generic Cause = iota
	Timeout
	DNS
	ConnectionRefused
	TLS
	ServerError
)

// Diagnose classifies err. Checks run from the most to the least specific.
func Diagnose(err error) Cause {
	switch {
	case err == nil:
		return Generic
	case isTimeoutError(err):
		return Timeout
	case isDNSError(err):
		return DNS
	case isConnectionRefusedError(err):
		return ConnectionRefused
	case isSSLError(err):
		return TLS
	case isServerError(err.Error()):
		return ServerError
	default:
		return Generic
	}
}

// FormatNetworkError prints a diagnosis of err to standard output and returns
// it wrapped for logging.
func FormatNetworkError(err error, context string) error {
	if err == nil {
		return nil
	}
	Render(nil, err, context)
	return fmt.Errorf("network error: %w", err)
}

// Render writes the diagnosis of err to w. A nil w means standard output.
func Render(w io.Writer, err error, context string) {
	p := func(format string, a ...any) {
		if w == nil {
			pterm.Printf(format, a...)
			return
		}
		fmt.Fprintf(w, format, a...)
	}

	switch Diagnose(err) {
	case Timeout:
		p("⏱️  Tempo esgotado ao %s\n\n", context)
		p("O servidor demorou demais para responder. Possíveis causas:\n")
		p("  • Conexão lenta\n")
		p("  • Backends sobrecarregados atrás do proxy\n")
		p("  • Firewall bloqueando a conexão\n\n")
	case DNS:
		p("🌐 Não foi possível resolver o endereço do servidor ao %s\n\n", context)
		p("Verifique a URL configurada (--url ou SYNBALANCE_URL) e as configurações de DNS.\n\n")
	case ConnectionRefused:
		p("🚫 Conexão recusada ao %s\n\n", context)
		p("Nada está escutando no endereço configurado. Possíveis causas:\n")
		p("  • O proxy ou os backends não estão rodando\n")
		p("  • Porta ou endereço incorretos\n\n")
	case TLS:
		p("🔒 Falha na conexão segura ao %s\n\n", context)
		p("Não foi possível estabelecer HTTPS. Verifique o certificado do proxy e o relógio do sistema.\n\n")
	case ServerError:
		p("⚠️  Erro no servidor ao %s\n\n", context)
		p("O proxy respondeu com erro; provavelmente nenhum backend está disponível.\n\n")
	default:
		p("❌ Não foi possível falar com o SynBalance ao %s\n\n", context)
		details := err.Error()
		if len(details) > 100 {
			details = details[:100] + "..."
		}
		p("Detalhes técnicos: %s\n\n", details)
	}
}

// isTimeoutError checks if the error is a timeout error.
func isTimeoutError(err error) bool {
	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded") {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// isDNSError checks if the error is a DNS resolution error.
func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

// isConnectionRefusedError checks if the error is a connection refused error.
func isConnectionRefusedError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

// isSSLError checks if the error is an SSL/TLS error.
func isSSLError(err error) bool {
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509") ||
		strings.Contains(errStr, "certificate") ||
		strings.Contains(errStr, "handshake")
}

// isServerError checks if the error indicates a server-side problem (5xx errors).
func isServerError(errStr string) bool {
	lower := strings.ToLower(errStr)
	for _, s := range []string{"500", "502", "503", "504", "bad gateway", "service unavailable", "gateway timeout"} {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}
