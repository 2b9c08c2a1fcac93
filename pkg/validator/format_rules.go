package validator

import (
	"net"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
)

var (
	alphanumericRegex  = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	alphaRegex         = regexp.MustCompile(`^[a-zA-Z]+$`)
	numericStringRegex = regexp.MustCompile(`^[0-9]+$`)
)

// ValidEmail validates an address with net/mail and requires a dotted domain.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			addr, err := mail.ParseAddress(strings.TrimSpace(value))
			if err != nil || addr.Address != strings.TrimSpace(value) {
				return false
			}
			local, domain, ok := strings.Cut(addr.Address, "@")
			if !ok || local == "" {
				return false
			}
			for part := range strings.SplitSeq(domain, ".") {
				if part == "" {
					return false
				}
			}
			return strings.Contains(domain, ".")
		},
		Error: newError(field, "must be a valid email address", "validation.email", nil),
	}
}

// ValidURL validates an absolute URL with a scheme and a host.
func ValidURL(field, value string) Rule {
	return Rule{
		Check: func() bool {
			u, err := url.ParseRequestURI(strings.TrimSpace(value))
			return err == nil && u.Scheme != "" && u.Host != ""
		},
		Error: newError(field, "must be a valid URL", "validation.url", nil),
	}
}

func ValidIP(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return net.ParseIP(value) != nil
		},
		Error: newError(field, "must be a valid IP address", "validation.ip", nil),
	}
}

func ValidIPv4(field, value string) Rule {
	return Rule{
		Check: func() bool {
			ip := net.ParseIP(value)
			return ip != nil && ip.To4() != nil && !strings.Contains(value, ":")
		},
		Error: newError(field, "must be a valid IPv4 address", "validation.ipv4", nil),
	}
}

// ValidIPv6 accepts IPv4-mapped addresses written in IPv6 notation.
func ValidIPv6(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return net.ParseIP(value) != nil && strings.Contains(value, ":")
		},
		Error: newError(field, "must be a valid IPv6 address", "validation.ipv6", nil),
	}
}

// ValidMAC accepts the notations understood by net.ParseMAC.
func ValidMAC(field, value string) Rule {
	return Rule{
		Check: func() bool {
			_, err := net.ParseMAC(value)
			return err == nil
		},
		Error: newError(field, "must be a valid MAC address", "validation.mac", nil),
	}
}

func ValidAlphanumeric(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return alphanumericRegex.MatchString(value)
		},
		Error: newError(field, "must contain only letters and numbers", "validation.alphanumeric", nil),
	}
}

func ValidAlpha(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return alphaRegex.MatchString(value)
		},
		Error: newError(field, "must contain only letters", "validation.alpha", nil),
	}
}

func ValidNumericString(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return numericStringRegex.MatchString(value)
		},
		Error: newError(field, "must contain only digits", "validation.numeric_string", nil),
	}
}

func ValidASCII(field, value string) Rule {
	return Rule{
		Check: func() bool {
			for _, r := range value {
				if r > 127 {
					return false
				}
			}
			return true
		},
		Error: newError(field, "must contain only ASCII characters", "validation.ascii", nil),
	}
}
