package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// SensitiveFields is the set of attribute keys that identify the person
// behind an appraisal. Their values never reach the log output.
var SensitiveFields = map[string]bool{
	"owner":    true,
	"customer": true,
	"contact":  true,
}

// emailPattern matches e-mail addresses that leak into free-form values such
// as piece names ("ring for jane@example.com").
var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

// bearerPattern matches "Bearer <token>" strings, e.g. OTLP exporter headers.
var bearerPattern = regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9\-._~+/]+=*`)

// fixedRedactOptions is the number of masq options beyond the dynamic
// SensitiveFields set (2 field names + 1 prefix + 2 regexes).
const fixedRedactOptions = 5

// newRedactAttr returns a masq-powered ReplaceAttr function for use in
// slog.HandlerOptions.
func newRedactAttr() func([]string, slog.Attr) slog.Attr {
	opts := make([]masq.Option, 0, fixedRedactOptions+len(SensitiveFields))

	for name := range SensitiveFields {
		opts = append(opts, masq.WithFieldName(name))
	}

	opts = append(opts,
		masq.WithFieldName("secret"),
		masq.WithFieldName("token"),
		masq.WithFieldPrefix("owner_"),
		masq.WithRegex(emailPattern),
		masq.WithRegex(bearerPattern),
	)

	return masq.New(opts...)
}
