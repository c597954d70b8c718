// Package primers registers preventers that eagerly load lazily initialized
// process-wide state from the standard library. Import it for its side
// effects:
//
//	import _ "github.com/bronystylecrazy/preventer/primers"
package primers

import (
	"context"
	"crypto/x509"
	"fmt"
	"mime"
	"os"
	"os/user"
	"time"

	"github.com/bronystylecrazy/preventer/preventer"
	"github.com/bronystylecrazy/preventer/resolver"
)

func init() {
	preventer.Register("certpool", func(preventer.Config) (preventer.Preventer, error) { return CertPool{}, nil })
	preventer.Register("mime", func(preventer.Config) (preventer.Preventer, error) { return MimeTypes{}, nil })
	preventer.Register("timezones", func(cfg preventer.Config) (preventer.Preventer, error) {
		return TimeZones{Names: cfg.TimeZones}, nil
	})
	preventer.Register("user", func(preventer.Config) (preventer.Preventer, error) { return CurrentUser{}, nil })
	preventer.Register("hostname", func(preventer.Config) (preventer.Preventer, error) { return Hostname{}, nil })
}

// CertPool loads the system certificate pool, which crypto/x509 caches on
// first use.
type CertPool struct{}

func (CertPool) Name() string { return "certpool" }

func (CertPool) Prevent(context.Context, resolver.Resolver) error {
	_, err := x509.SystemCertPool()
	return err
}

// MimeTypes loads the builtin and system MIME tables.
type MimeTypes struct{}

func (MimeTypes) Name() string { return "mime" }

func (MimeTypes) Prevent(context.Context, resolver.Resolver) error {
	mime.TypeByExtension(".html")
	return nil
}

// TimeZones loads the local zone and every named location.
type TimeZones struct {
	Names []string
}

func (TimeZones) Name() string { return "timezones" }

func (z TimeZones) Prevent(ctx context.Context, _ resolver.Resolver) error {
	_ = time.Local.String()
	for _, name := range z.Names {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := time.LoadLocation(name); err != nil {
			return fmt.Errorf("load location %q: %w", name, err)
		}
	}
	return nil
}

// CurrentUser resolves the current user, cached by os/user.
type CurrentUser struct{}

func (CurrentUser) Name() string { return "user" }

func (CurrentUser) Prevent(context.Context, resolver.Resolver) error {
	_, err := user.Current()
	return err
}

type Hostname struct{}

func (Hostname) Name() string { return "hostname" }

func (Hostname) Prevent(context.Context, resolver.Resolver) error {
	_, err := os.Hostname()
	return err
}

type funcPreventer struct {
	name string
	fn   preventer.Func
}

func (f funcPreventer) Name() string { return f.name }

func (f funcPreventer) Prevent(ctx context.Context, target resolver.Resolver) error {
	return f.fn(ctx, target)
}

// Func returns a named preventer running fn.
func Func(name string, fn func(ctx context.Context, target resolver.Resolver) error) preventer.Preventer {
	return funcPreventer{name: name, fn: fn}
}
