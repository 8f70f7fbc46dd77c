// Package interaction turns inbound chat-platform payloads into one
// canonical Invocation and dispatches it to the reminder usecases.
package interaction

import (
	"strings"
	"time"

	"forget-bot/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidInvocation = errs.New("invalid invocation")

type Kind string

const (
	KindPing      Kind = "ping"
	KindCommand   Kind = "command"
	KindComponent Kind = "component"
	KindModal     Kind = "modal"
)

// Invocation is what every inbound transport is normalized into.
type Invocation struct {
	Kind Kind `validate:"required,oneof=ping command component modal"`
	// Name is the command name, or the custom id of a component or modal.
	Name      string `validate:"required_unless=Kind ping,max=100"`
	UserID    string `validate:"required_unless=Kind ping,snowflake"`
	GuildID   string `validate:"snowflake"`
	ChannelID string `validate:"snowflake"`
	// Strings holds string options and modal text fields by name.
	Strings map[string]string `validate:"dive,max=4000"`
	// Bools holds boolean options that were actually supplied.
	Bools  map[string]bool
	Target *TargetMessage
	SentAt time.Time
}

// TargetMessage is the message a context-menu command was invoked on.
type TargetMessage struct {
	ID        string `validate:"required,snowflake"`
	ChannelID string `validate:"required,snowflake"`
	GuildID   string `validate:"snowflake"`
	Content   string `validate:"max=4000"`
}

func (inv Invocation) String(name string) string {
	return strings.TrimSpace(inv.Strings[name])
}

// Bool returns def when the option was not supplied.
func (inv Invocation) Bool(name string, def bool) bool {
	if v, ok := inv.Bools[name]; ok {
		return v
	}
	return def
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("snowflake", func(fl validator.FieldLevel) bool {
		return isSnowflake(fl.Field().String())
	})
	return v
}

// empty is accepted; required is a separate rule
func isSnowflake(s string) bool {
	if len(s) > 20 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (inv Invocation) Validate() error {
	if err := validate.Struct(inv); err != nil {
		return errs.Wrap(errs.Mark(err, ErrInvalidInvocation), "validate invocation")
	}
	return nil
}
