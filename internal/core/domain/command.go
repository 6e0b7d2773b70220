package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type CommandResponder interface {
	Respond(ctx context.Context, timeout time.Duration, message *Message) error
	GetCommand() string
}

type CommandRegistry struct {
	commands map[string]CommandResponder
}

func (c *CommandRegistry) Register(handler CommandResponder) {
	if c.commands == nil {
		c.commands = make(map[string]CommandResponder)
	}

	log.Info().Str("handler", handler.GetCommand()).Msg("adding command handler to registry")
	c.commands[handler.GetCommand()] = handler
}

func (c *CommandRegistry) Get(command string) (CommandResponder, error) {
	log.Debug().Str("command", command).Msg("fetching command handler from registry")

	if c.commands == nil {
		return nil, errors.New("can't fetch commands, registry not initialized")
	}

	handler, ok := c.commands[command]
	if !ok {
		return nil, ErrCommandNotFound
	}

	return handler, nil
}

func (c *CommandRegistry) ListCommands() []string {
	keys := make([]string, len(c.commands))

	i := 0
	for k := range c.commands {
		keys[i] = k
		i++
	}

	return keys
}

// ParseCommand returns the leading command token of a message, without a
// trailing @botname suffix. Empty string if the text carries no command.
func ParseCommand(args string) string {
	command := strings.Split(args, " ")[0]
	if !strings.HasPrefix(command, "/") {
		return ""
	}

	command, _, _ = strings.Cut(command, "@")
	return command
}

func ParseCommandArgs(args string) string {
	command := strings.Split(args, " ")
	return strings.Join(command[1:], " ")
}
