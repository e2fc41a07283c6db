package bot

import "strings"

// Command enumerates the text commands the bot understands.
type Command int

const (
	CommandNone Command = iota
	CommandStart
	CommandHelp
	CommandContact
	CommandAdmin
	CommandQuality
	CommandFormat
	CommandCancel
)

var commandNames = map[Command]string{
	CommandNone:    "none",
	CommandStart:   "start",
	CommandHelp:    "help",
	CommandContact: "contact",
	CommandAdmin:   "admin",
	CommandQuality: "quality",
	CommandFormat:  "format",
	CommandCancel:  "cancel",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

var commandsByName = map[string]Command{
	"start":   CommandStart,
	"help":    CommandHelp,
	"contact": CommandContact,
	"admin":   CommandAdmin,
	"quality": CommandQuality,
	"format":  CommandFormat,
	"cancel":  CommandCancel,
}

// ParseCommand maps message text of the form "/name" or "/name@BotHandle" to
// a Command. Anything else is CommandNone.
func ParseCommand(text string) Command {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return CommandNone
	}
	name := strings.TrimPrefix(text, "/")
	if i := strings.IndexAny(name, " @"); i >= 0 {
		name = name[:i]
	}
	if cmd, ok := commandsByName[strings.ToLower(name)]; ok {
		return cmd
	}
	return CommandNone
}
