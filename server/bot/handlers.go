package bot

import (
	"context"
	"fmt"
	"strings"

	errs "github.com/mojibrsm/snapclean/server/internal/errors"
)

// recentUsersInReport is how many recently registered users the admin panel lists.
const recentUsersInReport = 5

func (b *Bot) handleStart(ctx context.Context, evt *Event) error {
	name := evt.DisplayName
	if name == "" {
		name = "there"
	}
	welcome := fmt.Sprintf(
		"Hey %s! 👋\n\n"+
			"I'm SnapCleanBot. Just send me any photo, and I'll automatically remove the background for you!\n\n"+
			"Use the menu buttons below to change settings or get help.",
		name)
	_, err := b.transport.SendMenu(ctx, evt.ChatID, welcome)
	return err
}

func (b *Bot) handleHelp(ctx context.Context, evt *Event) error {
	help := "✨ *How to Use SnapCleanBot* ✨\n\n" +
		"It's simple! Just send any photo directly to this chat.\n\n" +
		"The bot will automatically process it and send back the image with the background removed.\n\n" +
		"*Menu Commands:*\n" +
		"*/quality*: Change output image quality (HD/Standard).\n" +
		"*/format*: Choose output format (PNG/JPG).\n" +
		"*/contact*: Get the developer's contact info.\n" +
		"*/help*: Shows this message again."
	_, err := b.transport.SendMenu(ctx, evt.ChatID, help)
	return err
}

func (b *Bot) handleContact(ctx context.Context, evt *Event) error {
	contact := fmt.Sprintf(
		"*Developer Contact*\n\n"+
			"Feel free to reach out to the developer for any inquiries:\n\n"+
			"✈️ *Telegram:* %s\n"+
			"📢 *Channel:* %s",
		b.profile.DeveloperHandle, b.profile.ChannelURL)
	_, err := b.transport.SendMenu(ctx, evt.ChatID, contact)
	return err
}

func (b *Bot) handleAdmin(ctx context.Context, evt *Event) error {
	if evt.UserID != b.profile.AdminUserID {
		return errs.UnauthorizedAdmin(evt.UserID)
	}

	summary := b.store.Summarize(recentUsersInReport)

	var sb strings.Builder
	fmt.Fprintf(&sb, "👑 *Admin Panel* 👑\n\n")
	fmt.Fprintf(&sb, "👥 *Total Users:* %d\n", summary.TotalUsers)
	fmt.Fprintf(&sb, "🔄 *Total Requests:* %d\n", summary.TotalRequests)
	if len(summary.Recent) > 0 {
		fmt.Fprintf(&sb, "\n*Recent Users:*\n")
		for _, u := range summary.Recent {
			name := u.DisplayName
			if name == "" {
				name = fmt.Sprintf("id %d", u.ID)
			}
			if u.Handle != "" {
				fmt.Fprintf(&sb, "• %s (@%s) — %d requests\n", name, u.Handle, u.Requests)
			} else {
				fmt.Fprintf(&sb, "• %s — %d requests\n", name, u.Requests)
			}
		}
	}

	_, err := b.transport.SendText(ctx, evt.ChatID, sb.String())
	return err
}
