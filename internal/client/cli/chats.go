package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/meggy/internal/client/models"
)

var errNoOpenChat = errors.New("no open conversation; use 'open <id>' or 'newchat'")

func (a *App) ListChats(ctx context.Context) error {
	convs, err := a.convs.List(ctx)
	if err != nil {
		return err
	}
	if len(convs) == 0 {
		fmt.Fprintln(a.out, "No conversations yet. Start one with 'newchat'.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tMESSAGES\tUPDATED\tLAST")
	for _, c := range convs {
		count := "-"
		if c.MessageCount != nil {
			count = fmt.Sprint(*c.MessageCount)
		}
		last := ""
		if c.LastMessage != nil {
			last = truncate(oneLine(c.LastMessage.Content), 40)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Title, count, c.UpdatedAt.Local().Format("2006-01-02 15:04"), last)
	}
	return tw.Flush()
}

// NewChat starts a conversation with agentID, or with the default agent when
// agentID is empty, and opens it.
func (a *App) NewChat(ctx context.Context, agentID string) error {
	if agentID == "" {
		def, err := a.agents.Default(ctx)
		if err != nil {
			return err
		}
		agentID = def.ID
	}

	conv, err := a.convs.Create(ctx, models.CreateConversationRequest{Agent: agentID})
	if err != nil {
		return err
	}
	a.setOpenChat(conv.ID)
	fmt.Fprintf(a.out, "Opened conversation %q (%s). Type 'say <text>' to chat.\n", conv.Title, conv.ID)
	return nil
}

// OpenChat makes id the target of 'say' and prints its history.
func (a *App) OpenChat(ctx context.Context, id string) error {
	conv, err := a.convs.Get(ctx, id)
	if err != nil {
		return err
	}
	a.setOpenChat(conv.ID)
	fmt.Fprintf(a.out, "Opened conversation %q.\n", conv.Title)
	return a.History(ctx)
}

func (a *App) RenameChat(ctx context.Context, id string) error {
	title, err := getSimpleText(a.reader, "New title", a.out)
	if err != nil {
		return err
	}
	conv, err := a.convs.Update(ctx, id, models.UpdateConversationRequest{Title: &title})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Renamed conversation to %q.\n", conv.Title)
	return nil
}

func (a *App) RemoveChat(ctx context.Context, id string) error {
	if err := a.convs.Delete(ctx, id); err != nil {
		return err
	}
	if a.getOpenChat() == id {
		a.setOpenChat("")
	}
	fmt.Fprintf(a.out, "Deleted conversation %s.\n", id)
	return nil
}

// Say sends text to the open conversation and prints the reply.
func (a *App) Say(ctx context.Context, text string) error {
	id := a.getOpenChat()
	if id == "" {
		return errNoOpenChat
	}

	resp, err := a.convs.SendMessage(ctx, id, models.SendMessageRequest{Content: text})
	if err != nil {
		return err
	}
	printMessage(a, resp.AssistantMessage)
	return nil
}

func (a *App) History(ctx context.Context) error {
	id := a.getOpenChat()
	if id == "" {
		return errNoOpenChat
	}

	msgs, err := a.convs.Messages(ctx, id)
	if err != nil {
		return err
	}
	if len(msgs) == 0 {
		fmt.Fprintln(a.out, "(no messages yet)")
		return nil
	}
	for _, m := range msgs {
		printMessage(a, m)
	}
	return nil
}

func printMessage(a *App, m models.Message) {
	fmt.Fprintf(a.out, "%s> %s\n", m.Role, m.Content)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
