package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/kankrittapon/calendar/internal/config"
	"github.com/kankrittapon/calendar/internal/domain"
	"github.com/kankrittapon/calendar/internal/domain/entity"
	"github.com/kankrittapon/calendar/internal/domain/service"
	"github.com/kankrittapon/calendar/internal/handlers"
)

type Context struct {
	Config   *config.Config
	Services *service.Instance
}

type MigrateCmd struct{}

// Run is a no-op beyond startup, which always migrates
func (c *MigrateCmd) Run(ctx *Context) error {
	fmt.Printf("Migrations applied to %s\n", ctx.Config.DatabasePath)
	return nil
}

type SeedCmd struct{}

func (c *SeedCmd) Run(ctx *Context) error {
	if err := ctx.Services.Admin.Seed(context.Background()); err != nil {
		return err
	}
	fmt.Println("Categories seeded")
	return nil
}

type UsersCmd struct{}

func (c *UsersCmd) Run(ctx *Context) error {
	users, err := ctx.Services.Admin.ListUsers(context.Background())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tROLE\tSLACK ID\tNAME")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, u.Role, u.MessagingID, u.Name)
	}
	return w.Flush()
}

type ContactsCmd struct{}

func (c *ContactsCmd) Run(ctx *Context) error {
	contacts, err := ctx.Services.Admin.ListContacts(context.Background())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SLACK ID\tNAME\tFIRST SEEN")
	for _, contact := range contacts {
		fmt.Fprintf(w, "%s\t%s\t%s\n", contact.MessagingID, contact.DisplayName, contact.CreatedAt.Format(time.DateTime))
	}
	return w.Flush()
}

type SetBossCmd struct {
	UserID string `arg:"" help:"Slack user id."`
	Name   string `help:"Display name."`
}

func (c *SetBossCmd) Run(ctx *Context) error {
	user, err := ctx.Services.Admin.SetBoss(context.Background(), c.UserID, c.Name)
	if err != nil {
		return err
	}
	printUser("Boss set", user)
	return nil
}

type AddSecretaryCmd struct {
	UserID string `arg:"" help:"Slack user id."`
	Name   string `help:"Display name."`
}

func (c *AddSecretaryCmd) Run(ctx *Context) error {
	user, err := ctx.Services.Admin.AddSecretary(context.Background(), c.UserID, c.Name)
	if err != nil {
		return err
	}
	printUser("Secretary added", user)
	return nil
}

type PromoteCmd struct {
	UserID string `arg:"" help:"Slack user id of the pending contact."`
	Name   string `help:"Display name, defaults to the Slack profile name."`
	Role   string `help:"Role to grant." enum:"boss,secretary" default:"secretary"`
}

func (c *PromoteCmd) Run(ctx *Context) error {
	user, err := ctx.Services.Admin.PromoteContact(context.Background(), c.UserID, c.Name, domain.Role(c.Role))
	if err != nil {
		return err
	}
	printUser("Contact promoted", user)
	return nil
}

type DigestCmd struct {
	Type  string `help:"Which digest to send." enum:"today,tomorrow" default:"today"`
	Force bool   `help:"Send even if already sent today."`
}

func (c *DigestCmd) Run(ctx *Context) error {
	notificationType, ok := handlers.ParseDigestType(c.Type)
	if !ok {
		return domain.ErrInvalidNotificationType
	}

	sent, err := ctx.Services.Digest.SendDigest(context.Background(), notificationType, time.Now(), c.Force)
	if err != nil {
		return err
	}
	fmt.Printf("Digest sent to %d recipient(s)\n", sent)
	return nil
}

type RemindersCmd struct{}

func (c *RemindersCmd) Run(ctx *Context) error {
	sent, err := ctx.Services.Digest.SendReminders(context.Background(), time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("Sent %d reminder(s)\n", sent)
	return nil
}

type SentCmd struct {
	Day string `help:"Local day as YYYY-MM-DD, defaults to today."`
}

func (c *SentCmd) Run(ctx *Context) error {
	day := c.Day
	if day == "" {
		day = domain.DateOf(time.Now().In(ctx.Config.Location()))
	}

	notifications, err := ctx.Services.Admin.ListNotifications(context.Background(), day)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tTARGET\tSCHEDULE\tSENT AT")
	for _, n := range notifications {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", n.Type, n.Target, n.ScheduleID, n.SentAt.In(ctx.Config.Location()).Format(time.DateTime))
	}
	return w.Flush()
}

func printUser(action string, u *entity.User) {
	fmt.Printf("%s: %s (%s, %s)\n", action, u.Name, u.Role, u.MessagingID)
}
