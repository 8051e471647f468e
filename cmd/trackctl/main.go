// Command trackctl is a terminal client for the job application tracker.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/ghostlake/jobtrack/internal/client/api"
	"github.com/ghostlake/jobtrack/internal/client/session"
	"github.com/ghostlake/jobtrack/internal/client/tracker"
	"github.com/ghostlake/jobtrack/internal/dtos"
	"github.com/google/uuid"
)

const usage = `usage: trackctl <command> [arguments]

commands:
  register <email> <password>   create an account
  login <email> <password>      sign in and store the credential
  logout                        drop the stored credential
  whoami                        show the signed-in account
  list                          list applications, newest first
  add -company C -role R [-link L] [-notes N]
  status <id> <status>          one of: applied interview offer rejected
  rm <id>                       delete an application
  skills [file]                 extract skills from a job description
                                (reads stdin when no file is given)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	base := os.Getenv("JOBTRACK_API")
	if base == "" {
		base = "http://localhost:8080"
	}

	sess := session.New(session.DefaultPath())
	sess.SetUnauthorizedHandler(func() {
		sess.Clear()
		fmt.Fprintln(os.Stderr, "session expired, please log in again")
	})
	client := api.New(base, sess)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := run(ctx, client, sess, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, client *api.Client, sess *session.Session, command string, args []string) error {
	switch command {
	case "register":
		if len(args) != 2 {
			return fmt.Errorf("register needs <email> <password>")
		}
		user, err := client.Register(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("registered %s, you can log in now\n", user.Email)
		return nil

	case "login":
		if len(args) != 2 {
			return fmt.Errorf("login needs <email> <password>")
		}
		tok, err := client.Login(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		sess.Set(tok)
		fmt.Println("logged in")
		return nil

	case "logout":
		sess.Clear()
		fmt.Println("logged out")
		return nil

	case "whoami":
		user, err := client.Me(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s)\n", user.Email, user.ID)
		return nil

	case "list":
		t := tracker.New(client)
		if err := t.Load(ctx); err != nil {
			return err
		}
		return printApplications(t)

	case "add":
		fs := flag.NewFlagSet("add", flag.ExitOnError)
		company := fs.String("company", "", "company name")
		role := fs.String("role", "", "role title")
		link := fs.String("link", "", "posting link")
		notes := fs.String("notes", "", "notes")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *company == "" || *role == "" {
			return fmt.Errorf("add needs -company and -role")
		}
		t := tracker.New(client)
		app, err := t.Create(ctx, dtos.CreateApplicationRequest{
			Company: *company, Role: *role, Link: *link, Notes: *notes,
		})
		if err != nil {
			return err
		}
		fmt.Printf("added %s / %s (%s)\n", app.Company, app.Role, app.ID)
		return nil

	case "status":
		if len(args) != 2 {
			return fmt.Errorf("status needs <id> <status>")
		}
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("bad application id: %w", err)
		}
		t := tracker.New(client)
		if err := t.Load(ctx); err != nil {
			return err
		}
		if err := t.UpdateStatus(ctx, id, args[1]); err != nil {
			return err
		}
		return printApplications(t)

	case "rm":
		if len(args) != 1 {
			return fmt.Errorf("rm needs <id>")
		}
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("bad application id: %w", err)
		}
		t := tracker.New(client)
		if err := t.Load(ctx); err != nil {
			return err
		}
		if err := t.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Println("deleted")
		return nil

	case "skills":
		var data []byte
		var err error
		if len(args) == 1 {
			data, err = os.ReadFile(args[0])
		} else {
			data, err = io.ReadAll(os.Stdin)
		}
		if err != nil {
			return err
		}
		report, err := client.ExtractSkills(ctx, string(data))
		if err != nil {
			return err
		}
		fmt.Println(report.Summary)
		for _, skill := range report.Skills {
			fmt.Println("  -", skill)
		}
		return nil

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func printApplications(t *tracker.Tracker) error {
	apps := t.Applications()
	if len(apps) == 0 {
		fmt.Println("no applications yet")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCOMPANY\tROLE\tSTATUS\tAPPLIED")
	for _, app := range apps {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			app.ID, app.Company, app.Role, app.Status, app.AppliedAt.Format("2006-01-02"))
	}
	return w.Flush()
}
